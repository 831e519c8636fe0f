package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// UnknownAction is the policy applied to a call to a predicate with no
// clauses and no built-in.
type UnknownAction int

const (
	// UnknownError raises an existence error.
	UnknownError UnknownAction = iota
	// UnknownFail fails silently.
	UnknownFail
	// UnknownWarn logs a warning and fails.
	UnknownWarn
)

func (u UnknownAction) String() string {
	switch u {
	case UnknownError:
		return "error"
	case UnknownFail:
		return "fail"
	case UnknownWarn:
		return "warning"
	default:
		return fmt.Sprintf("unknown(%d)", int(u))
	}
}

// Runtime is a logic-programming runtime: a clause database, a table of
// built-in procedures, and the SLD-resolution control loop tying them
// together. The zero value is a valid runtime without any built-ins.
type Runtime struct {
	// BeforeHalt hooks run right before halt/0 or halt/1.
	BeforeHalt []func()

	db            *Database
	procedures    map[Indicator]procedure
	input, output *Stream
	unknown       UnknownAction
}

// NewRuntime returns a runtime with an empty database and no built-ins.
func NewRuntime() *Runtime {
	return &Runtime{db: NewDatabase()}
}

// Database exposes the clause store for inspection and loading.
func (r *Runtime) Database() *Database {
	if r.db == nil {
		r.db = NewDatabase()
	}
	return r.db
}

// SetUnknown sets the undefined-predicate policy.
func (r *Runtime) SetUnknown(u UnknownAction) {
	r.unknown = u
}

// SetUserInput sets the stream get_char/1 reads from.
func (r *Runtime) SetUserInput(s *Stream) {
	r.input = s
}

// SetUserOutput sets the stream put_char/1 and write/1 write to.
func (r *Runtime) SetUserOutput(s *Stream) {
	r.output = s
}

// Assert appends t to the database as a clause.
func (r *Runtime) Assert(t Term) error {
	c, err := NewClause(t, nil)
	if err != nil {
		return err
	}
	if _, ok := r.procedures[c.Indicator()]; ok {
		return PermissionError("modify", "static_procedure", c.Indicator().Term(), nil)
	}
	r.Database().Assertz(c)
	return nil
}

// Solve enumerates, lazily, every environment that makes goal a consequence
// of the database: it dispatches on the goal's structure per SLD resolution
// and calls k with each solution environment. Forcing the returned promise
// drives the search.
func (r *Runtime) Solve(goal Term, k Cont, env *Env) *Promise {
	return r.solve(goal, k, env, nil)
}

// solve carries the cut barrier: the clause-selection promise that a cut in
// the current clause body commits to. Control constructs pass it through;
// predicate calls install their own.
func (r *Runtime) solve(goal Term, k Cont, env *Env, barrier *Promise) *Promise {
	switch g := env.Resolve(goal).(type) {
	case Variable:
		return Error(InstantiationError(env))
	case Atom:
		switch g {
		case "true":
			return k(env)
		case "fail", "false":
			return Bool(false)
		case "!":
			return cut(barrier, func() *Promise {
				return k(env)
			})
		}
		return r.arrive(Indicator{Name: g}, nil, k, env)
	case *Compound:
		switch {
		case g.Functor == atomComma && len(g.Args) == 2:
			a, b := g.Args[0], g.Args[1]
			return Delay(func() *Promise {
				return r.solve(a, func(env *Env) *Promise {
					return r.solve(b, k, env, barrier)
				}, env, barrier)
			})
		case g.Functor == ";" && len(g.Args) == 2:
			if c, ok := env.Resolve(g.Args[0]).(*Compound); ok && c.Functor == "->" && len(c.Args) == 2 {
				return r.ifThenElse(c.Args[0], c.Args[1], g.Args[1], k, env, barrier)
			}
			a, b := g.Args[0], g.Args[1]
			return Delay(func() *Promise {
				return r.solve(a, k, env, barrier)
			}, func() *Promise {
				return r.solve(b, k, env, barrier)
			})
		case g.Functor == "->" && len(g.Args) == 2:
			return r.ifThenElse(g.Args[0], g.Args[1], Atom("fail"), k, env, barrier)
		case g.Functor == "\\+" && len(g.Args) == 1:
			return r.Negation(g.Args[0], k, env)
		}
		return r.arrive(Indicator{Name: g.Functor, Arity: len(g.Args)}, g.Args, k, env)
	default:
		return Error(TypeError(ValidTypeCallable, g, env))
	}
}

// arrive reaches a procedure: a built-in if one is registered, the database
// otherwise. For a database call it iterates the matching clauses in order,
// renaming each fresh, and serves as the cut barrier for their bodies.
func (r *Runtime) arrive(pi Indicator, args []Term, k Cont, env *Env) *Promise {
	logrus.WithField("procedure", pi).Debug("arrive")

	if p, ok := r.procedures[pi]; ok {
		return Delay(func() *Promise {
			return p.call(r, args, k, env)
		})
	}

	cs := r.Database().Match(pi)
	if len(cs) == 0 && !r.Database().Known(pi) {
		switch r.unknown {
		case UnknownError:
			return Error(ExistenceError(pi, env))
		case UnknownWarn:
			logrus.WithField("procedure", pi).Warn("unknown procedure")
			fallthrough
		case UnknownFail:
			return Bool(false)
		default:
			return Error(fmt.Errorf("invalid unknown action: %s", r.unknown))
		}
	}

	goal := pi.Name.Apply(args...)
	var p *Promise
	ks := make([]func() *Promise, len(cs))
	for i := range cs {
		c := cs[i]
		ks[i] = func() *Promise {
			fresh := c.renamed()
			env, ok := env.Unify(goal, fresh.Head, true)
			if !ok {
				return Bool(false)
			}
			return r.solve(fresh.Body, k, env, p)
		}
	}
	p = Delay(ks...)
	return p
}

// Call proves goal as if it were the single goal of a fresh clause body: a
// cut inside goal prunes goal's own alternatives only.
func (r *Runtime) Call(goal Term, k Cont, env *Env) *Promise {
	var p *Promise
	p = Delay(func() *Promise {
		return r.solve(goal, k, env, p)
	})
	return p
}

// Negation implements negation as failure. goal is proven against the
// current environment but none of its bindings leak out.
func (r *Runtime) Negation(goal Term, k Cont, env *Env) *Promise {
	return Delay(func() *Promise {
		ok, err := r.Call(goal, Success, env).Force()
		if err != nil {
			return Error(err)
		}
		if ok {
			return Bool(false)
		}
		return k(env)
	})
}

func (r *Runtime) ifThenElse(cond, then, els Term, k Cont, env *Env, barrier *Promise) *Promise {
	return Delay(func() *Promise {
		var committed *Env
		ok, err := r.Call(cond, func(env *Env) *Promise {
			committed = env
			return Bool(true) // first solution only
		}, env).Force()
		if err != nil {
			return Error(err)
		}
		if ok {
			return r.solve(then, k, committed, barrier)
		}
		return r.solve(els, k, env, barrier)
	})
}

// procedure is anything that can be called like a predicate.
type procedure interface {
	call(*Runtime, []Term, Cont, *Env) *Promise
}

// Predicate0 is a built-in predicate of arity 0.
type Predicate0 func(Cont, *Env) *Promise

func (p Predicate0) call(_ *Runtime, _ []Term, k Cont, env *Env) *Promise {
	return p(k, env)
}

// Predicate1 is a built-in predicate of arity 1.
type Predicate1 func(Term, Cont, *Env) *Promise

func (p Predicate1) call(_ *Runtime, args []Term, k Cont, env *Env) *Promise {
	return p(args[0], k, env)
}

// Predicate2 is a built-in predicate of arity 2.
type Predicate2 func(Term, Term, Cont, *Env) *Promise

func (p Predicate2) call(_ *Runtime, args []Term, k Cont, env *Env) *Promise {
	return p(args[0], args[1], k, env)
}

// Predicate3 is a built-in predicate of arity 3.
type Predicate3 func(Term, Term, Term, Cont, *Env) *Promise

func (p Predicate3) call(_ *Runtime, args []Term, k Cont, env *Env) *Promise {
	return p(args[0], args[1], args[2], k, env)
}

// Register0 registers a built-in predicate of arity 0.
func (r *Runtime) Register0(name string, p Predicate0) {
	r.register(Indicator{Name: Atom(name)}, p)
}

// Register1 registers a built-in predicate of arity 1.
func (r *Runtime) Register1(name string, p Predicate1) {
	r.register(Indicator{Name: Atom(name), Arity: 1}, p)
}

// Register2 registers a built-in predicate of arity 2.
func (r *Runtime) Register2(name string, p Predicate2) {
	r.register(Indicator{Name: Atom(name), Arity: 2}, p)
}

// Register3 registers a built-in predicate of arity 3.
func (r *Runtime) Register3(name string, p Predicate3) {
	r.register(Indicator{Name: Atom(name), Arity: 3}, p)
}

func (r *Runtime) register(pi Indicator, p procedure) {
	if r.procedures == nil {
		r.procedures = map[Indicator]procedure{}
	}
	r.procedures[pi] = p
}
