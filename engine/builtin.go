package engine

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// Unify unifies x and y with occurs check, i.e. X = f(X) fails.
func Unify(x, y Term, k Cont, env *Env) *Promise {
	env, ok := env.Unify(x, y, true)
	if !ok {
		return Bool(false)
	}
	return k(env)
}

// NotUnifiable succeeds iff x and y are not unifiable. Bindings made while
// trying are discarded.
func NotUnifiable(x, y Term, k Cont, env *Env) *Promise {
	if _, ok := env.Unify(x, y, true); ok {
		return Bool(false)
	}
	return k(env)
}

// TermEqual succeeds iff x and y are identical in the standard order.
func TermEqual(x, y Term, k Cont, env *Env) *Promise {
	if Compare(x, y, env) != 0 {
		return Bool(false)
	}
	return k(env)
}

// TermNotEqual succeeds iff x and y are not identical.
func TermNotEqual(x, y Term, k Cont, env *Env) *Promise {
	if Compare(x, y, env) == 0 {
		return Bool(false)
	}
	return k(env)
}

// TypeVar succeeds iff t is an unbound variable.
func TypeVar(t Term, k Cont, env *Env) *Promise {
	if _, ok := env.Resolve(t).(Variable); !ok {
		return Bool(false)
	}
	return k(env)
}

// TypeNonVar succeeds iff t is not an unbound variable.
func TypeNonVar(t Term, k Cont, env *Env) *Promise {
	if _, ok := env.Resolve(t).(Variable); ok {
		return Bool(false)
	}
	return k(env)
}

// TypeAtom succeeds iff t is an atom.
func TypeAtom(t Term, k Cont, env *Env) *Promise {
	if _, ok := env.Resolve(t).(Atom); !ok {
		return Bool(false)
	}
	return k(env)
}

// TypeNumber succeeds iff t is an integer or a float.
func TypeNumber(t Term, k Cont, env *Env) *Promise {
	switch env.Resolve(t).(type) {
	case Integer, Float:
		return k(env)
	default:
		return Bool(false)
	}
}

// TypeCompound succeeds iff t is a compound term.
func TypeCompound(t Term, k Cont, env *Env) *Promise {
	if _, ok := env.Resolve(t).(*Compound); !ok {
		return Bool(false)
	}
	return k(env)
}

// TypeAtomic succeeds iff t is neither a variable nor a compound.
func TypeAtomic(t Term, k Cont, env *Env) *Promise {
	switch env.Resolve(t).(type) {
	case Variable, *Compound:
		return Bool(false)
	default:
		return k(env)
	}
}

// TypeCallable succeeds iff t is an atom or a compound.
func TypeCallable(t Term, k Cont, env *Env) *Promise {
	switch env.Resolve(t).(type) {
	case Atom, *Compound:
		return k(env)
	default:
		return Bool(false)
	}
}

// Functor extracts the name and arity of t, or builds a term of the given
// name and arity with fresh variables as arguments.
func Functor(t, name, arity Term, k Cont, env *Env) *Promise {
	switch t := env.Resolve(t).(type) {
	case Variable:
		switch a := env.Resolve(arity).(type) {
		case Variable:
			return Error(InstantiationError(env))
		case Integer:
			if a == 0 {
				return Unify(t, name, k, env)
			}
			if a < 0 {
				return Bool(false)
			}
			n, ok := env.Resolve(name).(Atom)
			if !ok {
				return Error(TypeError(ValidTypeAtom, name, env))
			}
			args := make([]Term, a)
			for i := range args {
				args[i] = NewVariable()
			}
			return Unify(t, n.Apply(args...), k, env)
		default:
			return Error(TypeError(ValidTypeInteger, a, env))
		}
	case *Compound:
		env, ok := env.Unify(name, t.Functor, true)
		if !ok {
			return Bool(false)
		}
		return Unify(arity, Integer(len(t.Args)), k, env)
	default:
		env, ok := env.Unify(name, t, true)
		if !ok {
			return Bool(false)
		}
		return Unify(arity, Integer(0), k, env)
	}
}

// Univ implements =../2: t decomposes into a list of its functor and
// arguments, or is built from such a list.
func Univ(t, list Term, k Cont, env *Env) *Promise {
	switch t := env.Resolve(t).(type) {
	case Variable:
		elems, err := Slice(list, env)
		if err != nil {
			return Error(err)
		}
		if len(elems) == 0 {
			return Error(TypeError(ValidTypeList, list, env))
		}
		switch f := elems[0].(type) {
		case Variable:
			return Error(InstantiationError(env))
		case Atom:
			return Unify(t, f.Apply(elems[1:]...), k, env)
		default:
			if len(elems) > 1 {
				return Error(TypeError(ValidTypeAtom, f, env))
			}
			return Unify(t, f, k, env)
		}
	case *Compound:
		return Unify(list, List(append([]Term{t.Functor}, t.Args...)...), k, env)
	default:
		return Unify(list, List(t), k, env)
	}
}

// CopyTerm unifies copy with a copy of t in which every unbound variable is
// replaced by a fresh one.
func CopyTerm(t, copy Term, k Cont, env *Env) *Promise {
	return Unify(copy, renamedCopy(t, nil, env), k, env)
}

// Member walks the list cell by cell and tries to unify x against each
// element, yielding a solution for every success. The walk stops when the
// structure is no longer a cons cell.
func Member(x, list Term, k Cont, env *Env) *Promise {
	var ks []func() *Promise
	rest := list
	for {
		c, ok := env.Resolve(rest).(*Compound)
		if !ok || c.Functor != atomDot || len(c.Args) != 2 {
			break
		}
		elem := c.Args[0]
		ks = append(ks, func() *Promise {
			return Unify(x, elem, k, env)
		})
		rest = c.Args[1]
	}
	return Delay(ks...)
}

// Append relates the concatenation of l1 and l2 to l3. Exactly two
// alternatives are tried in order, so it concatenates, splits, or checks
// depending on which arguments are bound.
func Append(l1, l2, l3 Term, k Cont, env *Env) *Promise {
	return Delay(func() *Promise {
		env2, ok := env.Unify(l1, atomEmptyList, true)
		if !ok {
			return Bool(false)
		}
		return Unify(l2, l3, k, env2)
	}, func() *Promise {
		head, t1, t3 := NewVariable(), NewVariable(), NewVariable()
		env2, ok := env.Unify(l1, Cons(head, t1), true)
		if !ok {
			return Bool(false)
		}
		env2, ok = env2.Unify(l3, Cons(head, t3), true)
		if !ok {
			return Bool(false)
		}
		return Append(t1, l2, t3, k, env2)
	})
}

// Length relates a list to its length.
func Length(list, n Term, k Cont, env *Env) *Promise {
	return lengthRest(list, 0, n, k, env)
}

func lengthRest(rest Term, sofar int64, n Term, k Cont, env *Env) *Promise {
	return Delay(func() *Promise {
		env2, ok := env.Unify(rest, atomEmptyList, true)
		if !ok {
			return Bool(false)
		}
		return Unify(n, Integer(sofar), k, env2)
	}, func() *Promise {
		if i, ok := env.Resolve(n).(Integer); ok && int64(i) <= sofar {
			return Bool(false)
		}
		head, tail := NewVariable(), NewVariable()
		env2, ok := env.Unify(rest, Cons(head, tail), true)
		if !ok {
			return Bool(false)
		}
		return lengthRest(tail, sofar+1, n, k, env2)
	})
}

// FindAll resolves goal exhaustively, instantiates a copy of template with
// each solution, and unifies the list of copies with instances. A cut inside
// goal prunes goal's own alternatives only; errors raised while proving goal
// propagate out.
func (r *Runtime) FindAll(template, goal, instances Term, k Cont, env *Env) *Promise {
	switch g := env.Resolve(goal).(type) {
	case Variable:
		return Error(InstantiationError(env))
	case Atom:
		if g == atomEmptyList {
			return Error(TypeError(ValidTypeCallable, g, env))
		}
	case *Compound:
	default:
		return Error(TypeError(ValidTypeCallable, g, env))
	}
	return Delay(func() *Promise {
		var results []Term
		_, err := r.Call(goal, func(env *Env) *Promise {
			results = append(results, renamedCopy(template, nil, env))
			return Bool(false) // keep searching
		}, env).Force()
		if err != nil {
			return Error(err)
		}
		return Unify(instances, List(results...), k, env)
	})
}

// Asserta prepends t to the database.
func (r *Runtime) Asserta(t Term, k Cont, env *Env) *Promise {
	c, err := r.newDynamicClause(t, env)
	if err != nil {
		return Error(err)
	}
	r.Database().Asserta(c)
	return k(env)
}

// Assertz appends t to the database.
func (r *Runtime) Assertz(t Term, k Cont, env *Env) *Promise {
	c, err := r.newDynamicClause(t, env)
	if err != nil {
		return Error(err)
	}
	r.Database().Assertz(c)
	return k(env)
}

func (r *Runtime) newDynamicClause(t Term, env *Env) (*Clause, error) {
	c, err := NewClause(t, env)
	if err != nil {
		return nil, err
	}
	if _, ok := r.procedures[c.Indicator()]; ok {
		return nil, PermissionError("modify", "static_procedure", c.Indicator().Term(), env)
	}
	return c, nil
}

// Retract removes the first clause that matches t from the database. It
// succeeds at most once; backtracking into it doesn't remove further
// clauses.
func (r *Runtime) Retract(t Term, k Cont, env *Env) *Promise {
	return Delay(func() *Promise {
		head, body := env.Resolve(t), Term(nil)
		if c, ok := head.(*Compound); ok && c.Functor == atomIf && len(c.Args) == 2 {
			head, body = c.Args[0], c.Args[1]
		}
		switch h := env.Resolve(head).(type) {
		case Variable:
			return Error(InstantiationError(env))
		case Atom, *Compound:
		default:
			return Error(TypeError(ValidTypeCallable, h, env))
		}
		if pi, ok := indicatorOf(head, env); ok {
			if _, ok := r.procedures[pi]; ok {
				return Error(PermissionError("modify", "static_procedure", pi.Term(), env))
			}
		}
		env2, ok := r.Database().RetractFirst(head, body, env)
		if !ok {
			return Bool(false)
		}
		return k(env2)
	})
}

// Throw throws ball as an exception.
func Throw(ball Term, _ Cont, env *Env) *Promise {
	if _, ok := env.Resolve(ball).(Variable); ok {
		return Error(InstantiationError(env))
	}
	return Error(NewException(ball, env))
}

// Catch proves goal. If an exception unifiable with catcher is raised, it
// proves recovery instead; other exceptions keep propagating.
func (r *Runtime) Catch(goal, catcher, recovery Term, k Cont, env *Env) *Promise {
	return catch(func(err error) *Promise {
		var ex Exception
		if !errors.As(err, &ex) {
			return nil
		}
		env, ok := env.Unify(catcher, ex.Term(), false)
		if !ok {
			return nil
		}
		return r.Call(recovery, k, env)
	}, func() *Promise {
		return r.Call(goal, k, env)
	})
}

// Is evaluates expression and unifies result with its value.
func Is(result, expression Term, k Cont, env *Env) *Promise {
	v, err := Eval(expression, env)
	if err != nil {
		return Error(err)
	}
	return Unify(result, v, k, env)
}

func arithCompare(x, y Term, env *Env, pred func(int) bool) (bool, error) {
	a, err := Eval(x, env)
	if err != nil {
		return false, err
	}
	b, err := Eval(y, env)
	if err != nil {
		return false, err
	}
	return pred(compareNumbers(a, b)), nil
}

func arithPredicate(x, y Term, k Cont, env *Env, pred func(int) bool) *Promise {
	ok, err := arithCompare(x, y, env, pred)
	if err != nil {
		return Error(err)
	}
	if !ok {
		return Bool(false)
	}
	return k(env)
}

// ArithEqual succeeds iff x and y evaluate to the same number.
func ArithEqual(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d == 0 })
}

// ArithNotEqual succeeds iff x and y evaluate to different numbers.
func ArithNotEqual(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d != 0 })
}

// LessThan succeeds iff x evaluates to a number less than y's value.
func LessThan(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d < 0 })
}

// GreaterThan succeeds iff x evaluates to a number greater than y's value.
func GreaterThan(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d > 0 })
}

// LessEqual succeeds iff x evaluates to a number not greater than y's value.
func LessEqual(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d <= 0 })
}

// GreaterEqual succeeds iff x evaluates to a number not less than y's value.
func GreaterEqual(x, y Term, k Cont, env *Env) *Promise {
	return arithPredicate(x, y, k, env, func(d int) bool { return d >= 0 })
}

// GetChar reads one character from the current input and unifies ch with a
// one-character atom, or with end_of_file at the end of the input.
func (r *Runtime) GetChar(ch Term, k Cont, env *Env) *Promise {
	switch t := env.Resolve(ch).(type) {
	case Variable, Atom:
		_ = t
	default:
		return Error(TypeError(ValidTypeCharacter, t, env))
	}
	if r.input == nil {
		return Error(errors.New("no current input"))
	}
	s, err := r.input.ReadChar()
	switch {
	case err == nil:
		return Unify(ch, Atom(s), k, env)
	case errors.Is(err, io.EOF):
		return Unify(ch, Atom("end_of_file"), k, env)
	default:
		return Error(err)
	}
}

// PutChar writes the one-character atom ch to the current output.
func (r *Runtime) PutChar(ch Term, k Cont, env *Env) *Promise {
	switch c := env.Resolve(ch).(type) {
	case Variable:
		return Error(InstantiationError(env))
	case Atom:
		if utf8.RuneCountInString(string(c)) != 1 {
			return Error(TypeError(ValidTypeCharacter, c, env))
		}
		if r.output == nil {
			return Error(errors.New("no current output"))
		}
		if err := r.output.WriteChar(string(c)); err != nil {
			return Error(err)
		}
		return k(env)
	default:
		return Error(TypeError(ValidTypeCharacter, c, env))
	}
}

// Write writes t to the current output without quoting.
func (r *Runtime) Write(t Term, k Cont, env *Env) *Promise {
	if r.output == nil {
		return Error(errors.New("no current output"))
	}
	if err := WriteTerm(r.output, env.Resolve(t), env); err != nil {
		return Error(err)
	}
	return k(env)
}

// Nl writes a newline to the current output.
func (r *Runtime) Nl(k Cont, env *Env) *Promise {
	if r.output == nil {
		return Error(errors.New("no current output"))
	}
	if err := r.output.WriteChar("\n"); err != nil {
		return Error(err)
	}
	return k(env)
}

// Halt exits the process with the given status code after running the
// BeforeHalt hooks.
func (r *Runtime) Halt(code Term, _ Cont, env *Env) *Promise {
	switch c := env.Resolve(code).(type) {
	case Variable:
		return Error(InstantiationError(env))
	case Integer:
		for _, f := range r.BeforeHalt {
			f()
		}
		osExit(int(c))
		return Bool(false)
	default:
		return Error(TypeError(ValidTypeInteger, c, env))
	}
}

// replaceable for tests
var osExit = os.Exit
