package engine

// Env is a persistent binding environment. Bind never mutates the receiver:
// it returns a new environment sharing structure with the old one, so forking
// at a choice point is a pointer copy and bindings made on one branch are
// never visible on a sibling branch. The zero value, a nil *Env, is the empty
// environment.
type Env struct {
	binding binding
	up      *Env
}

type binding struct {
	variable Variable
	value    Term
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return nil
}

// Bind returns an environment in which v resolves to t.
func (e *Env) Bind(v Variable, t Term) *Env {
	return &Env{
		binding: binding{variable: v, value: t},
		up:      e,
	}
}

// Lookup returns the term bound to v, if any.
func (e *Env) Lookup(v Variable) (Term, bool) {
	for ; e != nil; e = e.up {
		if e.binding.variable == v {
			return e.binding.value, true
		}
	}
	return nil, false
}

// Resolve follows the variable chain and returns the first non-variable term
// or the last free variable. A cyclic chain, which can only arise if the
// occurs check was bypassed, resolves to the variable itself.
func (e *Env) Resolve(t Term) Term {
	var seen []Variable
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		for _, s := range seen {
			if v == s {
				return v
			}
		}
		ref, ok := e.Lookup(v)
		if !ok {
			return v
		}
		seen = append(seen, v)
		t = ref
	}
}

// Simplify returns t with every bound variable recursively replaced by its
// value. Unbound variables remain.
func (e *Env) Simplify(t Term) Term {
	switch t := e.Resolve(t).(type) {
	case *Compound:
		c := Compound{
			Functor: t.Functor,
			Args:    make([]Term, len(t.Args)),
		}
		for i, a := range t.Args {
			c.Args[i] = e.Simplify(a)
		}
		return &c
	default:
		return t
	}
}

// Unify unifies x and y and returns the extended environment. On failure it
// returns the receiver unchanged, so a failed speculative unification never
// leaks partial bindings.
func (e *Env) Unify(x, y Term, occursCheck bool) (*Env, bool) {
	x, y = e.Resolve(x), e.Resolve(y)
	if v, ok := x.(Variable); ok {
		return e.bind(v, y, occursCheck)
	}
	if v, ok := y.(Variable); ok {
		return e.bind(v, x, occursCheck)
	}
	switch x := x.(type) {
	case Atom:
		y, ok := y.(Atom)
		return e, ok && x == y
	case Integer:
		switch y := y.(type) {
		case Integer:
			return e, x == y
		case Float:
			return e, float64(x) == float64(y)
		}
		return e, false
	case Float:
		switch y := y.(type) {
		case Integer:
			return e, float64(x) == float64(y)
		case Float:
			return e, x == y
		}
		return e, false
	case String:
		y, ok := y.(String)
		return e, ok && x == y
	case *Compound:
		y, ok := y.(*Compound)
		if !ok || x.Functor != y.Functor || len(x.Args) != len(y.Args) {
			return e, false
		}
		env := e
		for i := range x.Args {
			env, ok = env.Unify(x.Args[i], y.Args[i], occursCheck)
			if !ok {
				return e, false
			}
		}
		return env, true
	}
	return e, false
}

func (e *Env) bind(v Variable, t Term, occursCheck bool) (*Env, bool) {
	if w, ok := t.(Variable); ok && w == v {
		return e, true
	}
	if occursCheck && Contains(t, v, e) {
		return e, false
	}
	return e.Bind(v, t), true
}
