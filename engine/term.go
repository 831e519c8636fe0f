package engine

import "fmt"

// Term is a Prolog term. The implementations are restricted to Atom, Integer,
// Float, String, Variable, and *Compound.
type Term interface {
	fmt.Stringer
	term()
}

// Atom is a symbolic constant identified by its name.
type Atom string

func (a Atom) term() {}

// Apply returns a Compound with the atom as its functor and args as its
// arguments. If args is empty, it returns the atom itself.
func (a Atom) Apply(args ...Term) Term {
	if len(args) == 0 {
		return a
	}
	return &Compound{Functor: a, Args: args}
}

// Integer is an integer number.
type Integer int64

func (i Integer) term() {}

// Float is a floating-point number.
type Float float64

func (f Float) term() {}

// String is a double-quoted string constant, compared by value.
type String string

func (s String) term() {}

// Compound is a functor applied to one or more arguments.
type Compound struct {
	Functor Atom
	Args    []Term
}

func (c *Compound) term() {}

const (
	atomEmptyList = Atom("[]")
	atomDot       = Atom(".")
	atomTrue      = Atom("true")
	atomIf        = Atom(":-")
	atomComma     = Atom(",")
)

// Indicator identifies a predicate by name and arity.
type Indicator struct {
	Name  Atom
	Arity int
}

func (pi Indicator) String() string {
	return fmt.Sprintf("%s/%d", string(pi.Name), pi.Arity)
}

// Term returns the indicator as a Name/Arity term.
func (pi Indicator) Term() Term {
	return &Compound{Functor: "/", Args: []Term{pi.Name, Integer(pi.Arity)}}
}

// indicatorOf returns the predicate indicator of a callable term.
func indicatorOf(t Term, env *Env) (Indicator, bool) {
	switch t := env.Resolve(t).(type) {
	case Atom:
		return Indicator{Name: t, Arity: 0}, true
	case *Compound:
		return Indicator{Name: t.Functor, Arity: len(t.Args)}, true
	default:
		return Indicator{}, false
	}
}

// Cons returns a list cell with a first element car and the rest cdr.
func Cons(car, cdr Term) Term {
	return &Compound{Functor: atomDot, Args: []Term{car, cdr}}
}

// List returns a proper list of ts.
func List(ts ...Term) Term {
	return ListRest(atomEmptyList, ts...)
}

// ListRest returns a list of ts followed by rest.
func ListRest(rest Term, ts ...Term) Term {
	l := rest
	for i := len(ts) - 1; i >= 0; i-- {
		l = Cons(ts[i], l)
	}
	return l
}

// Slice returns a Term slice containing the elements of list.
// It errors if the given term is not a proper list.
func Slice(list Term, env *Env) ([]Term, error) {
	var ret []Term
	iter := ListIterator{List: list, Env: env}
	for iter.Next() {
		ret = append(ret, env.Resolve(iter.Current()))
	}
	return ret, iter.Err()
}

// Contains reports whether t contains s after dereferencing under env.
func Contains(t, s Term, env *Env) bool {
	switch t := env.Resolve(t).(type) {
	case Variable:
		return t == s
	case *Compound:
		if s, ok := s.(Atom); ok && t.Functor == s {
			return true
		}
		for _, a := range t.Args {
			if Contains(a, s, env) {
				return true
			}
		}
		return false
	default:
		return t == s
	}
}

// renamedCopy returns a copy of t with every remaining variable replaced by a
// fresh one. vars keeps the correspondence so that multiple occurrences of
// one variable map to one fresh variable within a single copy.
func renamedCopy(t Term, vars map[Variable]Variable, env *Env) Term {
	if vars == nil {
		vars = map[Variable]Variable{}
	}
	switch t := env.Resolve(t).(type) {
	case Variable:
		v, ok := vars[t]
		if !ok {
			v = NewVariable()
			vars[t] = v
		}
		return v
	case *Compound:
		c := Compound{
			Functor: t.Functor,
			Args:    make([]Term, len(t.Args)),
		}
		for i, a := range t.Args {
			c.Args[i] = renamedCopy(a, vars, env)
		}
		return &c
	default:
		return t
	}
}

// Compare compares two terms in the standard order:
// variables, numbers, atoms, strings, then compounds.
func Compare(x, y Term, env *Env) int {
	x, y = env.Resolve(x), env.Resolve(y)
	switch x := x.(type) {
	case Variable:
		switch y := y.(type) {
		case Variable:
			return int(x - y)
		default:
			return -1
		}
	case Integer, Float:
		switch y.(type) {
		case Variable:
			return 1
		case Integer, Float:
			return compareNumbers(x, y)
		default:
			return -1
		}
	case Atom:
		switch y := y.(type) {
		case Variable, Integer, Float:
			return 1
		case Atom:
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		default:
			return -1
		}
	case String:
		switch y := y.(type) {
		case Variable, Integer, Float, Atom:
			return 1
		case String:
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		default:
			return -1
		}
	case *Compound:
		switch y := y.(type) {
		case *Compound:
			if d := len(x.Args) - len(y.Args); d != 0 {
				return d
			}
			if d := Compare(x.Functor, y.Functor, env); d != 0 {
				return d
			}
			for i := range x.Args {
				if d := Compare(x.Args[i], y.Args[i], env); d != 0 {
					return d
				}
			}
			return 0
		default:
			return 1
		}
	}
	return 0
}

// compareNumbers orders two numbers by value; equal values order Float first.
func compareNumbers(x, y Term) int {
	fx, ix := numericValue(x)
	fy, iy := numericValue(y)
	switch {
	case fx < fy:
		return -1
	case fx > fy:
		return 1
	case ix == iy:
		return 0
	case iy: // x is Float, y is Integer
		return -1
	default:
		return 1
	}
}

func numericValue(t Term) (float64, bool) {
	switch t := t.(type) {
	case Integer:
		return float64(t), true
	case Float:
		return float64(t), false
	default:
		panic(fmt.Sprintf("not a number: %v", t))
	}
}
