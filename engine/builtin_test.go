package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// prove forces p and returns its result, failing the test on error.
func prove(t *testing.T, p *Promise) bool {
	t.Helper()
	ok, err := p.Force()
	assert.NoError(t, err)
	return ok
}

func TestUnify(t *testing.T) {
	x := NewVariable()
	var got Term
	ok := prove(t, Unify(x, Atom("a"), func(env *Env) *Promise {
		got = env.Resolve(x)
		return Bool(true)
	}, nil))
	assert.True(t, ok)
	assert.Equal(t, Atom("a"), got)

	assert.False(t, prove(t, Unify(Atom("a"), Atom("b"), Success, nil)))

	// Occurs check applies.
	assert.False(t, prove(t, Unify(x, Atom("f").Apply(x), Success, nil)))
}

func TestNotUnifiable(t *testing.T) {
	assert.True(t, prove(t, NotUnifiable(Atom("a"), Atom("b"), Success, nil)))
	assert.False(t, prove(t, NotUnifiable(Atom("a"), Atom("a"), Success, nil)))

	x := NewVariable()
	assert.False(t, prove(t, NotUnifiable(x, Atom("a"), Success, nil)))
}

func TestTermEqual(t *testing.T) {
	x, y := NewVariable(), NewVariable()
	assert.True(t, prove(t, TermEqual(x, x, Success, nil)))
	assert.False(t, prove(t, TermEqual(x, y, Success, nil)))
	assert.True(t, prove(t, TermEqual(Atom("a"), Atom("a"), Success, nil)))

	// Identical, not merely unifiable.
	assert.False(t, prove(t, TermEqual(x, Atom("a"), Success, nil)))

	// Integers and floats are distinct in the standard order.
	assert.False(t, prove(t, TermEqual(Integer(1), Float(1.0), Success, nil)))

	assert.True(t, prove(t, TermNotEqual(x, y, Success, nil)))
	assert.False(t, prove(t, TermNotEqual(x, x, Success, nil)))
}

func TestTypeTesting(t *testing.T) {
	x := NewVariable()
	var env *Env
	env = env.Bind(x, Atom("a"))

	assert.True(t, prove(t, TypeVar(NewVariable(), Success, nil)))
	assert.False(t, prove(t, TypeVar(x, Success, env)))

	assert.True(t, prove(t, TypeNonVar(Atom("a"), Success, nil)))
	assert.False(t, prove(t, TypeNonVar(NewVariable(), Success, nil)))

	assert.True(t, prove(t, TypeAtom(Atom("a"), Success, nil)))
	assert.False(t, prove(t, TypeAtom(Integer(1), Success, nil)))
	assert.False(t, prove(t, TypeAtom(String("a"), Success, nil)))

	assert.True(t, prove(t, TypeNumber(Integer(1), Success, nil)))
	assert.True(t, prove(t, TypeNumber(Float(1.5), Success, nil)))
	assert.False(t, prove(t, TypeNumber(Atom("1"), Success, nil)))

	assert.True(t, prove(t, TypeCompound(Atom("f").Apply(Atom("a")), Success, nil)))
	assert.False(t, prove(t, TypeCompound(Atom("f"), Success, nil)))

	assert.True(t, prove(t, TypeAtomic(Atom("a"), Success, nil)))
	assert.True(t, prove(t, TypeAtomic(Integer(1), Success, nil)))
	assert.True(t, prove(t, TypeAtomic(String("a"), Success, nil)))
	assert.False(t, prove(t, TypeAtomic(NewVariable(), Success, nil)))
	assert.False(t, prove(t, TypeAtomic(Atom("f").Apply(Atom("a")), Success, nil)))

	assert.True(t, prove(t, TypeCallable(Atom("a"), Success, nil)))
	assert.True(t, prove(t, TypeCallable(Atom("f").Apply(Atom("a")), Success, nil)))
	assert.False(t, prove(t, TypeCallable(Integer(1), Success, nil)))
}

func TestFunctor(t *testing.T) {
	t.Run("decompose compound", func(t *testing.T) {
		name, arity := NewVariable(), NewVariable()
		var gotName, gotArity Term
		ok := prove(t, Functor(Atom("f").Apply(Atom("a"), Atom("b")), name, arity, func(env *Env) *Promise {
			gotName, gotArity = env.Resolve(name), env.Resolve(arity)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, Atom("f"), gotName)
		assert.Equal(t, Integer(2), gotArity)
	})

	t.Run("decompose atomic", func(t *testing.T) {
		name, arity := NewVariable(), NewVariable()
		var gotName, gotArity Term
		ok := prove(t, Functor(Integer(7), name, arity, func(env *Env) *Promise {
			gotName, gotArity = env.Resolve(name), env.Resolve(arity)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, Integer(7), gotName)
		assert.Equal(t, Integer(0), gotArity)
	})

	t.Run("construct", func(t *testing.T) {
		x := NewVariable()
		var got Term
		ok := prove(t, Functor(x, Atom("f"), Integer(2), func(env *Env) *Promise {
			got = env.Resolve(x)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		c, isCompound := got.(*Compound)
		assert.True(t, isCompound)
		assert.Equal(t, Atom("f"), c.Functor)
		assert.Len(t, c.Args, 2)

		ok = prove(t, Functor(NewVariable(), Atom("a"), Integer(0), Success, nil))
		assert.True(t, ok, "arity 0 constructs the atom itself")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Functor(NewVariable(), Atom("f"), NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = Functor(NewVariable(), Integer(1), Integer(2), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = Functor(NewVariable(), Atom("f"), Atom("two"), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})
}

func TestUniv(t *testing.T) {
	t.Run("decompose", func(t *testing.T) {
		l := NewVariable()
		var got Term
		ok := prove(t, Univ(Atom("f").Apply(Atom("a"), Atom("b")), l, func(env *Env) *Promise {
			got = env.Simplify(l)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, List(Atom("f"), Atom("a"), Atom("b")), got)
	})

	t.Run("decompose atomic", func(t *testing.T) {
		l := NewVariable()
		var got Term
		ok := prove(t, Univ(Atom("a"), l, func(env *Env) *Promise {
			got = env.Simplify(l)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, List(Atom("a")), got)
	})

	t.Run("construct", func(t *testing.T) {
		x := NewVariable()
		var got Term
		ok := prove(t, Univ(x, List(Atom("f"), Atom("a")), func(env *Env) *Promise {
			got = env.Resolve(x)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, Atom("f").Apply(Atom("a")), got)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Univ(NewVariable(), List(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = Univ(NewVariable(), List(NewVariable()), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = Univ(NewVariable(), List(Integer(1), Atom("a")), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = Univ(NewVariable(), NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})
}

func TestCopyTerm(t *testing.T) {
	x, c := NewVariable(), NewVariable()
	var got Term
	ok := prove(t, CopyTerm(Atom("f").Apply(x, x, Atom("a")), c, func(env *Env) *Promise {
		got = env.Resolve(c)
		return Bool(true)
	}, nil))
	assert.True(t, ok)
	f, isCompound := got.(*Compound)
	assert.True(t, isCompound)
	assert.NotEqual(t, x, f.Args[0], "variables are renamed")
	assert.Equal(t, f.Args[0], f.Args[1], "sharing is preserved")
	assert.Equal(t, Atom("a"), f.Args[2])
}

func TestMember(t *testing.T) {
	t.Run("enumerates in order", func(t *testing.T) {
		x := NewVariable()
		var got []Term
		_, err := Member(x, List(Atom("a"), Atom("b"), Atom("c")), func(env *Env) *Promise {
			got = append(got, env.Resolve(x))
			return Bool(false)
		}, nil).Force()
		assert.NoError(t, err)
		assert.Equal(t, []Term{Atom("a"), Atom("b"), Atom("c")}, got)
	})

	t.Run("checks", func(t *testing.T) {
		assert.True(t, prove(t, Member(Atom("b"), List(Atom("a"), Atom("b")), Success, nil)))
		assert.False(t, prove(t, Member(Atom("z"), List(Atom("a"), Atom("b")), Success, nil)))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.False(t, prove(t, Member(NewVariable(), List(), Success, nil)))
	})
}

func TestAppend(t *testing.T) {
	t.Run("concatenate", func(t *testing.T) {
		z := NewVariable()
		var got Term
		ok := prove(t, Append(List(Atom("a"), Atom("b")), List(Atom("c")), z, func(env *Env) *Promise {
			got = env.Simplify(z)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, List(Atom("a"), Atom("b"), Atom("c")), got)
	})

	t.Run("split", func(t *testing.T) {
		x, y := NewVariable(), NewVariable()
		var got [][2]Term
		_, err := Append(x, y, List(Atom("a"), Atom("b"), Atom("c")), func(env *Env) *Promise {
			got = append(got, [2]Term{env.Simplify(x), env.Simplify(y)})
			return Bool(false)
		}, nil).Force()
		assert.NoError(t, err)
		assert.Equal(t, [][2]Term{
			{List(), List(Atom("a"), Atom("b"), Atom("c"))},
			{List(Atom("a")), List(Atom("b"), Atom("c"))},
			{List(Atom("a"), Atom("b")), List(Atom("c"))},
			{List(Atom("a"), Atom("b"), Atom("c")), List()},
		}, got, "every split, shortest prefix first")
	})

	t.Run("check", func(t *testing.T) {
		assert.True(t, prove(t, Append(List(Atom("a")), List(Atom("b")), List(Atom("a"), Atom("b")), Success, nil)))
		assert.False(t, prove(t, Append(List(Atom("a")), List(Atom("b")), List(Atom("b"), Atom("a")), Success, nil)))
	})
}

func TestLength(t *testing.T) {
	t.Run("measure", func(t *testing.T) {
		n := NewVariable()
		var got Term
		ok := prove(t, Length(List(Atom("a"), Atom("b")), n, func(env *Env) *Promise {
			got = env.Resolve(n)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, Integer(2), got)
	})

	t.Run("build", func(t *testing.T) {
		l := NewVariable()
		var got Term
		ok := prove(t, Length(l, Integer(3), func(env *Env) *Promise {
			got = env.Simplify(l)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		elems, err := Slice(got, nil)
		assert.NoError(t, err)
		assert.Len(t, elems, 3)
	})

	t.Run("check", func(t *testing.T) {
		assert.True(t, prove(t, Length(List(Atom("a")), Integer(1), Success, nil)))
		assert.False(t, prove(t, Length(List(Atom("a")), Integer(2), Success, nil)))
	})
}

func TestRuntime_FindAll(t *testing.T) {
	newRuntime := func(t *testing.T) *Runtime {
		r := NewRuntime()
		r.Register2("=", Unify)
		mustAssert(t, r,
			Atom("p").Apply(Atom("a"), Integer(1)),
			Atom("p").Apply(Atom("b"), Integer(2)),
			Atom("p").Apply(Atom("c"), Integer(3)),
		)
		return r
	}

	t.Run("collects every solution in order", func(t *testing.T) {
		r := newRuntime(t)
		x, y, l := NewVariable(), NewVariable(), NewVariable()
		var got Term
		ok := prove(t, r.FindAll(x, Atom("p").Apply(x, y), l, func(env *Env) *Promise {
			got = env.Simplify(l)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, List(Atom("a"), Atom("b"), Atom("c")), got)
	})

	t.Run("no solutions yields the empty list", func(t *testing.T) {
		r := newRuntime(t)
		x, l := NewVariable(), NewVariable()
		var got Term
		ok := prove(t, r.FindAll(x, Atom("p").Apply(Atom("z"), x), l, func(env *Env) *Promise {
			got = env.Simplify(l)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, List(), got)
	})

	t.Run("the goal's bindings do not leak", func(t *testing.T) {
		r := newRuntime(t)
		x, y, l := NewVariable(), NewVariable(), NewVariable()
		var got Term
		ok := prove(t, r.FindAll(x, Atom("p").Apply(x, y), l, func(env *Env) *Promise {
			got = env.Resolve(x)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, x, got)
	})

	t.Run("unbound goal", func(t *testing.T) {
		r := newRuntime(t)
		_, err := r.FindAll(NewVariable(), NewVariable(), NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})

	t.Run("non-callable goal", func(t *testing.T) {
		r := newRuntime(t)
		_, err := r.FindAll(NewVariable(), List(), NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = r.FindAll(NewVariable(), Integer(1), NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})

	t.Run("a cut inside the goal stays inside", func(t *testing.T) {
		r := newRuntime(t)
		x, y, l := NewVariable(), NewVariable(), NewVariable()
		var got Term
		n := 0
		_, err := r.FindAll(x, Atom(",").Apply(
			Atom("p").Apply(x, y),
			Atom("!"),
		), l, func(env *Env) *Promise {
			got = env.Simplify(l)
			n++
			return Bool(false)
		}, nil).Force()
		assert.NoError(t, err)
		assert.Equal(t, 1, n, "findall itself is not a choice point here")
		assert.Equal(t, List(Atom("a")), got, "the cut pruned the goal's own alternatives only")
	})

	t.Run("errors inside the goal propagate", func(t *testing.T) {
		r := newRuntime(t)
		r.Register1("throw", Throw)
		_, err := r.FindAll(NewVariable(), Atom("throw").Apply(Atom("boom")), NewVariable(), Success, nil).Force()
		var ex Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, Atom("boom"), ex.Term())
	})
}

func TestRuntime_AssertRetract(t *testing.T) {
	t.Run("assertz appends, asserta prepends", func(t *testing.T) {
		r := NewRuntime()
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("a")), Success, nil)))
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("b")), Success, nil)))
		assert.True(t, prove(t, r.Asserta(Atom("p").Apply(Atom("z")), Success, nil)))

		x := NewVariable()
		vals, err := solutions(t, r, Atom("p").Apply(x), x)
		assert.NoError(t, err)
		assert.Equal(t, []Term{Atom("z"), Atom("a"), Atom("b")}, vals)
	})

	t.Run("asserted rules run", func(t *testing.T) {
		r := NewRuntime()
		x := NewVariable()
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("a")), Success, nil)))
		assert.True(t, prove(t, r.Assertz(Atom(":-").Apply(
			Atom("q").Apply(x),
			Atom("p").Apply(x),
		), Success, nil)))

		y := NewVariable()
		vals, err := solutions(t, r, Atom("q").Apply(y), y)
		assert.NoError(t, err)
		assert.Equal(t, []Term{Atom("a")}, vals)
	})

	t.Run("assert errors", func(t *testing.T) {
		r := NewRuntime()
		_, err := r.Assertz(NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = r.Assertz(Integer(1), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		r.Register2("=", Unify)
		_, err = r.Assertz(Atom("=").Apply(Atom("a"), Atom("a")), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{}, "built-ins are protected")
	})

	t.Run("retract removes the first matching clause", func(t *testing.T) {
		r := NewRuntime()
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("a")), Success, nil)))
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("b")), Success, nil)))

		x := NewVariable()
		var got Term
		ok := prove(t, r.Retract(Atom("p").Apply(x), func(env *Env) *Promise {
			got = env.Resolve(x)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		assert.Equal(t, Atom("a"), got)

		y := NewVariable()
		vals, err := solutions(t, r, Atom("p").Apply(y), y)
		assert.NoError(t, err)
		assert.Equal(t, []Term{Atom("b")}, vals)
	})

	t.Run("retract succeeds at most once", func(t *testing.T) {
		r := NewRuntime()
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("a")), Success, nil)))
		assert.True(t, prove(t, r.Assertz(Atom("p").Apply(Atom("b")), Success, nil)))

		n := 0
		_, err := r.Retract(Atom("p").Apply(NewVariable()), func(env *Env) *Promise {
			n++
			return Bool(false) // ask for more
		}, nil).Force()
		assert.NoError(t, err)
		assert.Equal(t, 1, n)

		x := NewVariable()
		vals, err := solutions(t, r, Atom("p").Apply(x), x)
		assert.NoError(t, err)
		assert.Equal(t, []Term{Atom("b")}, vals, "only the first clause was removed")
	})

	t.Run("a bare head ignores clause bodies", func(t *testing.T) {
		r := NewRuntime()
		x := NewVariable()
		assert.True(t, prove(t, r.Assertz(Atom(":-").Apply(
			Atom("q").Apply(x),
			Atom("p").Apply(x),
		), Success, nil)))

		assert.True(t, prove(t, r.Retract(Atom("q").Apply(NewVariable()), Success, nil)))
		assert.Empty(t, r.Database().Match(Indicator{Name: "q", Arity: 1}))
	})

	t.Run("retract errors", func(t *testing.T) {
		r := NewRuntime()
		_, err := r.Retract(NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})

		_, err = r.Retract(Integer(1), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})

	t.Run("retract misses", func(t *testing.T) {
		r := NewRuntime()
		assert.False(t, prove(t, r.Retract(Atom("nope"), Success, nil)))
	})
}

func TestThrowCatch(t *testing.T) {
	t.Run("throw raises an exception carrying the ball", func(t *testing.T) {
		_, err := Throw(Atom("boom"), Success, nil).Force()
		var ex Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, Atom("boom"), ex.Term())
	})

	t.Run("throw with an unbound ball", func(t *testing.T) {
		_, err := Throw(NewVariable(), Success, nil).Force()
		assert.ErrorAs(t, err, &Exception{})
	})

	t.Run("catch recovers a matching ball", func(t *testing.T) {
		r := NewRuntime()
		r.Register1("throw", Throw)
		r.Register2("=", Unify)

		x, got := NewVariable(), Term(nil)
		ok, err := r.Catch(
			Atom("throw").Apply(Atom("boom")),
			x,
			Atom("=").Apply(x, x), // recovery: anything
			func(env *Env) *Promise {
				got = env.Resolve(x)
				return Bool(true)
			},
			nil,
		).Force()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Atom("boom"), got)
	})

	t.Run("a mismatched catcher lets the ball through", func(t *testing.T) {
		r := NewRuntime()
		r.Register1("throw", Throw)

		_, err := r.Catch(
			Atom("throw").Apply(Atom("boom")),
			Atom("other"),
			Atom("true"),
			Success,
			nil,
		).Force()
		var ex Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, Atom("boom"), ex.Term())
	})

	t.Run("no exception, no recovery", func(t *testing.T) {
		r := NewRuntime()
		mustAssert(t, r, Atom("p").Apply(Atom("a")))

		ok, err := r.Catch(Atom("p").Apply(Atom("a")), NewVariable(), Atom("fail"), Success, nil).Force()
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestIs(t *testing.T) {
	x := NewVariable()
	var got Term
	ok := prove(t, Is(x, Atom("+").Apply(Integer(1), Integer(2)), func(env *Env) *Promise {
		got = env.Resolve(x)
		return Bool(true)
	}, nil))
	assert.True(t, ok)
	assert.Equal(t, Integer(3), got)

	assert.True(t, prove(t, Is(Integer(3), Atom("+").Apply(Integer(1), Integer(2)), Success, nil)))
	assert.False(t, prove(t, Is(Integer(4), Atom("+").Apply(Integer(1), Integer(2)), Success, nil)))

	_, err := Is(NewVariable(), NewVariable(), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})
}

func TestArithComparison(t *testing.T) {
	assert.True(t, prove(t, ArithEqual(Integer(1), Float(1.0), Success, nil)))
	assert.False(t, prove(t, ArithEqual(Integer(1), Integer(2), Success, nil)))

	assert.True(t, prove(t, ArithNotEqual(Integer(1), Integer(2), Success, nil)))
	assert.False(t, prove(t, ArithNotEqual(Integer(1), Integer(1), Success, nil)))

	assert.True(t, prove(t, LessThan(Integer(1), Integer(2), Success, nil)))
	assert.False(t, prove(t, LessThan(Integer(2), Integer(1), Success, nil)))

	assert.True(t, prove(t, GreaterThan(Float(2.5), Integer(2), Success, nil)))
	assert.True(t, prove(t, LessEqual(Integer(2), Integer(2), Success, nil)))
	assert.True(t, prove(t, GreaterEqual(Integer(2), Integer(2), Success, nil)))
	assert.False(t, prove(t, GreaterEqual(Integer(1), Integer(2), Success, nil)))

	// Expressions evaluate on both sides.
	assert.True(t, prove(t, LessThan(
		Atom("*").Apply(Integer(2), Integer(3)),
		Atom("+").Apply(Integer(4), Integer(3)),
		Success, nil,
	)))

	_, err := LessThan(Atom("foo"), Integer(1), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})
}

func TestRuntime_GetChar(t *testing.T) {
	r := NewRuntime()
	r.SetUserInput(NewInputStream(strings.NewReader("ab")))

	read := func() Term {
		x := NewVariable()
		var got Term
		ok := prove(t, r.GetChar(x, func(env *Env) *Promise {
			got = env.Resolve(x)
			return Bool(true)
		}, nil))
		assert.True(t, ok)
		return got
	}

	assert.Equal(t, Atom("a"), read())
	assert.Equal(t, Atom("b"), read())
	assert.Equal(t, Atom("end_of_file"), read())

	_, err := r.GetChar(Integer(1), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})
}

func TestRuntime_PutChar(t *testing.T) {
	var buf bytes.Buffer
	r := NewRuntime()
	r.SetUserOutput(NewOutputStream(&buf))

	assert.True(t, prove(t, r.PutChar(Atom("a"), Success, nil)))
	assert.True(t, prove(t, r.PutChar(Atom("b"), Success, nil)))
	assert.Equal(t, "ab", buf.String())

	_, err := r.PutChar(NewVariable(), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})

	_, err = r.PutChar(Atom("ab"), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})

	_, err = r.PutChar(Integer(1), Success, nil).Force()
	assert.ErrorAs(t, err, &Exception{})
}

func TestRuntime_Write(t *testing.T) {
	var buf bytes.Buffer
	r := NewRuntime()
	r.SetUserOutput(NewOutputStream(&buf))

	assert.True(t, prove(t, r.Write(Atom("f").Apply(Atom("a"), Integer(1)), Success, nil)))
	assert.True(t, prove(t, r.Nl(Success, nil)))
	assert.Equal(t, "f(a,1)\n", buf.String())
}
