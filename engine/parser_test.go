package engine

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParser_ReadTerm(t *testing.T) {
	tests := []struct {
		title  string
		input  string
		result func() Term
	}{
		{title: "atom", input: "foo.", result: func() Term { return Atom("foo") }},
		{title: "quoted atom", input: "'hello world'.", result: func() Term { return Atom("hello world") }},
		{title: "integer", input: "42.", result: func() Term { return Integer(42) }},
		{title: "negative integer", input: "-42.", result: func() Term { return Integer(-42) }},
		{title: "float", input: "1.5.", result: func() Term { return Float(1.5) }},
		{title: "negative float", input: "-1.5.", result: func() Term { return Float(-1.5) }},
		{title: "string", input: `"abc".`, result: func() Term { return String("abc") }},

		{title: "compound", input: "f(a, b).", result: func() Term {
			return Atom("f").Apply(Atom("a"), Atom("b"))
		}},
		{title: "nested compound", input: "f(g(a), h(b, c)).", result: func() Term {
			return Atom("f").Apply(Atom("g").Apply(Atom("a")), Atom("h").Apply(Atom("b"), Atom("c")))
		}},

		{title: "empty list", input: "[].", result: func() Term { return List() }},
		{title: "list", input: "[a, b, c].", result: func() Term {
			return List(Atom("a"), Atom("b"), Atom("c"))
		}},

		{title: "parenthesized", input: "(a).", result: func() Term { return Atom("a") }},

		{title: "infix operators by priority", input: "1+2*3.", result: func() Term {
			return Atom("+").Apply(Integer(1), Atom("*").Apply(Integer(2), Integer(3)))
		}},
		{title: "parentheses override priority", input: "(1+2)*3.", result: func() Term {
			return Atom("*").Apply(Atom("+").Apply(Integer(1), Integer(2)), Integer(3))
		}},
		{title: "left associative", input: "1-2-3.", result: func() Term {
			return Atom("-").Apply(Atom("-").Apply(Integer(1), Integer(2)), Integer(3))
		}},
		{title: "right associative", input: "a,b,c.", result: func() Term {
			return Atom(",").Apply(Atom("a"), Atom(",").Apply(Atom("b"), Atom("c")))
		}},
		{title: "comparison", input: "X =< 3.", result: func() Term {
			return Atom("=<").Apply(lastVariable(), Integer(3))
		}},
		{title: "rule", input: "p(X) :- q(X), r(X).", result: func() Term {
			x := lastVariable()
			return Atom(":-").Apply(
				Atom("p").Apply(x),
				Atom(",").Apply(Atom("q").Apply(x), Atom("r").Apply(x)),
			)
		}},
		{title: "directive", input: ":- foo.", result: func() Term {
			return Atom(":-").Apply(Atom("foo"))
		}},
		{title: "negation", input: "\\+ a.", result: func() Term {
			return Atom("\\+").Apply(Atom("a"))
		}},
		{title: "if-then-else", input: "a -> b ; c.", result: func() Term {
			return Atom(";").Apply(Atom("->").Apply(Atom("a"), Atom("b")), Atom("c"))
		}},
		{title: "prefix minus on a variable", input: "- X.", result: func() Term {
			return Atom("-").Apply(lastVariable())
		}},
		{title: "operators as arguments need parentheses", input: "f((a, b), c).", result: func() Term {
			return Atom("f").Apply(Atom(",").Apply(Atom("a"), Atom("b")), Atom("c"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			p := NewParser(tt.input)
			got, err := p.ReadTerm()
			assert.NoError(t, err)
			assert.Equal(t, tt.result(), got)
		})
	}
}

// lastVariable returns the most recently allocated variable so that expected
// terms can refer to variables the parser created.
func lastVariable() Variable {
	return Variable(varCounter)
}

func TestParser_Variables(t *testing.T) {
	t.Run("same name, same variable", func(t *testing.T) {
		p := NewParser("f(X, Y, X).")
		got, err := p.ReadTerm()
		assert.NoError(t, err)

		vars := p.Variables()
		assert.Len(t, vars, 2)
		assert.Equal(t, "X", vars[0].Name)
		assert.Equal(t, "Y", vars[1].Name)

		f, ok := got.(*Compound)
		assert.True(t, ok)
		assert.Equal(t, f.Args[0], f.Args[2])
		assert.NotEqual(t, f.Args[0], f.Args[1])
	})

	t.Run("anonymous variables are always fresh", func(t *testing.T) {
		p := NewParser("f(_, _).")
		got, err := p.ReadTerm()
		assert.NoError(t, err)

		assert.Empty(t, p.Variables())

		f, ok := got.(*Compound)
		assert.True(t, ok)
		assert.NotEqual(t, f.Args[0], f.Args[1])
	})

	t.Run("reset per term", func(t *testing.T) {
		p := NewParser("f(X). g(Y).")
		_, err := p.ReadTerm()
		assert.NoError(t, err)
		assert.Equal(t, "X", p.Variables()[0].Name)

		_, err = p.ReadTerm()
		assert.NoError(t, err)
		vars := p.Variables()
		assert.Len(t, vars, 1)
		assert.Equal(t, "Y", vars[0].Name)
	})
}

func TestParser_ReadTerm_Sequence(t *testing.T) {
	p := NewParser("foo. bar(a).")

	x, err := p.ReadTerm()
	assert.NoError(t, err)
	assert.Equal(t, Atom("foo"), x)

	x, err = p.ReadTerm()
	assert.NoError(t, err)
	assert.Equal(t, Atom("bar").Apply(Atom("a")), x)

	_, err = p.ReadTerm()
	assert.Equal(t, io.EOF, err)
}

func TestParser_ReadTerm_Lists(t *testing.T) {
	t.Run("partial list", func(t *testing.T) {
		p := NewParser("[a, b|T].")
		got, err := p.ReadTerm()
		assert.NoError(t, err)
		assert.Equal(t, ListRest(lastVariable(), Atom("a"), Atom("b")), got)
	})

	t.Run("nested lists", func(t *testing.T) {
		p := NewParser("[[a], []].")
		got, err := p.ReadTerm()
		assert.NoError(t, err)
		assert.Equal(t, List(List(Atom("a")), List()), got)
	})
}

func TestParser_ReadTerm_Errors(t *testing.T) {
	for _, input := range []string{
		"foo",        // no terminating period
		"f(a.",       // unclosed arguments
		"[a, b.",     // unclosed list
		"f(a,).",     // missing argument
		"1 + .",      // missing operand
		")(.",        // stray punctuation
		"f(a) g(b).", // two terms without an operator
		"'unclosed.", // lexical error
	} {
		p := NewParser(input)
		_, err := p.ReadTerm()
		assert.Error(t, err, "%q", input)
	}
}
