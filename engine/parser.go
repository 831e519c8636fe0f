package engine

import (
	"fmt"
	"io"
	"strconv"
)

// ParsedVariable associates a source-level variable name with the Variable
// allocated for it while reading a term.
type ParsedVariable struct {
	Name     string
	Variable Variable
}

// Parser reads terms from a text in operator notation.
type Parser struct {
	lexer  *lexer
	buf    token
	buffed bool
	vars   []ParsedVariable
}

// NewParser creates a Parser over the given text.
func NewParser(input string) *Parser {
	return &Parser{lexer: newLexer(input)}
}

// Variables returns the named variables of the last term read, in order of
// first appearance.
func (p *Parser) Variables() []ParsedVariable {
	return p.vars
}

// ReadTerm reads one term terminated by a period. It returns io.EOF once the
// input is exhausted.
func (p *Parser) ReadTerm() (Term, error) {
	p.vars = nil
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.kind == tokenEOF {
		return nil, io.EOF
	}
	x, err := p.expr(1200)
	if err != nil {
		return nil, err
	}
	t, err = p.next()
	if err != nil {
		return nil, err
	}
	if t.kind != tokenEnd {
		return nil, SyntaxError(fmt.Errorf("operator expected: %s", t))
	}
	return x, nil
}

func (p *Parser) peek() (token, error) {
	if !p.buffed {
		t, err := p.lexer.Next()
		if err != nil {
			return token{}, err
		}
		p.buf, p.buffed = t, true
	}
	return p.buf, nil
}

func (p *Parser) next() (token, error) {
	t, err := p.peek()
	p.buffed = false
	return t, err
}

// expr parses a term of priority at most maxPriority, folding in infix
// operators by precedence climbing.
func (p *Parser) expr(maxPriority int) (Term, error) {
	lhs, lhsPriority, err := p.primary(maxPriority)
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		var name Atom
		switch t.kind {
		case tokenAtom:
			name = Atom(t.val)
		case tokenComma:
			name = ","
		case tokenBar:
			name = ";"
		default:
			return lhs, nil
		}
		op, ok := lookupInfix(name)
		if !ok || op.priority > maxPriority {
			return lhs, nil
		}
		leftMax, rightMax := op.priority-1, op.priority-1
		switch op.class {
		case opYFX:
			leftMax = op.priority
		case opXFY:
			rightMax = op.priority
		}
		if lhsPriority > leftMax {
			return lhs, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.expr(rightMax)
		if err != nil {
			return nil, err
		}
		lhs = &Compound{Functor: name, Args: []Term{lhs, rhs}}
		lhsPriority = op.priority
	}
}

func (p *Parser) primary(maxPriority int) (Term, int, error) {
	t, err := p.next()
	if err != nil {
		return nil, 0, err
	}
	switch t.kind {
	case tokenEOF, tokenEnd:
		return nil, 0, SyntaxError(fmt.Errorf("unexpected %s", t))
	case tokenInteger:
		n, err := strconv.ParseInt(t.val, 10, 64)
		if err != nil {
			return nil, 0, SyntaxError(fmt.Errorf("invalid integer: %s", t.val))
		}
		return Integer(n), 0, nil
	case tokenFloat:
		f, err := strconv.ParseFloat(t.val, 64)
		if err != nil {
			return nil, 0, SyntaxError(fmt.Errorf("invalid float: %s", t.val))
		}
		return Float(f), 0, nil
	case tokenString:
		return String(t.val), 0, nil
	case tokenVariable:
		return p.variable(t.val), 0, nil
	case tokenOpen:
		x, err := p.expr(1200)
		if err != nil {
			return nil, 0, err
		}
		if err := p.expect(tokenClose); err != nil {
			return nil, 0, err
		}
		return x, 0, nil
	case tokenOpenList:
		x, err := p.list()
		return x, 0, err
	case tokenAtom:
		return p.atomic(Atom(t.val), maxPriority)
	default:
		return nil, 0, SyntaxError(fmt.Errorf("unexpected %s", t))
	}
}

// atomic parses what follows an atom token: a compound with arguments, a
// prefix operator application, or the plain atom itself.
func (p *Parser) atomic(name Atom, maxPriority int) (Term, int, error) {
	t, err := p.peek()
	if err != nil {
		return nil, 0, err
	}
	if t.kind == tokenOpen {
		if _, err := p.next(); err != nil {
			return nil, 0, err
		}
		args, err := p.args()
		if err != nil {
			return nil, 0, err
		}
		return &Compound{Functor: name, Args: args}, 0, nil
	}
	if op, ok := lookupPrefix(name); ok && op.priority <= maxPriority && p.beginsTerm(t) {
		if name == "-" && (t.kind == tokenInteger || t.kind == tokenFloat) {
			if _, err := p.next(); err != nil {
				return nil, 0, err
			}
			if t.kind == tokenInteger {
				n, err := strconv.ParseInt("-"+t.val, 10, 64)
				if err != nil {
					return nil, 0, SyntaxError(fmt.Errorf("invalid integer: -%s", t.val))
				}
				return Integer(n), 0, nil
			}
			f, err := strconv.ParseFloat("-"+t.val, 64)
			if err != nil {
				return nil, 0, SyntaxError(fmt.Errorf("invalid float: -%s", t.val))
			}
			return Float(f), 0, nil
		}
		argMax := op.priority
		if op.class == opFX {
			argMax--
		}
		arg, err := p.expr(argMax)
		if err != nil {
			return nil, 0, err
		}
		return &Compound{Functor: name, Args: []Term{arg}}, op.priority, nil
	}
	return name, 0, nil
}

// beginsTerm reports whether t can start an operand.
func (p *Parser) beginsTerm(t token) bool {
	switch t.kind {
	case tokenInteger, tokenFloat, tokenString, tokenVariable, tokenOpen, tokenOpenList:
		return true
	case tokenAtom:
		// An atom that is only an infix operator cannot start an operand.
		if _, infix := lookupInfix(Atom(t.val)); infix {
			_, prefix := lookupPrefix(Atom(t.val))
			return prefix
		}
		return true
	default:
		return false
	}
}

func (p *Parser) args() ([]Term, error) {
	var args []Term
	for {
		x, err := p.expr(999)
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokenComma:
			continue
		case tokenClose:
			return args, nil
		default:
			return nil, SyntaxError(fmt.Errorf("expected , or ): %s", t))
		}
	}
}

func (p *Parser) list() (Term, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.kind == tokenCloseList {
		_, err := p.next()
		return atomEmptyList, err
	}
	var elems []Term
	tail := Term(atomEmptyList)
	for {
		x, err := p.expr(999)
		if err != nil {
			return nil, err
		}
		elems = append(elems, x)
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokenComma:
			continue
		case tokenBar:
			tail, err = p.expr(999)
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokenCloseList); err != nil {
				return nil, err
			}
			return ListRest(tail, elems...), nil
		case tokenCloseList:
			return ListRest(tail, elems...), nil
		default:
			return nil, SyntaxError(fmt.Errorf("expected , | or ]: %s", t))
		}
	}
}

func (p *Parser) expect(kind tokenKind) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t.kind != kind {
		return SyntaxError(fmt.Errorf("expected %s: %s", kind, t))
	}
	return nil
}

// variable returns the Variable for a source name, allocating one on first
// appearance. The anonymous variable is always fresh.
func (p *Parser) variable(name string) Variable {
	if name == "_" {
		return NewVariable()
	}
	for _, pv := range p.vars {
		if pv.Name == name {
			return pv.Variable
		}
	}
	v := NewVariable()
	p.vars = append(p.vars, ParsedVariable{Name: name, Variable: v})
	return v
}
