package engine

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	unquotedAtomPattern  = regexp.MustCompile(`\A[a-z]\w*\z`)
	graphicalAtomPattern = regexp.MustCompile(`\A[#$&*+\-./:<=>?@^~\\]+\z`)
	alphabeticOpPattern  = regexp.MustCompile(`\A[a-z]\w*\z`)
)

type writeOptions struct {
	quoted   bool
	priority int
}

// WriteOption configures WriteTerm.
type WriteOption func(*writeOptions)

// WithQuoted sets whether atoms are quoted as needed.
func WithQuoted(b bool) WriteOption {
	return func(o *writeOptions) {
		o.quoted = b
	}
}

// WriteTerm writes t's external representation. Bound variables are written
// as their values, operators in operator notation, lists in bracket
// notation.
func WriteTerm(w io.Writer, t Term, env *Env, opts ...WriteOption) error {
	o := writeOptions{priority: 1200}
	for _, opt := range opts {
		opt(&o)
	}
	return writeTerm(w, t, env, o)
}

func writeTerm(w io.Writer, t Term, env *Env, o writeOptions) error {
	switch t := env.Resolve(t).(type) {
	case Variable:
		_, err := fmt.Fprint(w, t.String())
		return err
	case Atom:
		return writeAtom(w, t, o)
	case Integer:
		_, err := fmt.Fprint(w, strconv.FormatInt(int64(t), 10))
		return err
	case Float:
		s := strconv.FormatFloat(float64(t), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		_, err := fmt.Fprint(w, s)
		return err
	case String:
		_, err := fmt.Fprintf(w, "%q", string(t))
		return err
	case *Compound:
		return writeCompound(w, t, env, o)
	default:
		_, err := fmt.Fprint(w, t)
		return err
	}
}

func writeAtom(w io.Writer, a Atom, o writeOptions) error {
	s := string(a)
	switch {
	case !o.quoted,
		unquotedAtomPattern.MatchString(s),
		graphicalAtomPattern.MatchString(s),
		s == "[]", s == "{}", s == "!", s == ";", s == ",":
		_, err := fmt.Fprint(w, s)
		return err
	default:
		_, err := fmt.Fprint(w, quoteAtom(s))
		return err
	}
}

func quoteAtom(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func writeCompound(w io.Writer, c *Compound, env *Env, o writeOptions) error {
	if c.Functor == atomDot && len(c.Args) == 2 {
		return writeList(w, c, env, o)
	}

	if len(c.Args) == 2 {
		if op, ok := lookupInfix(c.Functor); ok {
			return writeInfix(w, op, c, env, o)
		}
	}
	if len(c.Args) == 1 {
		if op, ok := lookupPrefix(c.Functor); ok {
			return writePrefix(w, op, c, env, o)
		}
	}

	if err := writeAtom(w, c.Functor, o); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "("); err != nil {
		return err
	}
	for i, a := range c.Args {
		if i > 0 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}
		if err := writeTerm(w, a, env, writeOptions{quoted: o.quoted, priority: 999}); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

func writeList(w io.Writer, c *Compound, env *Env, o writeOptions) error {
	if _, err := fmt.Fprint(w, "["); err != nil {
		return err
	}
	elem := writeOptions{quoted: o.quoted, priority: 999}
	iter := ListIterator{List: c, Env: env}
	first := true
	for iter.Next() {
		if !first {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}
		first = false
		if err := writeTerm(w, iter.Current(), env, elem); err != nil {
			return err
		}
	}
	if iter.Err() != nil {
		if _, err := fmt.Fprint(w, "|"); err != nil {
			return err
		}
		if err := writeTerm(w, iter.Suffix(), env, elem); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "]")
	return err
}

func writeInfix(w io.Writer, op operator, c *Compound, env *Env, o writeOptions) error {
	open, shut := "", ""
	if op.priority > o.priority {
		open, shut = "(", ")"
	}
	lp, rp := op.priority, op.priority
	switch op.class {
	case opXFX:
		lp, rp = lp-1, rp-1
	case opXFY:
		lp = lp - 1
	case opYFX:
		rp = rp - 1
	}
	if _, err := fmt.Fprint(w, open); err != nil {
		return err
	}
	if err := writeTerm(w, c.Args[0], env, writeOptions{quoted: o.quoted, priority: lp}); err != nil {
		return err
	}
	name := string(op.name)
	if alphabeticOpPattern.MatchString(name) {
		name = " " + name + " "
	}
	if _, err := fmt.Fprint(w, name); err != nil {
		return err
	}
	if err := writeTerm(w, c.Args[1], env, writeOptions{quoted: o.quoted, priority: rp}); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, shut)
	return err
}

func writePrefix(w io.Writer, op operator, c *Compound, env *Env, o writeOptions) error {
	open, shut := "", ""
	if op.priority > o.priority {
		open, shut = "(", ")"
	}
	ap := op.priority
	if op.class == opFX {
		ap--
	}
	if _, err := fmt.Fprint(w, open); err != nil {
		return err
	}
	name := string(op.name)
	if alphabeticOpPattern.MatchString(name) {
		name += " "
	}
	if _, err := fmt.Fprint(w, name); err != nil {
		return err
	}
	if err := writeTerm(w, c.Args[0], env, writeOptions{quoted: o.quoted, priority: ap}); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, shut)
	return err
}

func termString(t Term) string {
	var sb strings.Builder
	_ = WriteTerm(&sb, t, nil)
	return sb.String()
}

func (a Atom) String() string    { return termString(a) }
func (i Integer) String() string { return termString(i) }
func (f Float) String() string   { return termString(f) }
func (s String) String() string  { return termString(s) }

func (c *Compound) String() string { return termString(c) }
