package prologue

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prologue-lang/prologue/engine"
)

// Interpreter is a Prolog interpreter with the standard built-in predicates
// registered.
type Interpreter struct {
	*engine.Runtime
}

// New creates an Interpreter reading from in and writing to out. Either may
// be nil.
func New(in io.Reader, out io.Writer) *Interpreter {
	i := &Interpreter{Runtime: engine.NewRuntime()}
	if in != nil {
		i.SetUserInput(engine.NewInputStream(in))
	}
	if out != nil {
		i.SetUserOutput(engine.NewOutputStream(out))
	}

	// Unification and comparison.
	i.Register2("=", engine.Unify)
	i.Register2("\\=", engine.NotUnifiable)
	i.Register2("==", engine.TermEqual)
	i.Register2("\\==", engine.TermNotEqual)

	// Type testing.
	i.Register1("var", engine.TypeVar)
	i.Register1("nonvar", engine.TypeNonVar)
	i.Register1("atom", engine.TypeAtom)
	i.Register1("number", engine.TypeNumber)
	i.Register1("compound", engine.TypeCompound)
	i.Register1("atomic", engine.TypeAtomic)
	i.Register1("callable", engine.TypeCallable)

	// Term construction and inspection.
	i.Register3("functor", engine.Functor)
	i.Register2("=..", engine.Univ)
	i.Register2("copy_term", engine.CopyTerm)

	// Lists.
	i.Register2("member", engine.Member)
	i.Register3("append", engine.Append)
	i.Register2("length", engine.Length)

	// Control.
	i.Register1("call", i.Runtime.Call)
	i.Register1("\\+", i.Runtime.Negation)
	i.Register1("throw", engine.Throw)
	i.Register3("catch", i.Runtime.Catch)
	i.Register0("halt", func(k engine.Cont, env *engine.Env) *engine.Promise {
		return i.Runtime.Halt(engine.Integer(0), k, env)
	})
	i.Register1("halt", i.Runtime.Halt)

	// Arithmetic.
	i.Register2("is", engine.Is)
	i.Register2("=:=", engine.ArithEqual)
	i.Register2("=\\=", engine.ArithNotEqual)
	i.Register2("<", engine.LessThan)
	i.Register2(">", engine.GreaterThan)
	i.Register2("=<", engine.LessEqual)
	i.Register2(">=", engine.GreaterEqual)

	// Database.
	i.Register3("findall", i.Runtime.FindAll)
	i.Register1("asserta", i.Runtime.Asserta)
	i.Register1("assertz", i.Runtime.Assertz)
	i.Register1("assert", i.Runtime.Assertz)
	i.Register1("retract", i.Runtime.Retract)

	// Input and output.
	i.Register1("get_char", i.Runtime.GetChar)
	i.Register1("put_char", i.Runtime.PutChar)
	i.Register1("write", i.Runtime.Write)
	i.Register0("nl", i.Runtime.Nl)

	// Program loading.
	i.Register1("consult", i.consult)

	return i
}

// Exec loads a program text: clauses are asserted, directives are proved in
// order of appearance.
func (i *Interpreter) Exec(text string) error {
	p := engine.NewParser(text)
	for {
		t, err := p.ReadTerm()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if c, ok := t.(*engine.Compound); ok && len(c.Args) == 1 && (c.Functor == ":-" || c.Functor == "?-") {
			ok, err := i.Solve(c.Args[0], engine.Success, engine.NewEnv()).Force()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("directive failed: %s", c.Args[0])
			}
			continue
		}
		if err := i.Assert(t); err != nil {
			return err
		}
	}
}

// Consult reads a program from a file and loads it. A name without an
// extension is also tried with ".pl" appended.
func (i *Interpreter) Consult(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil && !strings.Contains(filename, ".") {
		if c, retry := os.ReadFile(filename + ".pl"); retry == nil {
			b, err = c, nil
		}
	}
	if err != nil {
		return err
	}
	return i.Exec(string(b))
}

func (i *Interpreter) consult(file engine.Term, k engine.Cont, env *engine.Env) *engine.Promise {
	switch f := env.Resolve(file).(type) {
	case engine.Variable:
		return engine.Error(engine.InstantiationError(env))
	case engine.Atom:
		return engine.Delay(func() *engine.Promise {
			if err := i.Consult(string(f)); err != nil {
				return engine.Error(err)
			}
			return k(env)
		})
	default:
		return engine.Error(engine.TypeError(engine.ValidTypeAtom, file, env))
	}
}

// Query runs a query against the interpreter and returns an iterator over its
// solutions.
func (i *Interpreter) Query(query string) (*Solutions, error) {
	p := engine.NewParser(query)
	t, err := p.ReadTerm()
	if err != nil {
		return nil, err
	}

	more := make(chan bool, 1)
	next := make(chan *engine.Env)
	sols := &Solutions{vars: p.Variables(), more: more, next: next}
	go func() {
		defer close(next)
		if !<-more {
			return
		}
		_, err := i.Solve(t, func(env *engine.Env) *engine.Promise {
			next <- env
			return engine.Bool(!<-more)
		}, engine.NewEnv()).Force()
		sols.err = err
	}()
	return sols, nil
}
