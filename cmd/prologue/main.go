package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/prologue-lang/prologue"
	"github.com/prologue-lang/prologue/engine"
)

// Version is a version of this build.
var Version = "prologue/0.1"

func main() {
	var verbose bool
	pflag.BoolVarP(&verbose, "verbose", "v", false, `verbose`)
	pflag.Parse()

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	oldState, err := term.MakeRaw(0)
	if err != nil {
		log.Panicf("failed to enter raw mode: %v", err)
	}
	restore := func() {
		_ = term.Restore(0, oldState)
	}
	defer restore()

	t := term.NewTerminal(os.Stdin, "?- ")
	defer fmt.Printf("\r\n")

	log.SetOutput(t)
	logrus.SetOutput(t)

	i := prologue.New(os.Stdin, t)
	i.BeforeHalt = append(i.BeforeHalt, restore)
	i.Register1("version", func(v engine.Term, k engine.Cont, env *engine.Env) *engine.Promise {
		return engine.Unify(v, engine.Atom(Version), k, env)
	})

	for _, a := range pflag.Args() {
		if err := i.Consult(a); err != nil {
			log.Panicf("failed to consult %s: %v", a, err)
		}
	}

	keys := bufio.NewReader(os.Stdin)
	for {
		if err := handleLine(i, t, keys); err != nil {
			if err == io.EOF {
				return
			}
			log.Panic(err)
		}
	}
}

func handleLine(i *prologue.Interpreter, t *term.Terminal, keys *bufio.Reader) error {
	line, err := t.ReadLine()
	if err != nil {
		if err == io.EOF {
			return err
		}
		log.Printf("failed to read line: %v", err)
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	sols, err := i.Query(line)
	if err != nil {
		log.Printf("failed to query: %v", err)
		return nil
	}

	found := false
	for sols.Next() {
		found = true

		m := map[string]engine.Term{}
		sols.Scan(m)

		ls := make([]string, 0, len(m))
		for _, n := range sols.Vars() {
			v := m[n]
			if _, ok := v.(engine.Variable); ok {
				continue
			}
			ls = append(ls, fmt.Sprintf("%s = %s", n, v))
		}
		if len(ls) == 0 {
			if _, err := fmt.Fprintf(t, "true.\n"); err != nil {
				return err
			}
			break
		}

		if _, err := fmt.Fprintf(t, "%s ", strings.Join(ls, ",\n")); err != nil {
			return err
		}

		r, _, err := keys.ReadRune()
		if err != nil {
			log.Printf("failed to read rune: %v", err)
			break
		}
		if r != ';' {
			r = '.'
		}

		if _, err := fmt.Fprintf(t, "%s\n", string(r)); err != nil {
			return err
		}

		if r == '.' {
			break
		}
	}
	if err := sols.Close(); err != nil {
		return err
	}

	if err := sols.Err(); err != nil {
		log.Printf("failed: %v", err)
		return nil
	}

	if !found {
		if _, err := fmt.Fprintf(t, "false.\n"); err != nil {
			return err
		}
	}
	return nil
}
