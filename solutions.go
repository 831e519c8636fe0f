package prologue

import (
	"github.com/prologue-lang/prologue/engine"
)

// Solutions is an iterator over the solutions of a query. Call Next to
// advance to the next solution and Close to abandon the remaining ones.
type Solutions struct {
	vars   []engine.ParsedVariable
	more   chan<- bool
	next   <-chan *engine.Env
	env    *engine.Env
	err    error
	closed bool
}

// Next advances to the next solution. It returns false when there are no
// more solutions or an error occurred.
func (s *Solutions) Next() bool {
	if s.closed {
		return false
	}
	s.more <- true
	var ok bool
	s.env, ok = <-s.next
	if !ok {
		s.closed = true
	}
	return ok
}

// Close abandons the remaining solutions. It is safe to call after Next has
// returned false.
func (s *Solutions) Close() error {
	if !s.closed {
		close(s.more)
		s.closed = true
	}
	return nil
}

// Err returns the error that terminated the iteration, if any. It is valid
// only after Next has returned false.
func (s *Solutions) Err() error {
	return s.err
}

// Vars returns the names of the query's variables in order of first
// appearance.
func (s *Solutions) Vars() []string {
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

// Scan stores the current solution's bindings into m, keyed by variable
// name. Unbound variables are stored as themselves.
func (s *Solutions) Scan(m map[string]engine.Term) {
	for _, v := range s.vars {
		m[v.Name] = s.env.Simplify(v.Variable)
	}
}
