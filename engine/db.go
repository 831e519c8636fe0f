package engine

// Clause is a fact or a rule stored in the database. A fact is a rule whose
// body is the atom true.
type Clause struct {
	Head Term
	Body Term
}

// NewFact returns a clause with a head only.
func NewFact(head Term) *Clause {
	return &Clause{Head: head, Body: atomTrue}
}

// NewRule returns a clause with a head and a body.
func NewRule(head, body Term) *Clause {
	return &Clause{Head: head, Body: body}
}

// NewClause normalizes t into a clause: a term with the rule connective as
// its functor splits into head and body, any other callable becomes a fact.
// The clause is detached from env; its variables are renamed so later binding
// of the original term doesn't alter the stored clause.
func NewClause(t Term, env *Env) (*Clause, error) {
	head, body := env.Resolve(t), Term(atomTrue)
	if c, ok := head.(*Compound); ok && c.Functor == atomIf && len(c.Args) == 2 {
		head, body = c.Args[0], c.Args[1]
	}
	switch h := env.Resolve(head).(type) {
	case Variable:
		return nil, InstantiationError(env)
	case Atom, *Compound:
		_ = h
	default:
		return nil, TypeError(ValidTypeCallable, t, env)
	}
	switch b := env.Resolve(body).(type) {
	case Integer, Float, String:
		return nil, TypeError(ValidTypeCallable, b, env)
	}
	vars := map[Variable]Variable{}
	return &Clause{
		Head: renamedCopy(head, vars, env),
		Body: renamedCopy(body, vars, env),
	}, nil
}

// Indicator returns the functor/arity the clause defines.
func (c *Clause) Indicator() Indicator {
	pi, _ := indicatorOf(c.Head, nil)
	return pi
}

// Term returns the clause as a term: the head alone for a fact, head :- body
// otherwise.
func (c *Clause) Term() Term {
	if c.Body == atomTrue {
		return c.Head
	}
	return &Compound{Functor: atomIf, Args: []Term{c.Head, c.Body}}
}

// renamed returns a copy of the clause with fresh variables. Head and body
// share the renaming, so a variable occurring in both stays one variable.
func (c *Clause) renamed() *Clause {
	vars := map[Variable]Variable{}
	return &Clause{
		Head: renamedCopy(c.Head, vars, nil),
		Body: renamedCopy(c.Body, vars, nil),
	}
}

// Database is an ordered collection of clauses. Mutation through Asserta,
// Assertz, and Retract is immediate and global; iteration safety for
// in-flight resolutions comes from the snapshots Match returns.
type Database struct {
	clauses []*Clause
	known   map[Indicator]struct{}
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{known: map[Indicator]struct{}{}}
}

// Asserta prepends the clause.
func (db *Database) Asserta(c *Clause) {
	db.clauses = append([]*Clause{c}, db.clauses...)
	db.known[c.Indicator()] = struct{}{}
}

// Assertz appends the clause.
func (db *Database) Assertz(c *Clause) {
	db.clauses = append(db.clauses, c)
	db.known[c.Indicator()] = struct{}{}
}

// Match returns a snapshot of the clauses whose head has the given indicator,
// in database order. Later mutation doesn't affect the returned slice.
func (db *Database) Match(pi Indicator) []*Clause {
	var cs []*Clause
	for _, c := range db.clauses {
		if c.Indicator() == pi {
			cs = append(cs, c)
		}
	}
	return cs
}

// Known reports whether a clause for the indicator has ever been asserted.
// Retracting the last clause doesn't make a predicate unknown again.
func (db *Database) Known(pi Indicator) bool {
	_, ok := db.known[pi]
	return ok
}

// Clauses returns a snapshot of all clauses in database order.
func (db *Database) Clauses() []*Clause {
	cs := make([]*Clause, len(db.clauses))
	copy(cs, db.clauses)
	return cs
}

// RetractFirst scans the database in order, renames each candidate fresh, and
// unifies head (and body, unless body is nil) against it. The first matching
// clause is removed and the extended environment returned. It succeeds at
// most once.
func (db *Database) RetractFirst(head, body Term, env *Env) (*Env, bool) {
	for i, c := range db.clauses {
		fresh := c.renamed()
		env2, ok := env.Unify(head, fresh.Head, true)
		if !ok {
			continue
		}
		if body != nil {
			env2, ok = env2.Unify(body, fresh.Body, true)
			if !ok {
				continue
			}
		}
		db.clauses = append(db.clauses[:i:i], db.clauses[i+1:]...)
		return env2, true
	}
	return env, false
}
