package engine

// Cont is a continuation: it receives the environment of a successful proof
// step and continues the search.
type Cont func(*Env) *Promise

// Success is a continuation that accepts any environment.
var Success Cont = func(*Env) *Promise {
	return Bool(true)
}

var (
	truePromise  = &Promise{ok: true}
	falsePromise = &Promise{}
)

// Promise is a delayed, backtrackable computation resulting in (bool, error).
// The zero value is equivalent to Bool(false).
type Promise struct {
	// delayed alternatives, tried left to right
	delayed []func() *Promise

	// final result
	ok  bool
	err error

	// execution control
	cutParent *Promise
	recover   func(error) *Promise
}

// Delay returns a promise that will try each alternative in order.
func Delay(alts ...func() *Promise) *Promise {
	return &Promise{delayed: alts}
}

// Bool returns a promise that simply results in ok.
func Bool(ok bool) *Promise {
	if ok {
		return truePromise
	}
	return falsePromise
}

// Error returns a promise that results in err.
func Error(err error) *Promise {
	return &Promise{err: err}
}

var rootCutParent Promise

// cut returns a promise that, once reached, discards every alternative
// stacked since parent. A nil parent cuts everything in the current search.
func cut(parent *Promise, k func() *Promise) *Promise {
	if parent == nil {
		parent = &rootCutParent
	}
	return &Promise{
		delayed:   []func() *Promise{k},
		cutParent: parent,
	}
}

// catch returns a promise guarded by a recovery function. When a descendant
// results in an error, recover is consulted; a non-nil promise resumes the
// search, a nil one lets the error propagate further up.
func catch(recover func(error) *Promise, k func() *Promise) *Promise {
	return &Promise{
		delayed: []func() *Promise{k},
		recover: recover,
	}
}

// Force drives the delayed computation to its next result. It trampolines so
// that deep derivations don't grow the Go stack.
func (p *Promise) Force() (bool, error) {
	stack := promiseStack{p}
	for len(stack) > 0 {
		p := stack.pop()

		if len(p.delayed) == 0 {
			switch {
			case p.err != nil:
				if err := stack.recover(p.err); err != nil {
					return false, err
				}
				continue
			case p.ok:
				return true, nil
			default:
				continue
			}
		}

		if p.cutParent != nil {
			stack.popUntil(p.cutParent)
			p.cutParent = nil // already cut; don't cut again on revisit
		}

		q := p.next()
		stack = append(stack, p, q)
	}
	return false, nil
}

func (p *Promise) next() *Promise {
	q := p.delayed[0]()
	p.delayed, p.delayed[0] = p.delayed[1:], nil
	return q
}

type promiseStack []*Promise

func (s *promiseStack) pop() *Promise {
	var p *Promise
	p, *s, (*s)[len(*s)-1] = (*s)[len(*s)-1], (*s)[:len(*s)-1], nil
	return p
}

func (s *promiseStack) popUntil(p *Promise) {
	for len(*s) > 0 {
		if popped := s.pop(); popped == p {
			break
		}
	}
}

// recover looks for the nearest ancestor with an applicable recovery
// function. It returns the error itself if none takes it.
func (s *promiseStack) recover(err error) error {
	for len(*s) > 0 {
		popped := s.pop()
		if popped.recover == nil {
			continue
		}
		if q := popped.recover(err); q != nil {
			*s = append(*s, q)
			return nil
		}
	}
	return err
}
