package engine

// ListIterator is an iterator over the elements of a proper list.
type ListIterator struct {
	List Term
	Env  *Env

	current Term
	err     error
}

// Next proceeds to the next element of the list and returns true if there is
// such an element.
func (i *ListIterator) Next() bool {
	switch l := i.Env.Resolve(i.List).(type) {
	case Variable:
		i.err = InstantiationError(i.Env)
		return false
	case Atom:
		if l != atomEmptyList {
			i.err = TypeError(ValidTypeList, l, i.Env)
		}
		return false
	case *Compound:
		if l.Functor != atomDot || len(l.Args) != 2 {
			i.err = TypeError(ValidTypeList, l, i.Env)
			return false
		}
		i.current, i.List = l.Args[0], l.Args[1]
		return true
	default:
		i.err = TypeError(ValidTypeList, l, i.Env)
		return false
	}
}

// Current returns the current element.
func (i *ListIterator) Current() Term {
	return i.current
}

// Err returns the error that stopped the iteration, if any.
func (i *ListIterator) Err() error {
	return i.err
}

// Suffix returns the part of the list that is not iterated over yet.
func (i *ListIterator) Suffix() Term {
	return i.Env.Resolve(i.List)
}
