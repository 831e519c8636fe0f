package engine

import "strings"

// Exception is an error represented by a Prolog term, catchable by catch/3.
type Exception struct {
	term Term
}

// NewException creates an exception from a renamed copy of the given term, so
// the ball stays valid after the environment it was built in is discarded.
func NewException(term Term, env *Env) Exception {
	return Exception{term: renamedCopy(term, nil, env)}
}

// Term returns the underlying term of the exception.
func (e Exception) Term() Term {
	return e.term
}

func (e Exception) Error() string {
	var sb strings.Builder
	_ = WriteTerm(&sb, e.term, nil, WithQuoted(true))
	return sb.String()
}

func errorTerm(t Term) Term {
	return &Compound{
		Functor: "error",
		Args:    []Term{t, NewVariable()},
	}
}

// InstantiationError returns an error for an argument that is required to be
// bound but is an unbound variable.
func InstantiationError(env *Env) Exception {
	return NewException(errorTerm(Atom("instantiation_error")), env)
}

// ValidType is the type an argument was required to have.
type ValidType uint8

const (
	ValidTypeAtom ValidType = iota
	ValidTypeCallable
	ValidTypeCharacter
	ValidTypeEvaluable
	ValidTypeInteger
	ValidTypeList
	ValidTypeNumber
	ValidTypePredicateIndicator
)

// Term returns an Atom for the ValidType.
func (t ValidType) Term() Term {
	return [...]Atom{
		ValidTypeAtom:               "atom",
		ValidTypeCallable:           "callable",
		ValidTypeCharacter:          "character",
		ValidTypeEvaluable:          "evaluable",
		ValidTypeInteger:            "integer",
		ValidTypeList:               "list",
		ValidTypeNumber:             "number",
		ValidTypePredicateIndicator: "predicate_indicator",
	}[t]
}

// TypeError returns an error for an argument of the wrong type.
func TypeError(validType ValidType, culprit Term, env *Env) Exception {
	return NewException(errorTerm(&Compound{
		Functor: "type_error",
		Args:    []Term{validType.Term(), culprit},
	}), env)
}

// ExistenceError returns an error for a call to a procedure that is not
// defined.
func ExistenceError(pi Indicator, env *Env) Exception {
	return NewException(errorTerm(&Compound{
		Functor: "existence_error",
		Args:    []Term{Atom("procedure"), pi.Term()},
	}), env)
}

// PermissionError returns an error for an operation that is not permitted,
// e.g. modifying a built-in procedure.
func PermissionError(operation, permissionType Atom, culprit Term, env *Env) Exception {
	return NewException(errorTerm(&Compound{
		Functor: "permission_error",
		Args:    []Term{operation, permissionType, culprit},
	}), env)
}

// ExceptionalValue is an evaluable functor's result which is not a number.
type ExceptionalValue uint8

const (
	ExceptionalValueZeroDivisor ExceptionalValue = iota
	ExceptionalValueIntOverflow
	ExceptionalValueFloatOverflow
	ExceptionalValueUndefined
)

// Term returns an Atom for the ExceptionalValue.
func (ev ExceptionalValue) Term() Term {
	return [...]Atom{
		ExceptionalValueZeroDivisor:   "zero_divisor",
		ExceptionalValueIntOverflow:   "int_overflow",
		ExceptionalValueFloatOverflow: "float_overflow",
		ExceptionalValueUndefined:     "undefined",
	}[ev]
}

// EvaluationError returns an error raised by the arithmetic evaluator.
func EvaluationError(ev ExceptionalValue, env *Env) Exception {
	return NewException(errorTerm(&Compound{
		Functor: "evaluation_error",
		Args:    []Term{ev.Term()},
	}), env)
}

// SyntaxError returns an error for text that could not be read as a term.
func SyntaxError(err error) Exception {
	return NewException(errorTerm(&Compound{
		Functor: "syntax_error",
		Args:    []Term{Atom(err.Error())},
	}), nil)
}
