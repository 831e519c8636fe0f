package engine

import (
	"fmt"
	"sync/atomic"
)

var varCounter int64

// Variable is a logical placeholder. Two variables denote the same binding
// target only if their internal identities are equal.
type Variable int64

// NewVariable returns a fresh variable, distinct from every variable created
// before it.
func NewVariable() Variable {
	return Variable(atomic.AddInt64(&varCounter, 1))
}

func (v Variable) term() {}

func (v Variable) String() string {
	return fmt.Sprintf("_%d", int64(v))
}
