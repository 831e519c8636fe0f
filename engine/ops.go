package engine

// operatorClass is the specifier of an operator: the f marks the operator,
// x an argument of strictly lower priority, y one of equal-or-lower priority.
type operatorClass int

const (
	opXFX operatorClass = iota
	opXFY
	opYFX
	opFY
	opFX
)

type operator struct {
	priority int
	class    operatorClass
	name     Atom
}

// operators is the fixed operator table; op/3 is not supported.
var operators = []operator{
	{1200, opXFX, ":-"},
	{1200, opFX, ":-"},
	{1200, opFX, "?-"},
	{1100, opXFY, ";"},
	{1050, opXFY, "->"},
	{1000, opXFY, ","},
	{900, opFY, "\\+"},
	{700, opXFX, "="},
	{700, opXFX, "\\="},
	{700, opXFX, "=="},
	{700, opXFX, "\\=="},
	{700, opXFX, "is"},
	{700, opXFX, "=:="},
	{700, opXFX, "=\\="},
	{700, opXFX, "<"},
	{700, opXFX, ">"},
	{700, opXFX, "=<"},
	{700, opXFX, ">="},
	{700, opXFX, "=.."},
	{500, opYFX, "+"},
	{500, opYFX, "-"},
	{400, opYFX, "*"},
	{400, opYFX, "/"},
	{400, opYFX, "//"},
	{400, opYFX, "mod"},
	{400, opYFX, "rem"},
	{200, opXFY, "^"},
	{200, opFY, "-"},
	{200, opFY, "+"},
}

func lookupInfix(name Atom) (operator, bool) {
	for _, op := range operators {
		if op.name == name && (op.class == opXFX || op.class == opXFY || op.class == opYFX) {
			return op, true
		}
	}
	return operator{}, false
}

func lookupPrefix(name Atom) (operator, bool) {
	for _, op := range operators {
		if op.name == name && (op.class == opFY || op.class == opFX) {
			return op, true
		}
	}
	return operator{}, false
}
