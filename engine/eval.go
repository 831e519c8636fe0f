package engine

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd"
)

// evalContext is the decimal context arithmetic is computed in. 34 digits
// covers every int64 exactly and keeps float results at full precision.
var evalContext = apd.BaseContext.WithPrecision(34)

// Eval evaluates an arithmetic expression to an Integer or a Float.
// Operations between integers yield an integer wherever the result is exact;
// everything else yields a float.
func Eval(expression Term, env *Env) (Term, error) {
	switch t := env.Resolve(expression).(type) {
	case Variable:
		return nil, InstantiationError(env)
	case Integer, Float:
		return t, nil
	case Atom:
		switch t {
		case "pi":
			return Float(math.Pi), nil
		case "e":
			return Float(math.E), nil
		default:
			return nil, TypeError(ValidTypeEvaluable, Indicator{Name: t}.Term(), env)
		}
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			v, err := Eval(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		switch len(args) {
		case 1:
			return evalUnary(t.Functor, args[0], env)
		case 2:
			return evalBinary(t.Functor, args[0], args[1], env)
		}
		return nil, TypeError(ValidTypeEvaluable, Indicator{Name: t.Functor, Arity: len(t.Args)}.Term(), env)
	default:
		return nil, TypeError(ValidTypeEvaluable, t, env)
	}
}

func evalUnary(op Atom, x Term, env *Env) (Term, error) {
	_, isInt := x.(Integer)
	d := decimalOf(x)
	var z apd.Decimal
	switch op {
	case "-":
		z.Neg(d)
	case "+":
		z.Set(d)
	case "abs":
		z.Abs(d)
	case "sign":
		return Integer(d.Sign()), nil
	case "float":
		f, err := floatOf(d, env)
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case "truncate":
		f, err := floatOf(d, env)
		if err != nil {
			return nil, err
		}
		return Integer(int64(math.Trunc(f))), nil
	default:
		return nil, TypeError(ValidTypeEvaluable, Indicator{Name: op, Arity: 1}.Term(), env)
	}
	return numberOf(&z, isInt, env)
}

func evalBinary(op Atom, x, y Term, env *Env) (Term, error) {
	_, ix := x.(Integer)
	_, iy := y.(Integer)
	bothInt := ix && iy
	a, b := decimalOf(x), decimalOf(y)
	var z apd.Decimal
	switch op {
	case "+":
		if _, err := evalContext.Add(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
	case "-":
		if _, err := evalContext.Sub(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
	case "*":
		if _, err := evalContext.Mul(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
	case "/":
		if b.Sign() == 0 {
			return nil, EvaluationError(ExceptionalValueZeroDivisor, env)
		}
		if bothInt {
			var rem apd.Decimal
			if _, err := evalContext.Rem(&rem, a, b); err == nil && rem.Sign() == 0 {
				if _, err := evalContext.QuoInteger(&z, a, b); err == nil {
					return numberOf(&z, true, env)
				}
			}
		}
		if _, err := evalContext.Quo(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
		return numberOf(&z, false, env)
	case "//":
		if !bothInt {
			culprit := x
			if ix {
				culprit = y
			}
			return nil, TypeError(ValidTypeInteger, culprit, env)
		}
		if b.Sign() == 0 {
			return nil, EvaluationError(ExceptionalValueZeroDivisor, env)
		}
		if _, err := evalContext.QuoInteger(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
	case "mod":
		if !bothInt {
			culprit := x
			if ix {
				culprit = y
			}
			return nil, TypeError(ValidTypeInteger, culprit, env)
		}
		if b.Sign() == 0 {
			return nil, EvaluationError(ExceptionalValueZeroDivisor, env)
		}
		if _, err := evalContext.Rem(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
		// the result of mod takes the sign of the divisor
		if z.Sign() != 0 && z.Sign() != b.Sign() {
			if _, err := evalContext.Add(&z, &z, b); err != nil {
				return nil, EvaluationError(ExceptionalValueUndefined, env)
			}
		}
	case "rem":
		if !bothInt {
			culprit := x
			if ix {
				culprit = y
			}
			return nil, TypeError(ValidTypeInteger, culprit, env)
		}
		if b.Sign() == 0 {
			return nil, EvaluationError(ExceptionalValueZeroDivisor, env)
		}
		if _, err := evalContext.Rem(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
	case "min":
		if a.Cmp(b) <= 0 {
			return x, nil
		}
		return y, nil
	case "max":
		if a.Cmp(b) >= 0 {
			return x, nil
		}
		return y, nil
	case "^":
		if _, err := evalContext.Pow(&z, a, b); err != nil {
			return nil, EvaluationError(ExceptionalValueUndefined, env)
		}
		return numberOf(&z, bothInt && b.Sign() >= 0, env)
	default:
		return nil, TypeError(ValidTypeEvaluable, Indicator{Name: op, Arity: 2}.Term(), env)
	}
	return numberOf(&z, bothInt, env)
}

func decimalOf(t Term) *apd.Decimal {
	switch t := t.(type) {
	case Integer:
		return apd.New(int64(t), 0)
	case Float:
		d, _, err := apd.NewFromString(strconv.FormatFloat(float64(t), 'g', -1, 64))
		if err != nil {
			// FormatFloat output is always parseable, except for Inf/NaN
			d = apd.New(0, 0)
		}
		return d
	default:
		panic("not a number")
	}
}

// numberOf converts a decimal back into a term: an Integer if the inputs were
// integers and the value fits, a Float otherwise.
func numberOf(d *apd.Decimal, wantInt bool, env *Env) (Term, error) {
	if wantInt {
		i, err := d.Int64()
		if err != nil {
			return nil, EvaluationError(ExceptionalValueIntOverflow, env)
		}
		return Integer(i), nil
	}
	f, err := floatOf(d, env)
	if err != nil {
		return nil, err
	}
	return Float(f), nil
}

func floatOf(d *apd.Decimal, env *Env) (float64, error) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, EvaluationError(ExceptionalValueFloatOverflow, env)
	}
	return f, nil
}
