package aruntime

import (
	"math"
	"strconv"

	"github.com/gosuda/aeroki/lexer"
	"github.com/gosuda/aeroki/parser"
)

// Value is a number carrying its preferred display scale: the count of
// decimal digits it was written with. Scale is fixed when the literal or
// input is read and then combined as max(left, right); it is never
// recomputed from the numeric result.
type Value struct {
	Num   float64
	Scale int
}

func Zero() Value {
	return Value{}
}

func Num(v float64, scale int) Value {
	if scale < 0 {
		scale = 0
	}
	return Value{Num: v, Scale: scale}
}

func Bool(b bool) Value {
	if b {
		return Value{Num: 1}
	}
	return Value{}
}

// ParseValue reads typed input, keeping the scale the user wrote.
// Malformed text yields zero.
func ParseValue(text string) (Value, bool) {
	v, scale, err := parser.ParseNumber(text)
	if err != nil {
		return Zero(), false
	}
	return Num(v, scale), true
}

func (v Value) Truthy() bool {
	return v.Num != 0
}

func (v Value) Int() int64 {
	return int64(v.Num)
}

func maxScale(a, b Value) int {
	if a.Scale > b.Scale {
		return a.Scale
	}
	return b.Scale
}

// Combine applies an arithmetic operator. Division or modulo by zero is
// fatal.
func Combine(op lexer.Kind, l, r Value) (Value, error) {
	scale := maxScale(l, r)
	switch op {
	case lexer.PLUS, lexer.PLUSEQ:
		return Num(l.Num+r.Num, scale), nil
	case lexer.MINUS, lexer.MINUSEQ:
		return Num(l.Num-r.Num, scale), nil
	case lexer.STAR, lexer.STAREQ:
		return Num(l.Num*r.Num, scale), nil
	case lexer.SLASH, lexer.SLASHEQ:
		if r.Num == 0 {
			return Value{}, fatalf("division by zero")
		}
		return Num(l.Num/r.Num, scale), nil
	case lexer.PERCENT:
		if r.Num == 0 {
			return Value{}, fatalf("modulo by zero")
		}
		return Num(math.Mod(l.Num, r.Num), scale), nil
	case lexer.POWER:
		return Num(math.Pow(l.Num, r.Num), scale), nil
	default:
		return Value{}, fatalf("unsupported operator %s", op)
	}
}

const compareEpsilon = 1e-10

// Compare evaluates a relational operator; equality is tolerant to float
// round-off.
func Compare(op lexer.Kind, l, r Value) bool {
	eq := math.Abs(l.Num-r.Num) < compareEpsilon
	switch op {
	case lexer.EQ:
		return eq
	case lexer.NEQ:
		return !eq
	case lexer.LT:
		return !eq && l.Num < r.Num
	case lexer.GT:
		return !eq && l.Num > r.Num
	case lexer.LTE:
		return eq || l.Num < r.Num
	case lexer.GTE:
		return eq || l.Num > r.Num
	default:
		return false
	}
}

// roundNudge is four units in the last place of a float64, relative to the
// scaled value.
const roundNudge = 4 * 2.220446049250313e-16

// RoundHalfAwayFromZero rounds x to the given number of decimals. The
// scaled value is nudged away from zero by a few ULPs before rounding so
// that decimal literals stored just below a .5 boundary (1.005 is
// 1.00499999...) still round up.
func RoundHalfAwayFromZero(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(decimals))
	s := x * p
	s += math.Copysign(math.Abs(s)*roundNudge, s)
	return math.Round(s) / p
}

// Decimals picks how many decimal places v is shown with.
func Decimals(v Value, limit int, fixed bool) int {
	if fixed {
		return limit
	}
	if v.Scale > 0 {
		if v.Scale < limit {
			return v.Scale
		}
		return limit
	}
	if _, frac := math.Modf(v.Num); frac != 0 {
		return limit
	}
	return 0
}

// Format renders v under the display rule.
func Format(v Value, limit int, fixed bool) string {
	d := Decimals(v, limit, fixed)
	x := RoundHalfAwayFromZero(v.Num, d)
	if x == 0 {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', d, 64)
}
