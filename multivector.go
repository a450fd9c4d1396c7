// multivector.go — the 2D PGA multivector value type and its algebra.
//
// OVERVIEW
// --------
// A Multivector holds one float32 coefficient per basis blade of the
// 8-dimensional 2D projective geometric algebra:
//
//	grade 0:  S                     (scalar)
//	grade 1:  E0, E1, E2            (vector)
//	grade 2:  E01, E02, E12         (bivector)
//	grade 3:  E012                  (pseudoscalar)
//
// The metric is degenerate: e0*e0 = 0, e1*e1 = 1, e2*e2 = 1, and distinct
// basis vectors anticommute. Everything here is a pure function of its
// inputs; Multivector is a value type (copied, never aliased) and every
// operation returns a new value.
//
// The geometric product coefficients below are the fixed bilinear form
// induced by the metric. Wedge and inner products are derived from it by
// grade filtering rather than carrying their own tables, so the three
// products can never disagree.
package gascript

import (
	"math"
	"strconv"
	"strings"
)

// Multivector is the only value type in the script language.
type Multivector struct {
	S    float32
	E0   float32
	E1   float32
	E2   float32
	E01  float32
	E02  float32
	E12  float32
	E012 float32
}

// Scalar lifts a float into a pure grade-0 multivector.
func Scalar(s float32) Multivector { return Multivector{S: s} }

// String renders the multivector as a signed sum of its nonzero blades,
// e.g. "1 + 2e0 - 3e12". The zero value renders as "0".
func (a Multivector) String() string {
	parts := []struct {
		c     float32
		blade string
	}{
		{a.S, ""}, {a.E0, "e0"}, {a.E1, "e1"}, {a.E2, "e2"},
		{a.E01, "e01"}, {a.E02, "e02"}, {a.E12, "e12"}, {a.E012, "e012"},
	}

	var b strings.Builder
	for _, p := range parts {
		if p.c == 0 {
			continue
		}
		c := p.c
		if b.Len() == 0 {
			if c < 0 {
				b.WriteByte('-')
				c = -c
			}
		} else {
			if c < 0 {
				b.WriteString(" - ")
				c = -c
			} else {
				b.WriteString(" + ")
			}
		}
		if c != 1 || p.blade == "" {
			b.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
		}
		b.WriteString(p.blade)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// Grade0 keeps only the scalar component.
func (a Multivector) Grade0() Multivector { return Multivector{S: a.S} }

// Grade1 keeps only the vector components.
func (a Multivector) Grade1() Multivector { return Multivector{E0: a.E0, E1: a.E1, E2: a.E2} }

// Grade2 keeps only the bivector components.
func (a Multivector) Grade2() Multivector { return Multivector{E01: a.E01, E02: a.E02, E12: a.E12} }

// Grade3 keeps only the pseudoscalar component.
func (a Multivector) Grade3() Multivector { return Multivector{E012: a.E012} }

// Grade projects onto grade k. Grades outside 0..3 do not exist in this
// algebra, so anything else is the zero value.
func (a Multivector) Grade(k int) Multivector {
	switch k {
	case 0:
		return a.Grade0()
	case 1:
		return a.Grade1()
	case 2:
		return a.Grade2()
	case 3:
		return a.Grade3()
	default:
		return Multivector{}
	}
}

// Add is the component-wise sum.
func (a Multivector) Add(b Multivector) Multivector {
	return Multivector{
		S:    a.S + b.S,
		E0:   a.E0 + b.E0,
		E1:   a.E1 + b.E1,
		E2:   a.E2 + b.E2,
		E01:  a.E01 + b.E01,
		E02:  a.E02 + b.E02,
		E12:  a.E12 + b.E12,
		E012: a.E012 + b.E012,
	}
}

// Sub is the component-wise difference.
func (a Multivector) Sub(b Multivector) Multivector {
	return Multivector{
		S:    a.S - b.S,
		E0:   a.E0 - b.E0,
		E1:   a.E1 - b.E1,
		E2:   a.E2 - b.E2,
		E01:  a.E01 - b.E01,
		E02:  a.E02 - b.E02,
		E12:  a.E12 - b.E12,
		E012: a.E012 - b.E012,
	}
}

// Neg flips the sign of every component.
func (a Multivector) Neg() Multivector {
	return Multivector{
		S:    -a.S,
		E0:   -a.E0,
		E1:   -a.E1,
		E2:   -a.E2,
		E01:  -a.E01,
		E02:  -a.E02,
		E12:  -a.E12,
		E012: -a.E012,
	}
}

// Scale multiplies every component by the scalar f.
func (a Multivector) Scale(f float32) Multivector {
	return Multivector{
		S:    a.S * f,
		E0:   a.E0 * f,
		E1:   a.E1 * f,
		E2:   a.E2 * f,
		E01:  a.E01 * f,
		E02:  a.E02 * f,
		E12:  a.E12 * f,
		E012: a.E012 * f,
	}
}

// DivScalar divides every component by the scalar f.
func (a Multivector) DivScalar(f float32) Multivector { return a.Scale(1 / f) }

// Mul is the full geometric product. Each output component is the fixed
// signed sum of pairwise input products given by the basis multiplication
// table of the degenerate metric (e0*e0=0, e1*e1=1, e2*e2=1, eij = -eji).
func (a Multivector) Mul(b Multivector) Multivector {
	return Multivector{
		S: a.S*b.S + a.E1*b.E1 + a.E2*b.E2 - a.E12*b.E12,
		E0: a.S*b.E0 + a.E0*b.S - a.E1*b.E01 - a.E2*b.E02 +
			a.E01*b.E1 + a.E02*b.E2 - a.E12*b.E012 - a.E012*b.E12,
		E1: a.S*b.E1 + a.E1*b.S - a.E2*b.E12 + a.E12*b.E2,
		E2: a.S*b.E2 + a.E1*b.E12 + a.E2*b.S - a.E12*b.E1,
		E01: a.S*b.E01 + a.E0*b.E1 - a.E1*b.E0 + a.E2*b.E012 +
			a.E01*b.S - a.E02*b.E12 + a.E12*b.E02 + a.E012*b.E2,
		E02: a.S*b.E02 + a.E0*b.E2 - a.E1*b.E012 - a.E2*b.E0 +
			a.E01*b.E12 + a.E02*b.S - a.E12*b.E01 - a.E012*b.E1,
		E12: a.S*b.E12 + a.E1*b.E2 - a.E2*b.E1 + a.E12*b.S,
		E012: a.S*b.E012 + a.E0*b.E12 - a.E1*b.E02 + a.E2*b.E01 +
			a.E01*b.E2 - a.E02*b.E1 + a.E12*b.E0 + a.E012*b.S,
	}
}

// Wedge is the outer product: the geometric product filtered to the terms
// whose grade is the sum of the input grades (grades above 3 vanish).
func (a Multivector) Wedge(b Multivector) Multivector {
	var result Multivector
	for j := 0; j <= 3; j++ {
		for k := 0; k <= 3; k++ {
			result = result.Add(a.Grade(j).Mul(b.Grade(k)).Grade(j + k))
		}
	}
	return result
}

// Inner is the grade-lowering inner product: the geometric product filtered
// to the terms whose grade is the absolute difference of the input grades.
func (a Multivector) Inner(b Multivector) Multivector {
	var result Multivector
	for j := 0; j <= 3; j++ {
		for k := 0; k <= 3; k++ {
			d := j - k
			if d < 0 {
				d = -d
			}
			result = result.Add(a.Grade(j).Mul(b.Grade(k)).Grade(d))
		}
	}
	return result
}

// Dual maps each grade-k component to a grade-(3-k) component:
// s<->e012, e0<->e12, e1<->-e02, e2<->e01.
func (a Multivector) Dual() Multivector {
	return Multivector{
		S:    a.E012,
		E0:   a.E12,
		E1:   -a.E02,
		E2:   a.E01,
		E01:  a.E2,
		E02:  -a.E1,
		E12:  a.E0,
		E012: a.S,
	}
}

// DualInverse undoes Dual. In this algebra the two maps coincide.
func (a Multivector) DualInverse() Multivector { return a.Dual() }

// Regressive is the dual of the wedge of duals; it encodes the meet of its
// operands (two lines wedge to their intersection point, in the dual sense).
func (a Multivector) Regressive(b Multivector) Multivector {
	return a.Dual().Wedge(b.Dual()).DualInverse()
}

// Reverse flips the order of basis vectors in each blade. The sign rule
// (-1)^(k(k-1)/2) reduces to negating grades 2 and 3.
func (a Multivector) Reverse() Multivector {
	return Multivector{
		S:    a.S,
		E0:   a.E0,
		E1:   a.E1,
		E2:   a.E2,
		E01:  -a.E01,
		E02:  -a.E02,
		E12:  -a.E12,
		E012: -a.E012,
	}
}

// SqrMagnitude is the scalar part of a * ~a.
func (a Multivector) SqrMagnitude() float32 {
	return a.Mul(a.Reverse()).S
}

// Magnitude is the naive square root of SqrMagnitude. Null and
// negative-norm elements yield NaN; callers that care must check.
func (a Multivector) Magnitude() float32 {
	return float32(math.Sqrt(float64(a.SqrMagnitude())))
}

// normalizeEpsilon guards Normalized against divide-by-near-zero.
const normalizeEpsilon = 1e-4

// Normalized rescales to unit magnitude. Values whose magnitude is below
// normalizeEpsilon are returned unchanged instead of erroring.
func (a Multivector) Normalized() Multivector {
	magnitude := a.Magnitude()
	if magnitude >= normalizeEpsilon {
		return a.DivScalar(magnitude)
	}
	return a
}

// Exp is the exponential map from bivectors to motors. A bivector B in this
// algebra squares to -e12^2, so with theta = |e12| the closed form is
//
//	exp(B) = cos(theta) + sin(theta)/theta * B
//
// falling back to 1 + B when theta is below the epsilon (a pure translation
// generator). The input is grade-2 projected first; Exp is only meaningful
// for bivector arguments.
func (a Multivector) Exp() Multivector {
	b := a.Grade2()
	theta := float32(math.Abs(float64(b.E12)))
	if theta < normalizeEpsilon {
		b.S = 1
		return b
	}
	motor := b.Scale(float32(math.Sin(float64(theta))) / theta)
	motor.S = float32(math.Cos(float64(theta)))
	return motor
}
