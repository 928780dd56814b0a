package units

import (
	"fmt"
	"math"
	"strings"
)

// Dimension holds SI base-unit exponents doubled, so half-integer
// exponents (as in the Debye-Hückel A constant) stay exact.
type Dimension [7]int8

const (
	axisLength = iota
	axisMass
	axisTime
	axisCurrent
	axisTemperature
	axisAmount
	axisLuminosity
)

var axisSymbols = [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}

func Dim(length, mass, time, current, temperature, amount int) Dimension {
	return Dimension{
		int8(2 * length), int8(2 * mass), int8(2 * time),
		int8(2 * current), int8(2 * temperature), int8(2 * amount), 0,
	}
}

func (d Dimension) IsDimensionless() bool {
	return d == Dimension{}
}

func (d Dimension) String() string {
	var parts []string
	for i, e := range d {
		if e == 0 {
			continue
		}
		switch {
		case e == 2:
			parts = append(parts, axisSymbols[i])
		case e%2 == 0:
			parts = append(parts, fmt.Sprintf("%s^%d", axisSymbols[i], e/2))
		default:
			parts = append(parts, fmt.Sprintf("%s^(%d/2)", axisSymbols[i], e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// Quantity is a float value tagged with an SI dimension.
type Quantity struct {
	Value float64
	Dim   Dimension
}

func Scalar(v float64) Quantity {
	return Quantity{Value: v}
}

func New(v float64, d Dimension) Quantity {
	return Quantity{Value: v, Dim: d}
}

func (q Quantity) Mul(other Quantity) Quantity {
	r := Quantity{Value: q.Value * other.Value}
	for i := range r.Dim {
		r.Dim[i] = q.Dim[i] + other.Dim[i]
	}
	return r
}

func (q Quantity) Div(other Quantity) Quantity {
	r := Quantity{Value: q.Value / other.Value}
	for i := range r.Dim {
		r.Dim[i] = q.Dim[i] - other.Dim[i]
	}
	return r
}

func (q Quantity) Scale(f float64) Quantity {
	return Quantity{Value: q.Value * f, Dim: q.Dim}
}

// Pow raises q to the rational power num/den. Only den 1 and 2 are
// representable; den 2 additionally requires every doubled exponent
// to stay integral.
func (q Quantity) Pow(num, den int) (Quantity, error) {
	if den != 1 && den != 2 {
		return Quantity{}, fmt.Errorf("units: unsupported power denominator %d", den)
	}
	r := Quantity{Value: math.Pow(q.Value, float64(num)/float64(den))}
	for i, e := range q.Dim {
		scaled := int(e) * num
		if den == 2 && scaled%2 != 0 {
			return Quantity{}, fmt.Errorf("units: dimension %s not representable under power %d/%d",
				q.Dim, num, den)
		}
		r.Dim[i] = int8(scaled / den)
	}
	return r, nil
}

func (q Quantity) Sqrt() (Quantity, error) {
	return q.Pow(1, 2)
}

func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.Dim != other.Dim {
		return Quantity{}, &DimensionError{Op: "add", Left: q.Dim, Right: other.Dim}
	}
	return Quantity{Value: q.Value + other.Value, Dim: q.Dim}, nil
}

func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if q.Dim != other.Dim {
		return Quantity{}, &DimensionError{Op: "sub", Left: q.Dim, Right: other.Dim}
	}
	return Quantity{Value: q.Value - other.Value, Dim: q.Dim}, nil
}

func (q Quantity) String() string {
	if q.Dim.IsDimensionless() {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Dim)
}

type DimensionError struct {
	Op          string
	Left, Right Dimension
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("units: cannot %s %s and %s", e.Op, e.Left, e.Right)
}
