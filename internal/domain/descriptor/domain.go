package descriptor

import (
	"fmt"
	"math"
	"strconv"
)

// MaxSliderSteps is the resolution used to derive a step for continuous ranges.
const MaxSliderSteps = 500

// Step is either a concrete increment or Any.
type Step struct {
	value float64
	any   bool
}

// Any returns the placeholder step for continuous ranges.
func Any() Step {
	return Step{any: true}
}

// Fixed returns a concrete step.
func Fixed(v float64) Step {
	return Step{value: v}
}

// IsAny reports whether the step still needs to be derived.
func (s Step) IsAny() bool {
	return s.any
}

// Value returns the concrete step. It is zero for Any.
func (s Step) Value() float64 {
	return s.value
}

func (s Step) String() string {
	if s.any {
		return "any"
	}
	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

// Domain describes the valid values of a field.
// Min and Max are optional; a nil bound is "not provided".
// Integer marks bounds that were declared as integers rather than reals.
type Domain struct {
	Min     *float64
	Max     *float64
	Step    Step
	Integer bool
}

// Range builds a real-valued Domain with both bounds set.
func Range(lo, hi float64, step Step) Domain {
	return Domain{Min: &lo, Max: &hi, Step: step}
}

// IntRange builds a Domain whose bounds are declared as integers.
func IntRange(lo, hi int, step Step) Domain {
	d := Range(float64(lo), float64(hi), step)
	d.Integer = true
	return d
}

// Bounds returns min and max, with NaN for a missing bound.
func (d Domain) Bounds() (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	if d.Min != nil {
		lo = *d.Min
	}
	if d.Max != nil {
		hi = *d.Max
	}
	return lo, hi
}

// Valid reports whether both bounds are present and the step is a usable number.
// Extraction does not reject invalid domains; callers that render sliders use this.
func (d Domain) Valid() bool {
	if d.Min == nil || d.Max == nil || d.Step.IsAny() {
		return false
	}
	return !math.IsNaN(d.Step.value) && !math.IsInf(d.Step.value, 0)
}

// Clamp limits v to the domain bounds that are present.
func (d Domain) Clamp(v float64) float64 {
	if d.Min != nil && v < *d.Min {
		v = *d.Min
	}
	if d.Max != nil && v > *d.Max {
		v = *d.Max
	}
	return v
}

// Equal compares bounds and step by value.
func (d Domain) Equal(o Domain) bool {
	return sameBound(d.Min, o.Min) && sameBound(d.Max, o.Max) && d.Step == o.Step && d.Integer == o.Integer
}

func (d Domain) String() string {
	lo, hi := d.Bounds()
	return fmt.Sprintf("[%g, %g] step %s", lo, hi, d.Step)
}

// resolved returns a copy of d with an Any step replaced by a concrete one.
// A missing bound produces a NaN step.
func (d Domain) resolved() Domain {
	out := d.clone()
	if !d.Step.IsAny() {
		return out
	}
	lo, hi := d.Bounds()
	if d.Integer && isInteger(lo) && isInteger(hi) {
		out.Step = Fixed(1)
		return out
	}
	out.Step = Fixed((hi - lo) / MaxSliderSteps)
	return out
}

func (d Domain) clone() Domain {
	out := Domain{Step: d.Step, Integer: d.Integer}
	if d.Min != nil {
		lo := *d.Min
		out.Min = &lo
	}
	if d.Max != nil {
		hi := *d.Max
		out.Max = &hi
	}
	return out
}

func sameBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func isInteger(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Trunc(v) == v
}
