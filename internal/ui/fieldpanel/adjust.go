package fieldpanel

import (
	"errors"
	"fmt"
	"math"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

// ErrNotAdjustable is returned for fields that have no way to step their value.
var ErrNotAdjustable = errors.New("field cannot be adjusted")

// fallbackStep is used for reals without a usable domain.
const fallbackStep = 0.1

// Adjust moves value dir steps. Numbers step by the domain's step and are
// clamped to its bounds; booleans toggle; strings cycle through options.
func Adjust(value any, d descriptor.Domain, hasDomain bool, dir int, options []string) (any, error) {
	switch v := value.(type) {
	case float64:
		step := fallbackStep
		if hasDomain && d.Valid() && d.Step.Value() > 0 {
			step = d.Step.Value()
		}
		next := v + float64(dir)*step
		if hasDomain {
			next = d.Clamp(snap(next, step, d.Min))
		}
		return next, nil

	case int:
		step := 1
		if hasDomain && d.Valid() && d.Step.Value() >= 1 {
			step = int(math.Round(d.Step.Value()))
		}
		next := v + dir*step
		if hasDomain {
			next = int(d.Clamp(float64(next)))
		}
		return next, nil

	case bool:
		if dir == 0 {
			return v, nil
		}
		return !v, nil

	case string:
		if len(options) == 0 {
			return nil, ErrNotAdjustable
		}
		i := indexOf(options, v)
		if i < 0 {
			return options[0], nil
		}
		n := len(options)
		return options[((i+dir)%n+n)%n], nil
	}
	return nil, fmt.Errorf("%w: unsupported type %T", ErrNotAdjustable, value)
}

// snap rounds v to the step grid anchored at min (or zero) so repeated
// adjustments do not accumulate float error.
func snap(v, step float64, min *float64) float64 {
	origin := 0.0
	if min != nil {
		origin = *min
	}
	return origin + math.Round((v-origin)/step)*step
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}
