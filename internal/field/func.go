package field

import (
	"fmt"

	"github.com/san-kum/fieldtrace/internal/flow"
)

// Func adapts a pair of external callbacks (for example a coil-set or
// plasma-current model living outside this module) into a Field.
type Func struct {
	value    func(xyz [3]float64) [3]float64
	gradient func(xyz [3]float64) [3][3]float64
}

// NewFunc wires external value/gradient callbacks into a Field. Both are
// required: tangent propagation needs the gradient, so a missing callback
// is a configuration error at construction, not a surprise on first use.
func NewFunc(value func(xyz [3]float64) [3]float64, gradient func(xyz [3]float64) [3][3]float64) (*Func, error) {
	if value == nil {
		return nil, fmt.Errorf("field: value callback missing: %w", flow.ErrNotImplemented)
	}
	if gradient == nil {
		return nil, fmt.Errorf("field: gradient callback missing: %w", flow.ErrNotImplemented)
	}
	return &Func{value: value, gradient: gradient}, nil
}

func (f *Func) Value(xyz [3]float64) [3]float64 {
	return f.value(xyz)
}

func (f *Func) Gradient(xyz [3]float64) [3][3]float64 {
	return f.gradient(xyz)
}
