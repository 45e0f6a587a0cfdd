package axial

import (
	"fmt"
	"sort"

	"github.com/san-kum/trapmodes/internal/potential"
)

// Model is an analytic potential with adjustable parameters.
type Model interface {
	potential.Potential
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Registry maps analytic potential names to constructors for the CLI and
// sweep layers.
type Registry struct {
	models map[string]func() Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() Model)}

	r.models["harmonic"] = func() Model { return potential.NewHarmonic() }
	r.models["quartic"] = func() Model { return potential.NewQuartic() }
	r.models["doublewell"] = func() Model { return potential.NewDoubleWell() }

	return r
}

// GetModel constructs the named model and applies the given parameters.
func (r *Registry) GetModel(name string, params map[string]float64) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential model: %s", name)
	}
	m := fn()
	for k, v := range params {
		if err := m.SetParam(k, v); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
	}
	return m, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
