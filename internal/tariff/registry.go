// Package tariff holds the state tariff catalog and the slot-rate helpers
// the bill calculator is built on.
package tariff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nitishagar/bharatdcim/internal/model"
)

// ErrEmptyCatalog is returned by NewRegistry when no schedules are given.
var ErrEmptyCatalog = errors.New("tariff: catalog has no schedules")

// Registry is an immutable, state-keyed collection of tariff schedules.
// It is safe for concurrent use: nothing mutates it after NewRegistry.
type Registry struct {
	schedules []model.TariffSchedule
	byState   map[string]int
	byLower   map[string]int
	def       int
}

// NewRegistry validates and copies schedules. defaultState names the
// schedule returned for unknown lookups; "" selects the first declared.
func NewRegistry(schedules []model.TariffSchedule, defaultState string) (*Registry, error) {
	if len(schedules) == 0 {
		return nil, ErrEmptyCatalog
	}
	r := &Registry{
		schedules: make([]model.TariffSchedule, 0, len(schedules)),
		byState:   make(map[string]int, len(schedules)),
		byLower:   make(map[string]int, len(schedules)*2),
	}
	for i, s := range schedules {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("tariff: schedule %d (%s): %w", i, s.State, err)
		}
		name, code := strings.ToLower(s.State), strings.ToLower(s.StateCode)
		if _, dup := r.byLower[name]; dup {
			return nil, fmt.Errorf("tariff: duplicate state %q", s.State)
		}
		if _, dup := r.byLower[code]; dup {
			return nil, fmt.Errorf("tariff: duplicate state code %q", s.StateCode)
		}
		r.byState[s.State] = i
		r.byLower[name] = i
		r.byLower[code] = i
		r.schedules = append(r.schedules, s.Clone())
	}
	if defaultState != "" {
		idx, ok := r.lookup(defaultState)
		if !ok {
			return nil, fmt.Errorf("tariff: default state %q is not in the catalog", defaultState)
		}
		r.def = idx
	}
	return r, nil
}

// MustBuiltin returns a registry over the bundled catalog with Maharashtra
// as the default. It panics if the bundled data is inconsistent.
func MustBuiltin() *Registry {
	r, err := NewRegistry(Builtin(), DefaultState)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) lookup(name string) (int, bool) {
	if idx, ok := r.byState[name]; ok {
		return idx, true
	}
	idx, ok := r.byLower[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// Schedule returns the schedule for a state name or code. It never fails:
// unknown names get the default schedule and ok=false.
func (r *Registry) Schedule(name string) (model.TariffSchedule, bool) {
	idx, ok := r.lookup(name)
	if !ok {
		return r.schedules[r.def].Clone(), false
	}
	return r.schedules[idx].Clone(), true
}

// Default returns the fallback schedule.
func (r *Registry) Default() model.TariffSchedule {
	return r.schedules[r.def].Clone()
}

// States returns every schedule in declaration order.
func (r *Registry) States() []model.TariffSchedule {
	out := make([]model.TariffSchedule, len(r.schedules))
	for i, s := range r.schedules {
		out[i] = s.Clone()
	}
	return out
}

func (r *Registry) Len() int { return len(r.schedules) }
