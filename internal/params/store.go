// Package params holds the solver and spline parameter sets that are
// pushed into a cosmology handle.
//
// A Struct freezes its key set at construction: assignments to unknown keys
// fail instead of being silently ignored, so a misspelled tolerance in a
// config file surfaces as an error. A_SPLINE_MAX and every spline type key
// are immutable after construction.
//
// Neither Struct nor Config is synchronized. Set, Reload and Populate are
// single-writer operations that must be serialized against any other use
// of the same store or handle.
package params

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/halokit/internal/status"
)

// immutableKeys are numeric keys that may not be assigned after
// construction, even to their current value.
var immutableKeys = map[string]bool{
	"A_SPLINE_MAX": true,
}

// Struct is a frozen-key parameter set.
type Struct struct {
	defaults     map[string]float64
	typeDefaults map[string]string

	values map[string]float64
	types  map[string]string
}

// New captures defaults (numeric values and spline type names) and locks
// the key set.
func New(defaults map[string]float64, types map[string]string) *Struct {
	s := &Struct{
		defaults:     copyMap(defaults),
		typeDefaults: copyMap(types),
	}
	s.Reload()
	return s
}

// Reload restores every key to the captured defaults.
func (s *Struct) Reload() {
	s.values = copyMap(s.defaults)
	s.types = copyMap(s.typeDefaults)
}

// Has reports whether key belongs to the set.
func (s *Struct) Has(key string) bool {
	_, num := s.values[key]
	_, typ := s.types[key]
	return num || typ
}

// Immutable reports whether key may not be assigned.
func (s *Struct) Immutable(key string) bool {
	if _, ok := s.types[key]; ok {
		return true
	}
	return immutableKeys[key] || strings.HasSuffix(key, "_SPLINE_TYPE")
}

// Get returns the numeric value of key.
func (s *Struct) Get(key string) (float64, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, &status.ConfigError{Key: key, Wrapped: status.ErrUnknownKey}
	}
	return v, nil
}

// Set assigns a numeric key.
func (s *Struct) Set(key string, v float64) error {
	if !s.Has(key) {
		return &status.ConfigError{Key: key, Wrapped: status.ErrUnknownKey}
	}
	if s.Immutable(key) {
		return &status.ConfigError{Key: key, Wrapped: status.ErrImmutableKey}
	}
	s.values[key] = v
	return nil
}

// SplineType returns the spline type name stored under key.
func (s *Struct) SplineType(key string) (string, error) {
	v, ok := s.types[key]
	if !ok {
		return "", &status.ConfigError{Key: key, Wrapped: status.ErrUnknownKey}
	}
	return v, nil
}

// SetSplineType rejects every non-empty assignment: spline types are fixed
// by the kernel. An empty name is accepted and changes nothing.
func (s *Struct) SetSplineType(key, v string) error {
	if _, ok := s.types[key]; !ok {
		return &status.ConfigError{Key: key, Wrapped: status.ErrUnknownKey}
	}
	if v != "" {
		return &status.ConfigError{Key: key, Wrapped: fmt.Errorf("%w: spline types cannot be changed", status.ErrImmutableKey)}
	}
	return nil
}

// Keys returns every key, numeric and spline type, sorted.
func (s *Struct) Keys() []string {
	keys := make([]string, 0, len(s.values)+len(s.types))
	for k := range s.values {
		keys = append(keys, k)
	}
	for k := range s.types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the numeric values.
func (s *Struct) Items() map[string]float64 {
	return copyMap(s.values)
}

// SplineTypes returns a copy of the spline type names.
func (s *Struct) SplineTypes() map[string]string {
	return copyMap(s.types)
}

// String renders the set one key per line.
func (s *Struct) String() string {
	var b strings.Builder
	for _, k := range s.Keys() {
		if v, ok := s.values[k]; ok {
			fmt.Fprintf(&b, "%s: %g\n", k, v)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", k, s.types[k])
		}
	}
	return b.String()
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
