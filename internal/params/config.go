package params

import (
	"fmt"
	"sort"

	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

// Config bundles the two parameter sets of a handle.
type Config struct {
	GSL    *Struct
	Spline *Struct
}

// NewConfig builds both sets from the kernel's compiled-in defaults.
func NewConfig() *Config {
	num, types := kernel.SplineDefaults()
	return &Config{
		GSL:    New(kernel.GSLDefaults(), nil),
		Spline: New(num, types),
	}
}

// Reload restores both sets to their defaults.
func (c *Config) Reload() {
	c.GSL.Reload()
	c.Spline.Reload()
}

// Apply assigns overrides to the GSL and spline sets. It stops at the first
// rejected key; earlier assignments stay in place.
func (c *Config) Apply(gsl, spline map[string]float64) error {
	for _, set := range []struct {
		store *Struct
		vals  map[string]float64
	}{{c.GSL, gsl}, {c.Spline, spline}} {
		for _, k := range sortedKeys(set.vals) {
			if err := set.store.Set(k, set.vals[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Populate writes every mutable key into the matching field of the
// handle's GSL and Spline structures and drops the handle's cached splines.
// Immutable keys are skipped. A failure leaves earlier fields written.
func (c *Config) Populate(h *kernel.Cosmology) error {
	if h == nil {
		return fmt.Errorf("populate: nil handle")
	}
	if err := populate(c.GSL, h.GSL.Fields()); err != nil {
		return err
	}
	if err := populate(c.Spline, h.Spline.Fields()); err != nil {
		return err
	}
	h.Invalidate()
	return nil
}

func populate(s *Struct, fields map[string]*float64) error {
	items := s.Items()
	for _, k := range sortedKeys(items) {
		if s.Immutable(k) {
			continue
		}
		field, ok := fields[k]
		if !ok {
			return &status.ConfigError{Key: k, Wrapped: status.ErrUnknownKey}
		}
		*field = items[k]
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
