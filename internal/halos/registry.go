package halos

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/halokit/internal/status"
)

// MassFuncFactory builds a mass function bound to a mass definition.
type MassFuncFactory func(md MassDef, strict bool) (MassFunc, error)

// HaloBiasFactory builds a halo bias bound to a mass definition.
type HaloBiasFactory func(md MassDef, strict bool) (HaloBias, error)

var massFuncs = map[string]MassFuncFactory{
	"press74": massFunc(NewPress74),
	"sheth99": massFunc(NewSheth99),
}

var haloBiases = map[string]HaloBiasFactory{
	"sheth01":  haloBias(NewSheth01),
	"sheth99":  haloBias(NewSheth99Bias),
	"tinker10": haloBias(NewTinker10),
}

// massFunc and haloBias return a nil interface on failure rather than one
// holding a nil pointer.
func massFunc[M MassFunc](build func(MassDef, bool) (M, error)) MassFuncFactory {
	return func(md MassDef, strict bool) (MassFunc, error) {
		m, err := build(md, strict)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func haloBias[B HaloBias](build func(MassDef, bool) (B, error)) HaloBiasFactory {
	return func(md MassDef, strict bool) (HaloBias, error) {
		b, err := build(md, strict)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

var displayNames = map[string]string{
	"press74":  "Press74",
	"sheth99":  "Sheth99",
	"sheth01":  "Sheth01",
	"tinker10": "Tinker10",
}

// MassFuncFromName looks up a mass function by name, ignoring case.
func MassFuncFromName(name string) (MassFuncFactory, error) {
	f, ok := massFuncs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mass function %q", status.ErrType, name)
	}
	return f, nil
}

// HaloBiasFromName looks up a halo bias by name, ignoring case.
func HaloBiasFromName(name string) (HaloBiasFactory, error) {
	f, ok := haloBiases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown halo bias %q", status.ErrType, name)
	}
	return f, nil
}

// ListMassFuncs returns the registered mass function names, sorted.
func ListMassFuncs() []string { return names(massFuncs) }

// ListHaloBiases returns the registered halo bias names, sorted.
func ListHaloBiases() []string { return names(haloBiases) }

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, displayNames[k])
	}
	slices.Sort(out)
	return out
}
