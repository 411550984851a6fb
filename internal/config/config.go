package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/halos"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/params"
)

const (
	DefaultMassFunction = "Press74"
	DefaultHaloBias     = "Sheth01"
	DefaultMassDef      = "fof"
)

type Config struct {
	Cosmology    kernel.Params      `yaml:"cosmology"`
	GSLParams    map[string]float64 `yaml:"gsl_params,omitempty"`
	SplineParams map[string]float64 `yaml:"spline_params,omitempty"`
	MassFunction string             `yaml:"mass_function"`
	HaloBias     string             `yaml:"halo_bias"`
	MassDef      string             `yaml:"mass_def"`
	Strict       bool               `yaml:"mass_def_strict"`
}

func DefaultConfig() *Config {
	return &Config{
		Cosmology:    kernel.DefaultParams(),
		MassFunction: DefaultMassFunction,
		HaloBias:     DefaultHaloBias,
		MassDef:      DefaultMassDef,
		Strict:       true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params builds the parameter sets with the file's overrides applied.
// Unknown or immutable keys are rejected.
func (c *Config) Params() (*params.Config, error) {
	pc := params.NewConfig()
	if err := pc.Apply(c.GSLParams, c.SplineParams); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return pc, nil
}

// NewCosmology builds the configured cosmology.
func (c *Config) NewCosmology() (*cosmo.Cosmology, error) {
	pc, err := c.Params()
	if err != nil {
		return nil, err
	}
	return cosmo.New(c.Cosmology, pc)
}

func (c *Config) GetMassDef() (halos.MassDef, error) {
	return halos.ParseMassDef(c.MassDef)
}

func (c *Config) GetMassFunc() (halos.MassFunc, error) {
	md, err := c.GetMassDef()
	if err != nil {
		return nil, err
	}
	newMF, err := halos.MassFuncFromName(c.MassFunction)
	if err != nil {
		return nil, err
	}
	return newMF(md, c.Strict)
}

func (c *Config) GetHaloBias() (halos.HaloBias, error) {
	md, err := c.GetMassDef()
	if err != nil {
		return nil, err
	}
	newHB, err := halos.HaloBiasFromName(c.HaloBias)
	if err != nil {
		return nil, err
	}
	return newHB(md, c.Strict)
}
