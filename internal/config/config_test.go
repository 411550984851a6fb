package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/halokit/internal/halos"
	"github.com/san-kum/halokit/internal/status"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MassFunction != "Press74" {
		t.Errorf("expected mass function Press74, got %s", cfg.MassFunction)
	}
	if cfg.Cosmology.Validate() != nil {
		t.Error("default cosmology should be valid")
	}
	if !cfg.Strict {
		t.Error("mass definitions should be strict by default")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("eds")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Cosmology.OmegaM() != 1 {
		t.Errorf("expected Omega_m 1, got %f", cfg.Cosmology.OmegaM())
	}
	if cfg.MassDef != DefaultMassDef {
		t.Errorf("preset should keep the default mass definition, got %s", cfg.MassDef)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"eds", "planck18", "wmap9"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %v, got %v", want, presets)
		}
	}
	for _, name := range presets {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "halokit.yaml")
	data := `
cosmology: {omega_c: 0.25, omega_b: 0.05, h: 0.7, n_s: 0.96, sigma8: 0.8, w0: -1}
gsl_params: {INTEGRATION_SIGMAR_EPSREL: 1e-6}
spline_params: {LOGM_SPLINE_NM: 60}
mass_function: Sheth99
halo_bias: Tinker10
mass_def: 200m
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cosmology.H != 0.7 {
		t.Errorf("expected h 0.7, got %f", cfg.Cosmology.H)
	}
	if !cfg.Strict {
		t.Error("unset mass_def_strict should keep the default")
	}

	pc, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := pc.Spline.Get("LOGM_SPLINE_NM"); v != 60 {
		t.Errorf("expected LOGM_SPLINE_NM 60, got %f", v)
	}

	hb, err := cfg.GetHaloBias()
	if err != nil {
		t.Fatal(err)
	}
	if hb.Name() != "Tinker10" || hb.MassDef().Name() != "200m" {
		t.Errorf("unexpected bias %s/%s", hb.Name(), hb.MassDef().Name())
	}
	if _, err := cfg.GetMassFunc(); !errors.Is(err, status.ErrInconsistent) {
		t.Errorf("Sheth99 with 200m should be rejected, got %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParamsRejectsUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GSLParams = map[string]float64{"NOT_A_KEY": 1}
	if _, err := cfg.Params(); !errors.Is(err, status.ErrUnknownKey) {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("planck18")
	cfg.MassDef = "500c"
	cfg.Strict = false
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cosmology != cfg.Cosmology || got.MassDef != "500c" || got.Strict {
		t.Errorf("round trip changed config: %+v", got)
	}
	md, err := got.GetMassDef()
	if err != nil {
		t.Fatal(err)
	}
	if md.Rho() != halos.RhoCritical {
		t.Errorf("expected critical reference, got %s", md.Rho())
	}
}
