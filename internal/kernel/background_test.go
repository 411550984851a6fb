package kernel

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/halokit/internal/status"
)

func TestHOverH0(t *testing.T) {
	c := mustNew(t, eds())
	st := 0
	if h := HOverH0(c, 1, &st); relErr(h, 1) > 1e-12 {
		t.Errorf("H(1)/H0 = %g", h)
	}
	if h := HOverH0(c, 0.25, &st); relErr(h, 8) > 1e-12 {
		t.Errorf("EdS H(0.25)/H0 = %g, want 8", h)
	}
	if st != 0 {
		t.Fatalf("status %d: %s", st, c.StatusMessage())
	}
}

func TestComovingDistanceEdS(t *testing.T) {
	c := mustNew(t, eds())
	for _, a := range []float64{0.9, 0.5, 0.1} {
		st := 0
		got := ComovingRadialDistance(c, a, &st)
		if st != 0 {
			t.Fatalf("a=%g: status %d: %s", a, st, c.StatusMessage())
		}
		want := 2 * ClightHMpc / c.Params.H * (1 - math.Sqrt(a))
		if relErr(got, want) > 1e-8 {
			t.Errorf("chi(%g) = %g, want %g", a, got, want)
		}
	}
}

func TestAngularDiameterDistance(t *testing.T) {
	c := mustNew(t, lcdm())
	st := 0
	chi := ComovingRadialDistance(c, 0.5, &st)
	da := AngularDiameterDistance(c, 1, 0.5, &st)
	if st != 0 {
		t.Fatalf("status %d: %s", st, c.StatusMessage())
	}
	if relErr(da, 0.5*chi) > 1e-12 {
		t.Errorf("D_A = %g, want %g", da, 0.5*chi)
	}

	AngularDiameterDistance(c, 0.5, 1, &st)
	if st != status.ComputeChi {
		t.Errorf("status = %d, want %d", st, status.ComputeChi)
	}
}

func TestAngularDiameterDistanceVecPairs(t *testing.T) {
	c := mustNew(t, lcdm())
	a1 := []float64{1, 0.9, 0.8}
	a2 := []float64{0.5, 0.5, 0.4}
	st := 0
	out := AngularDiameterDistanceVec(c, a1, a2, 3, &st)
	if st != 0 {
		t.Fatalf("status %d: %s", st, c.StatusMessage())
	}
	for i := range a1 {
		s := 0
		want := AngularDiameterDistance(c, a1[i], a2[i], &s)
		if out[i] != want {
			t.Errorf("pair %d: %g != %g", i, out[i], want)
		}
	}
}

func TestOmegaXSumsToOne(t *testing.T) {
	p := lcdm()
	p.OmegaK = 0.05
	c := mustNew(t, p)
	for _, a := range []float64{0.2, 0.7, 1} {
		st := 0
		sum := 0.0
		for _, s := range []int{SpeciesMatter, SpeciesLambda, SpeciesCurvature} {
			sum += OmegaX(c, a, s, &st)
		}
		if st != 0 {
			t.Fatalf("status %d: %s", st, c.StatusMessage())
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("a=%g: sum of Omega_x = %g", a, sum)
		}
	}
}

func TestOmegaXUnknownSpecies(t *testing.T) {
	c := mustNew(t, lcdm())
	st := 0
	OmegaX(c, 1, 42, &st)
	if st != status.Parameters {
		t.Fatalf("status = %d", st)
	}
	if !strings.Contains(c.StatusMessage(), "42") {
		t.Errorf("message %q does not name the label", c.StatusMessage())
	}
}

func TestRhoXComoving(t *testing.T) {
	c := mustNew(t, lcdm())
	st := 0
	today := RhoX(c, 1, RhoArgs{Species: SpeciesMatter, Comoving: true}, &st)
	early := RhoX(c, 0.3, RhoArgs{Species: SpeciesMatter, Comoving: true}, &st)
	phys := RhoX(c, 0.3, RhoArgs{Species: SpeciesMatter}, &st)
	if st != 0 {
		t.Fatalf("status %d: %s", st, c.StatusMessage())
	}
	if relErr(early, today) > 1e-12 {
		t.Errorf("comoving matter density not constant: %g vs %g", early, today)
	}
	if relErr(phys, today/0.027) > 1e-12 {
		t.Errorf("physical density %g, want %g", phys, today/0.027)
	}
}

func TestVectorMatchesScalar(t *testing.T) {
	c := mustNew(t, lcdm())
	as := Linspace(0.05, 1, 200)
	st := 0
	out := HOverH0Vec(c, as, len(as), &st)
	if st != 0 {
		t.Fatalf("status %d: %s", st, c.StatusMessage())
	}
	for i, a := range as {
		s := 0
		if want := HOverH0(c, a, &s); out[i] != want {
			t.Fatalf("element %d: %g != %g", i, out[i], want)
		}
	}
}

func TestVectorFailsOnBadElement(t *testing.T) {
	c := mustNew(t, lcdm())
	as := Linspace(0.05, 1, 200)
	as[150] = 2
	st := 0
	HOverH0Vec(c, as, len(as), &st)
	if st != status.Parameters {
		t.Fatalf("status = %d", st)
	}
	if !strings.Contains(c.StatusMessage(), "scale factor 2") {
		t.Errorf("message = %q", c.StatusMessage())
	}
}

func TestVectorRejectsShortInput(t *testing.T) {
	c := mustNew(t, lcdm())
	st := 0
	if out := HOverH0Vec(c, []float64{1}, 3, &st); out != nil || st == 0 {
		t.Errorf("expected failure, got %v (status %d)", out, st)
	}
}

func TestLaterErrorOverwritesMessage(t *testing.T) {
	c := mustNew(t, lcdm())
	st := 0
	OmegaX(c, 1, 7, &st)
	OmegaX(c, 1.5, SpeciesMatter, &st)
	if strings.Contains(c.StatusMessage(), "7") {
		t.Errorf("first message survived: %q", c.StatusMessage())
	}
}
