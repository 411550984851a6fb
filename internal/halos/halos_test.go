package halos_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/halos"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

func mustParse(name string) halos.MassDef {
	md, err := halos.ParseMassDef(name)
	Expect(err).NotTo(HaveOccurred())
	return md
}

var _ = Describe("MassDef", func() {
	DescribeTable("round-trips names",
		func(name string) {
			Expect(mustParse(name).Name()).To(Equal(name))
		},
		Entry("fof", "fof"),
		Entry("vir", "vir"),
		Entry("200m", "200m"),
		Entry("500c", "500c"),
		Entry("fractional", "178.5m"),
	)

	DescribeTable("rejects malformed names",
		func(name string) {
			_, err := halos.ParseMassDef(name)
			Expect(err).To(MatchError(halos.ErrMassDef))
		},
		Entry("empty", ""),
		Entry("no suffix", "200"),
		Entry("bad number", "twom"),
		Entry("negative", "-200c"),
		Entry("zero", "0m"),
	)

	It("is case-insensitive", func() {
		Expect(mustParse("FoF").IsFoF()).To(BeTrue())
		Expect(mustParse(" 200M ").Name()).To(Equal("200m"))
	})

	Context("converting to matter overdensity", func() {
		var c *cosmo.Cosmology

		BeforeEach(func() {
			var err error
			p := kernel.DefaultParams()
			p.OmegaC, p.OmegaB = 0.25, 0.05
			c, err = cosmo.New(p, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps matter overdensities without a cosmology", func() {
			dm, err := mustParse("200m").DeltaMatter(nil, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(dm).To(Equal(200.0))
		})

		It("divides critical overdensities by Omega_m(a)", func() {
			dm, err := mustParse("500c").DeltaMatter(c, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(dm).To(BeNumerically("~", 500/0.3, 1e-8))
		})

		It("uses the Bryan & Norman fit for vir", func() {
			dm, err := halos.Virial().DeltaMatter(c, 1)
			Expect(err).NotTo(HaveOccurred())
			x := -0.7
			want := (18*math.Pi*math.Pi + 82*x - 39*x*x) / 0.3
			Expect(dm).To(BeNumerically("~", want, 1e-8))
		})

		It("has no overdensity for fof", func() {
			_, err := halos.FoF().DeltaMatter(c, 1)
			Expect(err).To(MatchError(status.ErrInconsistent))
		})
	})
})

var _ = Describe("fitting functions at sigma = 1", func() {
	one := dispatch.Scalar(1)

	It("reproduces Press74", func() {
		mf, err := halos.NewPress74(halos.FoF(), true)
		Expect(err).NotTo(HaveOccurred())
		f, err := mf.FSigma(nil, one, 1, dispatch.Scalar(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IsScalar()).To(BeTrue())
		Expect(f.Float()).To(BeNumerically("~", 0.32457316572911143, 1e-12))
	})

	It("reproduces Sheth99", func() {
		mf, err := halos.NewSheth99(halos.FoF(), true)
		Expect(err).NotTo(HaveOccurred())
		f, err := mf.FSigma(nil, one, 1, dispatch.Scalar(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Float()).To(BeNumerically("~", 0.24155150735806669, 1e-12))
	})

	It("reproduces Sheth01", func() {
		hb, err := halos.NewSheth01(halos.FoF(), true)
		Expect(err).NotTo(HaveOccurred())
		b, err := hb.BSigma(nil, one, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Float()).To(BeNumerically("~", 1.9386375881502054, 1e-12))
	})

	It("reproduces the Sheth99 bias", func() {
		hb, err := halos.NewSheth99Bias(halos.FoF(), true)
		Expect(err).NotTo(HaveOccurred())
		b, err := hb.BSigma(nil, one, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Float()).To(BeNumerically("~", 1.758694656105783, 1e-12))
	})

	It("reproduces Tinker10 at 200m", func() {
		hb, err := halos.NewTinker10(mustParse("200m"), true)
		Expect(err).NotTo(HaveOccurred())
		b, err := hb.BSigma(nil, one, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Float()).To(BeNumerically("~", 1.8305258028046456, 1e-12))
	})

	It("keeps the sequence shape", func() {
		mf, _ := halos.NewPress74(halos.FoF(), true)
		sig := dispatch.Sequence([]float64{0.5, 1, 2})
		f, err := mf.FSigma(nil, sig, 1, dispatch.Sequence([]float64{0, 0, 0}))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IsScalar()).To(BeFalse())
		Expect(f.Slice()).To(HaveLen(3))
		Expect(f.Slice()[1]).To(BeNumerically("~", 0.32457316572911143, 1e-12))
	})
})

var _ = Describe("binding", func() {
	so := mustParse("200m")

	DescribeTable("friends-of-friends fits",
		func(bind func(halos.MassDef, bool) error) {
			Expect(bind(halos.FoF(), true)).To(Succeed())
			Expect(bind(so, true)).To(MatchError(status.ErrInconsistent))
			Expect(bind(so, false)).To(Succeed())
		},
		Entry("Press74", func(md halos.MassDef, s bool) error { _, err := halos.NewPress74(md, s); return err }),
		Entry("Sheth99", func(md halos.MassDef, s bool) error { _, err := halos.NewSheth99(md, s); return err }),
		Entry("Sheth01", func(md halos.MassDef, s bool) error { _, err := halos.NewSheth01(md, s); return err }),
		Entry("Sheth99 bias", func(md halos.MassDef, s bool) error { _, err := halos.NewSheth99Bias(md, s); return err }),
	)

	It("rejects fof for Tinker10 only when strict", func() {
		_, err := halos.NewTinker10(halos.FoF(), true)
		Expect(err).To(MatchError(status.ErrInconsistent))
		Expect(err.Error()).To(ContainSubstring("Tinker10"))

		hb, err := halos.NewTinker10(halos.FoF(), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(hb.Strict()).To(BeFalse())
		_, err = hb.BSigma(nil, dispatch.Scalar(1), 1)
		Expect(err).To(MatchError(status.ErrInconsistent))
	})

	It("records the bound mass definition", func() {
		mf, err := halos.NewPress74(so, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(mf.MassDef().Name()).To(Equal("200m"))
	})
})

var _ = Describe("registry", func() {
	It("lists the models", func() {
		Expect(halos.ListMassFuncs()).To(Equal([]string{"Press74", "Sheth99"}))
		Expect(halos.ListHaloBiases()).To(Equal([]string{"Sheth01", "Sheth99", "Tinker10"}))
	})

	It("builds every listed model under its own name", func() {
		for _, name := range halos.ListMassFuncs() {
			f, err := halos.MassFuncFromName(name)
			Expect(err).NotTo(HaveOccurred())
			mf, err := f(halos.FoF(), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(mf.Name()).To(Equal(name))
		}
		for _, name := range halos.ListHaloBiases() {
			f, err := halos.HaloBiasFromName(name)
			Expect(err).NotTo(HaveOccurred())
			hb, err := f(mustParse("200m"), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(hb.Name()).To(Equal(name))
		}
	})

	It("returns a nil model when strict binding fails", func() {
		f, err := halos.MassFuncFromName("Press74")
		Expect(err).NotTo(HaveOccurred())
		mf, err := f(mustParse("200m"), true)
		Expect(err).To(MatchError(status.ErrInconsistent))
		Expect(mf == nil).To(BeTrue())

		g, err := halos.HaloBiasFromName("Tinker10")
		Expect(err).NotTo(HaveOccurred())
		hb, err := g(halos.FoF(), true)
		Expect(err).To(MatchError(status.ErrInconsistent))
		Expect(hb == nil).To(BeTrue())
	})

	It("rejects unknown names", func() {
		_, err := halos.MassFuncFromName("Tinker08")
		Expect(err).To(MatchError(status.ErrType))
		_, err = halos.HaloBiasFromName("")
		Expect(err).To(MatchError(status.ErrType))
	})
})

var _ = Describe("observables", Ordered, func() {
	var c *cosmo.Cosmology
	masses := []float64{1e12, 1e13, 1e14, 1e15}

	BeforeAll(func() {
		var err error
		c, err = cosmo.New(kernel.DefaultParams(), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("builds dn/dlog10M from sigma", func() {
		mf, _ := halos.NewSheth99(halos.FoF(), true)
		n, err := halos.NumberDensity(mf, c, dispatch.Sequence(masses), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(n.Slice()).To(HaveLen(len(masses)))

		for i, m := range masses {
			sig, err := c.SigmaM(dispatch.Scalar(m), 1)
			Expect(err).NotTo(HaveOccurred())
			d, err := c.DlnSigmaInvDlogM(dispatch.Scalar(m))
			Expect(err).NotTo(HaveOccurred())
			f, _ := mf.FSigma(c, sig, 1, dispatch.Scalar(math.Log(m)))
			rho, err := c.RhoMean()
			Expect(err).NotTo(HaveOccurred())
			want := f.Float() * rho / m * d.Float()
			Expect(n.Slice()[i]).To(BeNumerically("~", want, 1e-12*want))
			if i > 0 {
				Expect(n.Slice()[i]).To(BeNumerically("<", n.Slice()[i-1]))
			}
		}
	})

	It("grows the bias with mass", func() {
		hb, _ := halos.NewTinker10(mustParse("200m"), true)
		b, err := halos.Bias(hb, c, dispatch.Sequence(masses), 1)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(masses); i++ {
			Expect(b.Slice()[i]).To(BeNumerically(">", b.Slice()[i-1]))
		}
	})

	It("propagates kernel errors", func() {
		hb, _ := halos.NewSheth01(halos.FoF(), true)
		_, err := halos.Bias(hb, c, dispatch.Scalar(1e30), 1)
		Expect(err).To(MatchError(status.ErrSplineEval))
	})
})
