package equilibrium_test

import (
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldtrace/internal/equilibrium"
)

// dataset returns a minimal valid two-volume, stellarator-symmetric
// equilibrium with mode table {(0,0), (1,2)}.
func dataset() *equilibrium.Data {
	zero := []float64{0, 0}
	return &equilibrium.Data{
		Version:   2.5,
		Mvol:      2,
		Mpol:      1,
		Ntor:      1,
		Igeometry: 3,
		Istellsym: 1,
		Nfp:       2,
		MN:        2,
		Im:        []int{0, 1},
		In:        []int{0, 2},
		Lrad:      []int{3, 3},
		Rpol:      1,
		Rtor:      1,
		Ate: [][][]float64{
			{zero, {1, 0}, zero, {0, 0.1}},
			{zero, {1, 0}, zero, {0, 0.1}},
		},
		Aze: [][][]float64{
			{{0.5, 0}, zero, {-0.2, 0}, {0, 0.05}},
			{{0.5, 0}, zero, {-0.2, 0}, {0, 0.05}},
		},
	}
}

var _ = Describe("NewVolume", func() {
	It("stages a valid volume", func() {
		vol, err := equilibrium.NewVolume(dataset(), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(vol.LVol).To(Equal(2))
		Expect(vol.Lrad).To(Equal(3))
		Expect(vol.StellSym).To(BeTrue())
		Expect(vol.CoordSingular).To(BeFalse())
		Expect(vol.Ate).To(HaveLen(4))
		Expect(vol.Ato).To(HaveLen(4), "odd-parity block staged as zeros")
		Expect(vol.Ato[0]).To(Equal([]float64{0, 0}))
	})

	It("flags the coordinate singularity only on the innermost volume", func() {
		inner, err := equilibrium.NewVolume(dataset(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(inner.CoordSingular).To(BeTrue())

		slab := dataset()
		slab.Igeometry = 1
		flat, err := equilibrium.NewVolume(slab, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(flat.CoordSingular).To(BeFalse())
	})

	It("rejects unsupported format versions before anything else", func() {
		d := dataset()
		d.Version = 2.1
		_, err := equilibrium.NewVolume(d, 1)
		Expect(err).To(MatchError(equilibrium.ErrUnsupportedVersion))
	})

	It("rejects out-of-range volume indices", func() {
		d := dataset()
		for _, lvol := range []int{0, -1, 3} {
			_, err := equilibrium.NewVolume(d, lvol)
			Expect(err).To(MatchError(equilibrium.ErrVolumeOutOfRange), "lvol=%d", lvol)
		}
	})

	It("rejects coefficient blocks with the wrong shape", func() {
		d := dataset()
		d.Ate[1] = d.Ate[1][:2]
		_, err := equilibrium.NewVolume(d, 2)
		Expect(err).To(MatchError(equilibrium.ErrBadCoefficients))

		d = dataset()
		d.Aze[0][1] = []float64{1}
		_, err = equilibrium.NewVolume(d, 1)
		Expect(err).To(MatchError(equilibrium.ErrBadCoefficients))
	})

	It("rejects mode tables that disagree with mn", func() {
		d := dataset()
		d.Im = []int{0}
		_, err := equilibrium.NewVolume(d, 1)
		Expect(err).To(MatchError(equilibrium.ErrBadCoefficients))
	})
})

var _ = Describe("BFieldDeriv", func() {
	It("matches finite differences of BField", func() {
		vol, err := equilibrium.NewVolume(dataset(), 2)
		Expect(err).NotTo(HaveOccurred())

		h := 1e-6
		points := [][3]float64{
			{0.3, 1.1, 0.4},
			{-0.5, 4.0, 2.2},
			{0.8, 0.0, 0.0},
		}
		for _, pt := range points {
			s, theta, zeta := pt[0], pt[1], pt[2]
			b, db := vol.BFieldDeriv(s, theta, zeta)

			b0 := vol.BField(s, theta, zeta)
			for i := 0; i < 3; i++ {
				Expect(b[i]).To(BeNumerically("~", b0[i], 1e-14))
			}

			bsp := vol.BField(s+h, theta, zeta)
			bsm := vol.BField(s-h, theta, zeta)
			btp := vol.BField(s, theta+h, zeta)
			btm := vol.BField(s, theta-h, zeta)
			for i := 0; i < 3; i++ {
				Expect(db[i][0]).To(BeNumerically("~", (bsp[i]-bsm[i])/(2*h), 1e-6), "∂s of component %d", i)
				Expect(db[i][1]).To(BeNumerically("~", (btp[i]-btm[i])/(2*h), 1e-6), "∂θ of component %d", i)
			}
		}
	})

	It("matches finite differences in a coordinate-singular volume", func() {
		vol, err := equilibrium.NewVolume(dataset(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(vol.CoordSingular).To(BeTrue())

		h := 1e-6
		s, theta, zeta := 0.4, 2.0, 1.3
		_, db := vol.BFieldDeriv(s, theta, zeta)
		bsp := vol.BField(s+h, theta, zeta)
		bsm := vol.BField(s-h, theta, zeta)
		for i := 0; i < 3; i++ {
			Expect(db[i][0]).To(BeNumerically("~", (bsp[i]-bsm[i])/(2*h), 1e-6))
		}
	})

	It("is 2π/Nfp periodic in ζ", func() {
		vol, err := equilibrium.NewVolume(dataset(), 2)
		Expect(err).NotTo(HaveOccurred())

		period := 2 * math.Pi / float64(vol.Nfp)
		a := vol.BField(0.2, 0.7, 0.3)
		b := vol.BField(0.2, 0.7, 0.3+period)
		for i := 0; i < 3; i++ {
			Expect(a[i]).To(BeNumerically("~", b[i], 1e-12))
		}
	})
})

var _ = Describe("Load", func() {
	It("round-trips a dataset through YAML and defaults rpol/rtor", func() {
		d := dataset()
		d.Rpol, d.Rtor = 0, 0

		raw, err := yaml.Marshal(d)
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(GinkgoT().TempDir(), "eq.yaml")
		Expect(os.WriteFile(path, raw, 0o644)).To(Succeed())

		loaded, err := equilibrium.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Mvol).To(Equal(2))
		Expect(loaded.Rpol).To(Equal(1.0))
		Expect(loaded.Rtor).To(Equal(1.0))

		_, err = equilibrium.NewVolume(loaded, 1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("fails cleanly on a missing file", func() {
		_, err := equilibrium.Load("/nonexistent/eq.yaml")
		Expect(err).To(HaveOccurred())
	})
})
