package water_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chemsim/internal/water"
)

var _ = Describe("Density (Tanaka 2001)", func() {
	It("reproduces the density maximum near 4 degC", func() {
		rho4, err := water.Density(277.13)
		Expect(err).NotTo(HaveOccurred())
		Expect(rho4.Value).To(BeNumerically("~", 999.975, 1e-3))

		rho10, err := water.Density(283.15)
		Expect(err).NotTo(HaveOccurred())
		Expect(rho10.Value).To(BeNumerically("<", rho4.Value))
	})

	It("matches the reference value at 25 degC", func() {
		rho, err := water.Density(298.15)
		Expect(err).NotTo(HaveOccurred())
		Expect(rho.Value).To(BeNumerically("~", 997.047, 1e-3))
	})

	It("carries kg/m^3 dimensions", func() {
		rho, err := water.Density(298.15)
		Expect(err).NotTo(HaveOccurred())
		Expect(rho.Dim.String()).To(Equal("m^-3 kg"))
	})

	It("rejects temperatures outside the fit range", func() {
		_, err := water.Density(373.15)
		Expect(err).To(HaveOccurred())
		var re *water.RangeError
		Expect(err).To(BeAssignableToTypeOf(re))
	})

	It("agrees with its symbolic form", func() {
		expr := water.DensityExpr("T")
		for _, T := range []float64{275.15, 288.15, 298.15, 310.15} {
			rho, err := water.Density(T)
			Expect(err).NotTo(HaveOccurred())
			sym, err := expr.Eval(map[string]float64{"T": T})
			Expect(err).NotTo(HaveOccurred())
			Expect(sym).To(BeNumerically("~", rho.Value, rho.Value*1e-12))
		}
	})
})

var _ = Describe("Permittivity (Bradley-Pitzer 1979)", func() {
	It("matches the accepted value at 25 degC, 1 bar", func() {
		eps, err := water.Permittivity(298.15, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(eps).To(BeNumerically("~", 78.38, 0.05))
	})

	It("decreases with temperature", func() {
		cold, err := water.Permittivity(278.15, 1)
		Expect(err).NotTo(HaveOccurred())
		hot, err := water.Permittivity(348.15, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(hot).To(BeNumerically("<", cold))
	})

	It("rejects temperatures outside the fit range", func() {
		_, err := water.Permittivity(150, 1)
		Expect(err).To(HaveOccurred())
	})

	It("agrees with its symbolic form", func() {
		expr := water.PermittivityExpr("T", "P")
		for _, T := range []float64{278.15, 298.15, 348.15, 423.15} {
			eps, err := water.Permittivity(T, 1)
			Expect(err).NotTo(HaveOccurred())
			sym, err := expr.Eval(map[string]float64{"T": T, "P": 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(sym).To(BeNumerically("~", eps, eps*1e-12))
		}
	})
})
