// Package electrolytes implements the Debye-Hückel description of
// ionic activity coefficients in dilute solution: the temperature-
// dependent A and B coefficients and the limiting, extended and
// Davies laws, each with a units-checked numeric form and a symbolic
// form.
package electrolytes

import (
	"fmt"
	"math"

	"chemsim/internal/units"
	"chemsim/internal/water"
)

// Ln10 converts between natural-log and base-10 activity
// coefficients.
var Ln10 = math.Log(10)

// daviesC is the empirical linear coefficient of the Davies equation.
const daviesC = 0.3

// A computes the Debye-Hückel A coefficient (natural-log basis),
//
//	A = sqrt(2 pi N_A rho) * (e^2 / (4 pi eps_r eps_0 k_B T))^(3/2)
//
// in (kg/mol)^(1/2): A*sqrt(I) is dimensionless for I in mol/kg.
// About 1.172 (kg/mol)^(1/2) for water at 298.15 K.
func A(epsR float64, T, rho units.Quantity) (units.Quantity, error) {
	if err := checkDims(T, rho); err != nil {
		return units.Quantity{}, err
	}
	prefactor, err := units.Avogadro.Mul(rho).Scale(2 * math.Pi).Sqrt()
	if err != nil {
		return units.Quantity{}, err
	}
	bjerrum, err := bjerrumLength(epsR, T)
	if err != nil {
		return units.Quantity{}, err
	}
	cubed, err := bjerrum.Pow(3, 2)
	if err != nil {
		return units.Quantity{}, err
	}
	return prefactor.Mul(cubed), nil
}

// B computes the Debye-Hückel B coefficient,
//
//	B = e * sqrt(2 N_A rho / (eps_r eps_0 k_B T))
//
// in m^-1 (kg/mol)^(1/2); about 3.28e9 for water at 298.15 K.
func B(epsR float64, T, rho units.Quantity) (units.Quantity, error) {
	if err := checkDims(T, rho); err != nil {
		return units.Quantity{}, err
	}
	denom := units.VacuumPermittivity.Mul(units.Boltzmann).Mul(T).Scale(epsR)
	ratio, err := units.Avogadro.Mul(rho).Scale(2).Div(denom).Sqrt()
	if err != nil {
		return units.Quantity{}, err
	}
	return units.ElementaryCharge.Mul(ratio), nil
}

// AForWater evaluates A with the water correlations at T (K), 1 bar.
func AForWater(T float64) (units.Quantity, error) {
	epsR, rho, err := waterProperties(T)
	if err != nil {
		return units.Quantity{}, err
	}
	return A(epsR, units.Kelvin(T), rho)
}

// BForWater evaluates B with the water correlations at T (K), 1 bar.
func BForWater(T float64) (units.Quantity, error) {
	epsR, rho, err := waterProperties(T)
	if err != nil {
		return units.Quantity{}, err
	}
	return B(epsR, units.Kelvin(T), rho)
}

func waterProperties(T float64) (float64, units.Quantity, error) {
	epsR, err := water.Permittivity(T, 1)
	if err != nil {
		return 0, units.Quantity{}, err
	}
	rho, err := water.Density(T)
	if err != nil {
		return 0, units.Quantity{}, err
	}
	return epsR, rho, nil
}

// bjerrumLength is e^2/(4 pi eps_r eps_0 k_B T).
func bjerrumLength(epsR float64, T units.Quantity) (units.Quantity, error) {
	if epsR <= 0 {
		return units.Quantity{}, fmt.Errorf("electrolytes: permittivity must be positive, got %g", epsR)
	}
	e2 := units.ElementaryCharge.Mul(units.ElementaryCharge)
	denom := units.VacuumPermittivity.Mul(units.Boltzmann).Mul(T).Scale(4 * math.Pi * epsR)
	return e2.Div(denom), nil
}

func checkDims(T, rho units.Quantity) error {
	if T.Dim != units.DimKelvin {
		return &units.DimensionError{Op: "use as temperature", Left: T.Dim, Right: units.DimKelvin}
	}
	if rho.Dim != units.DimDensity {
		return &units.DimensionError{Op: "use as density", Left: rho.Dim, Right: units.DimDensity}
	}
	return nil
}

// LimitingLnGamma is the Debye-Hückel limiting law,
// ln gamma = -A z^2 sqrt(I), for ionic strength I in mol/kg. The
// product A*sqrt(I) must come out dimensionless.
func LimitingLnGamma(a units.Quantity, z int, ionicStrength units.Quantity) (float64, error) {
	sqrtI, err := ionicStrength.Sqrt()
	if err != nil {
		return 0, err
	}
	prod := a.Mul(sqrtI)
	if !prod.Dim.IsDimensionless() {
		return 0, &units.DimensionError{Op: "form limiting law from", Left: a.Dim, Right: ionicStrength.Dim}
	}
	return -float64(z*z) * prod.Value, nil
}

// ExtendedLnGamma is the extended Debye-Hückel law,
// ln gamma = -A z^2 sqrt(I) / (1 + B a0 sqrt(I)), with ion-size
// parameter a0 (m).
func ExtendedLnGamma(a, b units.Quantity, ionSize units.Quantity, z int, ionicStrength units.Quantity) (float64, error) {
	sqrtI, err := ionicStrength.Sqrt()
	if err != nil {
		return 0, err
	}
	num := a.Mul(sqrtI)
	den := b.Mul(ionSize).Mul(sqrtI)
	if !num.Dim.IsDimensionless() || !den.Dim.IsDimensionless() {
		return 0, &units.DimensionError{Op: "form extended law from", Left: num.Dim, Right: den.Dim}
	}
	return -float64(z*z) * num.Value / (1 + den.Value), nil
}

// DaviesLnGamma is the Davies equation,
// ln gamma = -A z^2 (sqrt(I)/(1+sqrt(I)) - 0.3 I), with I relative to
// the 1 mol/kg reference molality.
func DaviesLnGamma(a units.Quantity, z int, ionicStrength units.Quantity) (float64, error) {
	iRel := ionicStrength.Div(units.Molality(1))
	if !iRel.Dim.IsDimensionless() {
		return 0, &units.DimensionError{Op: "form Davies law from", Left: ionicStrength.Dim, Right: units.DimMolality}
	}
	sqrtB0, err := units.Molality(1).Sqrt()
	if err != nil {
		return 0, err
	}
	aDimless := a.Mul(sqrtB0)
	if !aDimless.Dim.IsDimensionless() {
		return 0, &units.DimensionError{Op: "form Davies law from", Left: a.Dim, Right: units.DimMolality}
	}
	s := math.Sqrt(iRel.Value)
	return -float64(z*z) * aDimless.Value * (s/(1+s) - daviesC*iRel.Value), nil
}

// LimitingLog10Gamma is the base-10 limiting law; for water at
// 298.15 K the prefactor A/ln(10) is the familiar 0.509.
func LimitingLog10Gamma(a units.Quantity, z int, ionicStrength units.Quantity) (float64, error) {
	ln, err := LimitingLnGamma(a, z, ionicStrength)
	if err != nil {
		return 0, err
	}
	return ln / Ln10, nil
}
