package units

// CODATA 2018 values. The 2019 SI redefinition makes most of these
// exact.
var (
	// GasConstant R, J/(K mol).
	GasConstant = New(8.31446261815324, Dim(2, 1, -2, 0, -1, -1))

	// Boltzmann k_B, J/K.
	Boltzmann = New(1.380649e-23, Dim(2, 1, -2, 0, -1, 0))

	// Planck h, J s.
	Planck = New(6.62607015e-34, Dim(2, 1, -1, 0, 0, 0))

	// Avogadro N_A, 1/mol.
	Avogadro = New(6.02214076e23, Dim(0, 0, 0, 0, 0, -1))

	// ElementaryCharge e, C.
	ElementaryCharge = New(1.602176634e-19, Dim(0, 0, 1, 1, 0, 0))

	// VacuumPermittivity eps_0, F/m.
	VacuumPermittivity = New(8.8541878128e-12, Dim(-3, -1, 4, 2, 0, 0))

	// Faraday F = N_A * e, C/mol.
	Faraday = New(96485.33212331001, Dim(0, 0, 1, 1, 0, -1))
)

// Common dimensions.
var (
	DimKelvin        = Dim(0, 0, 0, 0, 1, 0)
	DimDensity       = Dim(-3, 1, 0, 0, 0, 0) // kg/m^3
	DimMolality      = Dim(0, -1, 0, 0, 0, 1) // mol/kg
	DimConcentration = Dim(-3, 0, 0, 0, 0, 1) // mol/m^3
	DimPerSecond     = Dim(0, 0, -1, 0, 0, 0)
)

func Kelvin(v float64) Quantity   { return New(v, DimKelvin) }
func Density(v float64) Quantity  { return New(v, DimDensity) }
func Molality(v float64) Quantity { return New(v, DimMolality) }
