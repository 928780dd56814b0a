package units

import (
	"errors"
	"math"
	"testing"
)

func TestDimensionString(t *testing.T) {
	tests := []struct {
		name string
		dim  Dimension
		want string
	}{
		{"dimensionless", Dim(0, 0, 0, 0, 0, 0), "1"},
		{"energy", Dim(2, 1, -2, 0, 0, 0), "m^2 kg s^-2"},
		{"per mol", Dim(0, 0, 0, 0, 0, -1), "mol^-1"},
	}

	for _, tt := range tests {
		if got := tt.dim.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHalfExponents(t *testing.T) {
	// sqrt(mol/kg) shows up in Debye-Hückel coefficients
	m, err := Molality(1).Sqrt()
	if err != nil {
		t.Fatalf("sqrt failed: %v", err)
	}
	want := "1 kg^(-1/2) mol^(1/2)"
	if got := m.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddDimensionMismatch(t *testing.T) {
	_, err := Kelvin(1).Add(Density(1))
	if err == nil {
		t.Fatal("expected dimension error")
	}
	var de *DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected *DimensionError, got %T", err)
	}
}

func TestPowOddHalf(t *testing.T) {
	m, _ := Molality(4).Sqrt() // exponent 1/2
	if _, err := m.Sqrt(); err == nil {
		t.Error("expected error taking sqrt of half exponent")
	}
}

func TestFaradayIdentity(t *testing.T) {
	f := Avogadro.Mul(ElementaryCharge)
	if f.Dim != Faraday.Dim {
		t.Errorf("dimension mismatch: %s vs %s", f.Dim, Faraday.Dim)
	}
	if math.Abs(f.Value-Faraday.Value)/Faraday.Value > 1e-12 {
		t.Errorf("N_A*e = %v, want %v", f.Value, Faraday.Value)
	}
}

func TestThermalEnergyDimensionless(t *testing.T) {
	// e^2 / (4 pi eps0 kB T) should carry length dimension
	e2 := ElementaryCharge.Mul(ElementaryCharge)
	denom := VacuumPermittivity.Mul(Boltzmann).Mul(Kelvin(298.15)).Scale(4 * math.Pi)
	l := e2.Div(denom)
	if l.Dim != Dim(1, 0, 0, 0, 0, 0) {
		t.Errorf("Bjerrum-length dimension wrong: %s", l.Dim)
	}
	// ~56 nm / 78 => in vacuum about 5.6e-8 m
	if l.Value < 5.5e-8 || l.Value > 5.8e-8 {
		t.Errorf("vacuum Bjerrum length out of range: %v", l.Value)
	}
}
