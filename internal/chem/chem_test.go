package chem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubstance(t *testing.T) {
	tests := []struct {
		token  string
		charge int
	}{
		{"H2O", 0},
		{"H+", 1},
		{"OH-", -1},
		{"SO4--", -2},
		{"Fe+3", 3},
		{"PO4-3", -3},
	}

	for _, tt := range tests {
		sub, err := ParseSubstance(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.charge, sub.Charge, tt.token)
		assert.Equal(t, tt.token, sub.Name, tt.token)
	}

	_, err := ParseSubstance("")
	assert.Error(t, err)
	_, err = ParseSubstance("++")
	assert.Error(t, err)
}

func TestParseReaction(t *testing.T) {
	rxn, err := ParseReaction("NOBr -> NO + Br; eyring(84e3, 10)")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"NOBr": 1}, rxn.Reac)
	assert.Equal(t, map[string]int{"NO": 1, "Br": 1}, rxn.Prod)
	assert.Equal(t, "eyring", rxn.Rate.Name)
	assert.Equal(t, []float64{84e3, 10}, rxn.Rate.Args)
}

func TestParseReactionCoefficients(t *testing.T) {
	rxn, err := ParseReaction("2 H2 + O2 -> 2 H2O; arrhenius(1e10, 40e3)")
	require.NoError(t, err)

	assert.Equal(t, 2, rxn.Reac["H2"])
	assert.Equal(t, 1, rxn.Reac["O2"])
	assert.Equal(t, 2, rxn.Prod["H2O"])
	assert.Equal(t, -2, rxn.Net("H2"))
	assert.Equal(t, 2, rxn.Net("H2O"))
}

func TestParseReactionCharged(t *testing.T) {
	rxn, err := ParseReaction("H2O -> H+ + OH-; 1e-4")
	require.NoError(t, err)
	assert.Equal(t, 1, rxn.Prod["H+"])
	assert.Equal(t, 1, rxn.Prod["OH-"])
	assert.Equal(t, "const", rxn.Rate.Name)
	assert.Equal(t, []float64{1e-4}, rxn.Rate.Args)
}

func TestParseReactionErrors(t *testing.T) {
	cases := []string{
		"NOBr -> NO + Br",            // missing rate
		"NOBr NO + Br; 1",            // missing arrow
		"-> NO; 1",                   // empty side
		"NOBr -> NO + Br; eyring(",   // malformed call
		"NOBr -> NO + Br; fast",      // not a number or call
		"0 A -> B; 1",                // bad coefficient
		"H2O -> H+ + H+; 1e-4",       // charge imbalance
	}
	for _, line := range cases {
		_, err := ParseReaction(line)
		assert.Error(t, err, line)
	}
}

func TestFromStringsOrdering(t *testing.T) {
	rs, err := FromStrings([]string{
		"# water autoprotolysis",
		"H2O -> H+ + OH-; 1e-4",
		"H+ + OH- -> H2O; 1e10",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"H2O", "H+", "OH-"}, rs.Species)
	assert.Len(t, rs.Reactions, 2)

	i, ok := rs.Index("OH-")
	require.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestSystemUnknownSpecies(t *testing.T) {
	rxn, err := ParseReaction("A -> B; 1")
	require.NoError(t, err)
	_, err = NewSystem([]string{"A"}, []*Reaction{rxn})
	assert.Error(t, err)
}

func TestNetMatrix(t *testing.T) {
	rs, err := FromStrings([]string{"NOBr -> NO + Br; 0.08"})
	require.NoError(t, err)

	n := rs.NetMatrix()
	require.Equal(t, 3, n.Rows())
	require.Equal(t, 1, n.Cols())
	assert.Equal(t, -1.0, n.At(0, 0))
	assert.Equal(t, 1.0, n.At(1, 0))
	assert.Equal(t, 1.0, n.At(2, 0))
}

func TestConservationLaws(t *testing.T) {
	rs, err := FromStrings([]string{"NOBr -> NO + Br; 0.08"})
	require.NoError(t, err)

	laws := rs.ConservationLaws()
	require.Len(t, laws, 2)

	// any trajectory point of the decay keeps both laws at their
	// initial value
	c0 := []float64{0.7, 0, 0}
	cLater := []float64{0.3, 0.4, 0.4}
	for _, law := range laws {
		assert.InDelta(t, law.Apply(c0), law.Apply(cLater), 1e-12)
	}
}

func TestConservationLawsEquilibrium(t *testing.T) {
	rs, err := FromStrings([]string{
		"A -> B; 0.3",
		"B -> A; 0.1",
	})
	require.NoError(t, err)

	laws := rs.ConservationLaws()
	require.Len(t, laws, 1)
	total := laws[0].Apply([]float64{0.25, 0.75})
	assert.InDelta(t, 1.0, math.Abs(total), 1e-12)
}
