package chem

import (
	"fmt"
	"sort"
	"strings"

	"chemsim/internal/linalg"
)

// ReactionSystem is an ordered set of species and the reactions
// transforming them. Species order fixes the meaning of state
// vectors everywhere downstream.
type ReactionSystem struct {
	Species   []string
	Reactions []*Reaction

	index map[string]int
}

// NewSystem builds a system over an explicit species ordering.
func NewSystem(species []string, reactions []*Reaction) (*ReactionSystem, error) {
	rs := &ReactionSystem{
		Species:   species,
		Reactions: reactions,
		index:     make(map[string]int, len(species)),
	}
	for i, s := range species {
		if _, dup := rs.index[s]; dup {
			return nil, fmt.Errorf("chem: duplicate species %q", s)
		}
		rs.index[s] = i
	}
	for _, rxn := range reactions {
		for name := range rxn.Reac {
			if _, ok := rs.index[name]; !ok {
				return nil, fmt.Errorf("chem: reaction %s uses unknown species %q", rxn, name)
			}
		}
		for name := range rxn.Prod {
			if _, ok := rs.index[name]; !ok {
				return nil, fmt.Errorf("chem: reaction %s uses unknown species %q", rxn, name)
			}
		}
	}
	return rs, nil
}

// FromStrings parses reaction lines and infers the species ordering
// from first appearance.
func FromStrings(lines []string) (*ReactionSystem, error) {
	var reactions []*Reaction
	var species []string
	seen := make(map[string]bool)

	appear := func(side map[string]int) {
		for _, name := range sortedKeys(side) {
			if !seen[name] {
				seen[name] = true
				species = append(species, name)
			}
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rxn, err := ParseReaction(line)
		if err != nil {
			return nil, err
		}
		reactions = append(reactions, rxn)
		appear(rxn.Reac)
		appear(rxn.Prod)
	}
	if len(reactions) == 0 {
		return nil, fmt.Errorf("chem: no reactions given")
	}
	return NewSystem(species, reactions)
}

// Index returns the state-vector position of a species.
func (rs *ReactionSystem) Index(name string) (int, bool) {
	i, ok := rs.index[name]
	return i, ok
}

// NetMatrix returns the net stoichiometric matrix N (species x
// reactions): dc/dt = N * r.
func (rs *ReactionSystem) NetMatrix() *linalg.Matrix {
	n := linalg.New(len(rs.Species), len(rs.Reactions))
	for j, rxn := range rs.Reactions {
		for i, name := range rs.Species {
			n.Set(i, j, float64(rxn.Net(name)))
		}
	}
	return n
}

// ConservationLaw is a linear combination of concentrations that
// every trajectory of the system preserves.
type ConservationLaw struct {
	Coeffs []float64
}

func (c ConservationLaw) Apply(conc []float64) float64 {
	total := 0.0
	for i, w := range c.Coeffs {
		total += w * conc[i]
	}
	return total
}

func (c ConservationLaw) Describe(species []string) string {
	var parts []string
	for i, w := range c.Coeffs {
		switch {
		case w == 0:
		case w == 1:
			parts = append(parts, "["+species[i]+"]")
		case w == -1:
			parts = append(parts, "-["+species[i]+"]")
		default:
			parts = append(parts, fmt.Sprintf("%g[%s]", w, species[i]))
		}
	}
	return strings.Join(parts, " + ")
}

// ConservationLaws returns a basis of the left null space of the net
// stoichiometric matrix.
func (rs *ReactionSystem) ConservationLaws() []ConservationLaw {
	basis := linalg.Nullspace(rs.NetMatrix().Transpose())
	laws := make([]ConservationLaw, len(basis))
	for i, v := range basis {
		laws[i] = ConservationLaw{Coeffs: v}
	}
	return laws
}

func (rs *ReactionSystem) String() string {
	lines := make([]string, len(rs.Reactions))
	for i, rxn := range rs.Reactions {
		lines[i] = rxn.String()
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
