// Package chem holds the reaction-system data model: substances,
// stoichiometry, the textual reaction mini-language, and the
// conservation laws implied by a system's stoichiometric matrix.
package chem

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Substance is a chemical species. Charge is parsed from a trailing
// sign suffix ("H+", "OH-", "Fe+3").
type Substance struct {
	Name   string
	Charge int
}

// ParseSubstance splits a species token into its core name and
// charge.
func ParseSubstance(token string) (Substance, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Substance{}, fmt.Errorf("chem: empty substance token")
	}
	for _, r := range token {
		if unicode.IsSpace(r) {
			return Substance{}, fmt.Errorf("chem: substance %q contains whitespace", token)
		}
	}

	charge := 0
	// explicit magnitude: Fe+3, PO4-3
	if i := strings.LastIndexAny(token, "+-"); i > 0 && i < len(token)-1 {
		if n, err := strconv.Atoi(token[i+1:]); err == nil {
			charge = n
			if token[i] == '-' {
				charge = -n
			}
			return Substance{Name: token, Charge: charge}, nil
		}
	}
	// repeated signs: H+, OH-, SO4--
	trimmed := strings.TrimRight(token, "+-")
	if trimmed == "" {
		return Substance{}, fmt.Errorf("chem: substance %q has no name", token)
	}
	for _, r := range token[len(trimmed):] {
		switch r {
		case '+':
			charge++
		case '-':
			charge--
		}
	}
	return Substance{Name: token, Charge: charge}, nil
}
