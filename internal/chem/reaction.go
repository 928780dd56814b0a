package chem

import (
	"fmt"
	"strconv"
	"strings"
)

// RateSpec names a rate parameterization from the mini-language:
// a bare number ("0.08") becomes {"const", [0.08]}, a call form
// ("eyring(84e3, 10)") keeps its name and arguments. Resolution to an
// actual rate law happens in the kinetics package.
type RateSpec struct {
	Name string
	Args []float64
}

// Reaction is one stoichiometric transformation with a rate
// parameterization.
type Reaction struct {
	Reac map[string]int
	Prod map[string]int
	Rate RateSpec
}

// ParseReaction parses one line of the reaction mini-language:
//
//	"NOBr -> NO + Br; eyring(84e3, 10)"
//	"2 H2 + O2 -> 2 H2O; arrhenius(1e10, 40e3)"
//	"A -> B; 0.05"
func ParseReaction(line string) (*Reaction, error) {
	eq, rateStr, hasRate := strings.Cut(line, ";")
	if !hasRate {
		return nil, fmt.Errorf("chem: reaction %q missing rate after ';'", line)
	}

	left, right, found := strings.Cut(eq, "->")
	if !found {
		return nil, fmt.Errorf("chem: reaction %q missing '->'", line)
	}

	reac, err := parseSide(left)
	if err != nil {
		return nil, fmt.Errorf("chem: reaction %q: %w", line, err)
	}
	prod, err := parseSide(right)
	if err != nil {
		return nil, fmt.Errorf("chem: reaction %q: %w", line, err)
	}
	if len(reac) == 0 || len(prod) == 0 {
		return nil, fmt.Errorf("chem: reaction %q has an empty side", line)
	}

	rate, err := parseRateSpec(rateStr)
	if err != nil {
		return nil, fmt.Errorf("chem: reaction %q: %w", line, err)
	}

	rxn := &Reaction{Reac: reac, Prod: prod, Rate: rate}
	if err := rxn.checkChargeBalance(); err != nil {
		return nil, fmt.Errorf("chem: reaction %q: %w", line, err)
	}
	return rxn, nil
}

// Terms are separated by a spaced " + ", which keeps charge suffixes
// like "H+" unambiguous.
func parseSide(s string) (map[string]int, error) {
	out := make(map[string]int)
	for _, term := range strings.Split(strings.TrimSpace(s), " + ") {
		term = strings.TrimSpace(term)
		if term == "" {
			return nil, fmt.Errorf("empty term")
		}
		coeff := 1
		fields := strings.Fields(term)
		switch len(fields) {
		case 1:
		case 2:
			n, err := strconv.Atoi(fields[0])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("bad stoichiometric coefficient %q", fields[0])
			}
			coeff = n
			term = fields[1]
		default:
			return nil, fmt.Errorf("bad term %q", term)
		}
		sub, err := ParseSubstance(term)
		if err != nil {
			return nil, err
		}
		out[sub.Name] += coeff
	}
	return out, nil
}

func parseRateSpec(s string) (RateSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RateSpec{}, fmt.Errorf("empty rate")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return RateSpec{Name: "const", Args: []float64{v}}, nil
	}
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return RateSpec{}, fmt.Errorf("bad rate %q", s)
	}
	name := strings.TrimSpace(s[:open])
	var args []float64
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return RateSpec{}, fmt.Errorf("bad rate argument %q", a)
		}
		args = append(args, v)
	}
	return RateSpec{Name: name, Args: args}, nil
}

func (r *Reaction) checkChargeBalance() error {
	total := 0
	for name, coeff := range r.Reac {
		sub, _ := ParseSubstance(name)
		total -= coeff * sub.Charge
	}
	for name, coeff := range r.Prod {
		sub, _ := ParseSubstance(name)
		total += coeff * sub.Charge
	}
	if total != 0 {
		return fmt.Errorf("charge imbalance %+d", total)
	}
	return nil
}

// Net returns the net stoichiometric coefficient of a species.
func (r *Reaction) Net(name string) int {
	return r.Prod[name] - r.Reac[name]
}

func (r *Reaction) String() string {
	return sideString(r.Reac) + " -> " + sideString(r.Prod)
}

func sideString(side map[string]int) string {
	names := sortedKeys(side)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if c := side[n]; c == 1 {
			parts = append(parts, n)
		} else {
			parts = append(parts, fmt.Sprintf("%d %s", c, n))
		}
	}
	return strings.Join(parts, " + ")
}
