package scenario

import (
	"context"
	"errors"
	"fmt"

	"chemsim/internal/analysis"
	"chemsim/internal/kinetics"
	"chemsim/internal/ode"
)

// ErrNoClosedForm marks configurations without an analytic reference
// trajectory.
var ErrNoClosedForm = errors.New("no closed-form reference for this configuration")

// VerifyReport collects the numeric-versus-analytic comparison for
// every species plus the conservation-law drift of the run.
type VerifyReport struct {
	Species  []analysis.CompareReport
	Laws     []LawCheck
	Result   *ode.Result
	Analytic kinetics.RampedDecay
}

type LawCheck struct {
	Name  string
	Drift float64
	Pass  bool
}

func (r *VerifyReport) OK() bool {
	for _, rep := range r.Species {
		if !rep.Pass {
			return false
		}
	}
	for _, lc := range r.Laws {
		if !lc.Pass {
			return false
		}
	}
	return true
}

// Verify integrates the scenario and checks the trajectory against
// the closed-form solution. Only a single unimolecular reaction with
// an Eyring rate under a constant or linear temperature program has
// one.
func (s *Scenario) Verify(ctx context.Context, rtol, atol, driftTol float64) (*VerifyReport, error) {
	decay, err := s.closedForm()
	if err != nil {
		return nil, err
	}

	res, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("integration failed: %v", res.Errors[0])
	}

	rxn := s.Network.Reactions[0]
	report := &VerifyReport{Result: res, Analytic: decay}

	for _, name := range s.Network.Species {
		idx, _ := s.Network.Index(name)
		series := res.At(idx)

		var ref func(t float64) float64
		if _, isReac := rxn.Reac[name]; isReac {
			ref = decay.Reactant
		} else {
			coeff := float64(rxn.Prod[name])
			c0 := s.Cfg.Initial[name]
			ref = func(t float64) float64 {
				return c0 + coeff*decay.Product(t)
			}
		}
		report.Species = append(report.Species,
			analysis.Compare(name, res.Times, series, ref, rtol, atol))
	}

	for _, law := range s.Network.ConservationLaws() {
		drift := analysis.LawDrift(res, law)
		report.Laws = append(report.Laws, LawCheck{
			Name:  law.Describe(s.Network.Species),
			Drift: drift,
			Pass:  drift <= driftTol,
		})
	}
	return report, nil
}

// closedForm extracts the analytic solution when one exists.
func (s *Scenario) closedForm() (kinetics.RampedDecay, error) {
	var zero kinetics.RampedDecay
	if len(s.Network.Reactions) != 1 {
		return zero, fmt.Errorf("%w: %d reactions", ErrNoClosedForm, len(s.Network.Reactions))
	}
	rxn := s.Network.Reactions[0]
	if len(rxn.Reac) != 1 {
		return zero, fmt.Errorf("%w: %d reactants", ErrNoClosedForm, len(rxn.Reac))
	}
	var reactant string
	for name, coeff := range rxn.Reac {
		if coeff != 1 {
			return zero, fmt.Errorf("%w: reactant order %d", ErrNoClosedForm, coeff)
		}
		reactant = name
	}

	eyr, ok := s.System.Rates()[0].(kinetics.Eyring)
	if !ok {
		return zero, fmt.Errorf("%w: rate law %s", ErrNoClosedForm, s.System.Rates()[0])
	}

	var ramp kinetics.RampT
	switch temp := s.Temp.(type) {
	case kinetics.RampT:
		ramp = temp
	case kinetics.ConstantT:
		ramp = kinetics.RampT{T0: temp.T, Slope: 0}
	default:
		return zero, fmt.Errorf("%w: temperature program %s", ErrNoClosedForm, s.Temp)
	}

	return kinetics.RampedDecay{
		C0:   s.Cfg.Initial[reactant],
		Rate: eyr,
		Ramp: ramp,
	}, nil
}
