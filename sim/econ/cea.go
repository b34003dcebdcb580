package econ

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/therapy-sim/therapy-sim/sim"
)

// Strategy is one arm's per-patient discounted costs and utilities.
// Costs[i] and Utilities[i] belong to the same patient.
type Strategy struct {
	Name      string
	Costs     []float64
	Utilities []float64
}

// NewStrategy takes the cost and utility lists of a simulated cohort.
func NewStrategy(name string, o *sim.CohortOutcomes) Strategy {
	return Strategy{Name: name, Costs: o.Costs(), Utilities: o.Utilities()}
}

func (s Strategy) validate() error {
	if len(s.Costs) == 0 {
		return fmt.Errorf("strategy %q: no patients", s.Name)
	}
	if len(s.Costs) != len(s.Utilities) {
		return fmt.Errorf("strategy %q: %d costs but %d utilities", s.Name, len(s.Costs), len(s.Utilities))
	}
	return nil
}

// Outcome classifies the alternative strategy against the base.
type Outcome int

const (
	// OutcomeTradeoff: more effective and more costly, or less of both; the ICER is meaningful.
	OutcomeTradeoff Outcome = iota
	// OutcomeDominant: at least as effective and no more costly.
	OutcomeDominant
	// OutcomeDominated: no more effective and at least as costly.
	OutcomeDominated
	// OutcomeEquivalent: identical mean cost and utility.
	OutcomeEquivalent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTradeoff:
		return "tradeoff"
	case OutcomeDominant:
		return "dominant"
	case OutcomeDominated:
		return "dominated"
	case OutcomeEquivalent:
		return "equivalent"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ErrNoBootstrap is returned when the ICER interval cannot be estimated.
var ErrNoBootstrap = errors.New("icer interval unavailable")

// CEAResult is the cost-effectiveness of Alt relative to Base.
type CEAResult struct {
	Base         string
	Alt          string
	DeltaCost    float64
	DeltaUtility float64
	Outcome      Outcome
	ICER         float64      // DeltaCost / DeltaUtility; NaN unless Outcome is OutcomeTradeoff
	ICERInterval sim.Interval // bootstrap percentile interval; zero when unavailable
	Resamples    int          // bootstrap resamples with a finite ICER
}

// CEAOptions configures the bootstrap around the ICER.
type CEAOptions struct {
	Alpha     float64
	Resamples int // 0 disables the bootstrap
	Seed      int64
}

// CEA compares alt against base.
func CEA(base, alt Strategy, opts CEAOptions) (*CEAResult, error) {
	if err := base.validate(); err != nil {
		return nil, err
	}
	if err := alt.validate(); err != nil {
		return nil, err
	}

	dc := stat.Mean(alt.Costs, nil) - stat.Mean(base.Costs, nil)
	de := stat.Mean(alt.Utilities, nil) - stat.Mean(base.Utilities, nil)
	res := &CEAResult{
		Base:         base.Name,
		Alt:          alt.Name,
		DeltaCost:    dc,
		DeltaUtility: de,
		Outcome:      classify(dc, de),
		ICER:         math.NaN(),
	}
	if res.Outcome != OutcomeTradeoff {
		return res, nil
	}
	res.ICER = dc / de

	if opts.Resamples > 0 {
		interval, n, err := bootstrapICER(base, alt, opts)
		if err != nil {
			logrus.Warnf("CEA %s vs %s: %v", alt.Name, base.Name, err)
		} else {
			res.ICERInterval = interval
			res.Resamples = n
		}
	}
	return res, nil
}

func classify(dc, de float64) Outcome {
	switch {
	case dc == 0 && de == 0:
		return OutcomeEquivalent
	case de >= 0 && dc <= 0:
		return OutcomeDominant
	case de <= 0 && dc >= 0:
		return OutcomeDominated
	default:
		return OutcomeTradeoff
	}
}

// bootstrapICER resamples patients within each arm, keeping each patient's
// cost and utility together, and returns the percentile interval of the
// resampled ICERs.
func bootstrapICER(base, alt Strategy, opts CEAOptions) (sim.Interval, int, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	icers := make([]float64, 0, opts.Resamples)
	for i := 0; i < opts.Resamples; i++ {
		bc, bu := resampleMeans(rng, base)
		ac, au := resampleMeans(rng, alt)
		de := au - bu
		if de == 0 {
			continue
		}
		icers = append(icers, (ac-bc)/de)
	}
	if len(icers) < 2 {
		return sim.Interval{}, 0, fmt.Errorf("%w: %d usable resamples", ErrNoBootstrap, len(icers))
	}
	s := sim.NewSummaryStat("ICER", icers)
	return s.PercentileInterval(opts.Alpha), len(icers), nil
}

func resampleMeans(rng *rand.Rand, s Strategy) (cost, utility float64) {
	n := len(s.Costs)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		cost += s.Costs[j]
		utility += s.Utilities[j]
	}
	return cost / float64(n), utility / float64(n)
}
