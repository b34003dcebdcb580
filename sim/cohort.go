package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidPopulation is returned for a non-positive population size.
var ErrInvalidPopulation = errors.New("population size must be positive")

// Cohort is an ordered set of patients sharing one therapy. Each patient has
// an independent random stream, so patients may be simulated in any order
// or concurrently without changing any result.
type Cohort struct {
	id        int
	params    *Parameters
	patients  []*Patient
	simulated bool
}

// NewCohort builds popSize patients with ids id*popSize + index.
// Distinct cohort ids with the same population size never share a seed.
func NewCohort(id, popSize int, params *Parameters) (*Cohort, error) {
	if popSize <= 0 {
		return nil, fmt.Errorf("cohort %d: %w, got %d", id, ErrInvalidPopulation, popSize)
	}
	if id < 0 {
		return nil, fmt.Errorf("cohort id must be non-negative, got %d", id)
	}
	if params == nil {
		return nil, fmt.Errorf("cohort %d: nil parameters", id)
	}
	patients := make([]*Patient, popSize)
	for i := range patients {
		patients[i] = NewPatient(DerivePatientID(id, popSize, i), params)
	}
	return &Cohort{id: id, params: params, patients: patients}, nil
}

// ID returns the cohort identifier.
func (c *Cohort) ID() int { return c.id }

// PopulationSize returns the initial number of patients.
func (c *Cohort) PopulationSize() int { return len(c.patients) }

// Patients returns the cohort's patients in index order.
func (c *Cohort) Patients() []*Patient { return c.patients }

// Simulate runs every patient to completion and extracts the outcomes.
// workers <= 1 runs patients sequentially; otherwise at most workers
// patients run at once. Outcomes are collected only after all patients
// have finished. A cohort can be simulated once.
func (c *Cohort) Simulate(ctx context.Context, workers int) (*CohortOutcomes, error) {
	if c.simulated {
		return nil, fmt.Errorf("cohort %d: %w", c.id, ErrAlreadySimulated)
	}
	c.simulated = true

	logrus.Infof("cohort %d (%s, scenario %q): simulating %d patients over %.1f years",
		c.id, c.params.Therapy(), c.params.ScenarioName(), len(c.patients), c.params.Horizon())
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for _, p := range c.patients {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return p.Simulate()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cohort %d: %w", c.id, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cohort %d: %w", c.id, err)
	}

	out := NewCohortOutcomes(c.id, c.params, c.patients)
	if n := out.CensoredCount(); n > 0 {
		logrus.Warnf("cohort %d (%s): %d of %d patients not well within the horizon; excluded from survival statistics",
			c.id, c.params.Therapy(), n, len(c.patients))
	}
	logrus.Infof("cohort %d (%s): done in %v", c.id, c.params.Therapy(), time.Since(start))
	return out, nil
}
