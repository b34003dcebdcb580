// Package testutil provides shared test infrastructure for the therapy
// simulator: a deterministic draw source and a float assertion helper used
// across sim/ and its sub-packages.
package testutil

import (
	"math"
	"testing"
)

// ScriptedDraws is a DrawSource that replays a fixed list of draws.
// It fails the test if more draws are consumed than were scripted.
type ScriptedDraws struct {
	t     *testing.T
	draws []float64
	next  int
}

// NewScriptedDraws returns a source that yields draws in order.
func NewScriptedDraws(t *testing.T, draws ...float64) *ScriptedDraws {
	t.Helper()
	return &ScriptedDraws{t: t, draws: draws}
}

// Float64 returns the next scripted draw.
func (s *ScriptedDraws) Float64() float64 {
	if s.next >= len(s.draws) {
		s.t.Fatalf("ScriptedDraws: draw %d requested, only %d scripted", s.next+1, len(s.draws))
		return 0
	}
	v := s.draws[s.next]
	s.next++
	return v
}

// Consumed returns how many draws have been taken.
func (s *ScriptedDraws) Consumed() int {
	return s.next
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
