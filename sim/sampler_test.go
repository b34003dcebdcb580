package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therapy-sim/therapy-sim/sim/internal/testutil"
)

func TestEmpiricalSampler_InverseCDF(t *testing.T) {
	sampler, err := NewEmpiricalSampler([]float64{0, 0.5, 0, 0.5})
	require.NoError(t, err)

	tests := []struct {
		u    float64
		want int
	}{
		{0, 1},                      // index 0 has no mass even at u == 0
		{0.25, 1},                   // interior of first positive bucket
		{math.Nextafter(0.5, 0), 1}, // just below the boundary
		{0.5, 3},                    // boundary belongs to the next positive bucket
		{math.Nextafter(1, 0), 3},   // largest possible draw
	}
	for _, tt := range tests {
		draws := testutil.NewScriptedDraws(t, tt.u)
		if got := sampler.Sample(draws); got != tt.want {
			t.Errorf("Sample(u=%v) = %d, want %d", tt.u, got, tt.want)
		}
	}
}

func TestEmpiricalSampler_TrailingZeroNeverSelected(t *testing.T) {
	// GIVEN a row whose last entry has zero probability
	sampler, err := NewEmpiricalSampler([]float64{0.5, 0.5, 0})
	require.NoError(t, err)

	// WHEN drawing at the very top of [0, 1) and at an out-of-contract 1.0
	for _, u := range []float64{math.Nextafter(1, 0), 1.0} {
		got := sampler.Sample(testutil.NewScriptedDraws(t, u))
		// THEN the last positive index is returned, never the zero entry
		assert.Equal(t, 1, got, "u=%v", u)
	}
}

func TestEmpiricalSampler_AbsorbingRow(t *testing.T) {
	sampler, err := NewEmpiricalSampler([]float64{0, 0, 0, 1})
	require.NoError(t, err)
	for _, u := range []float64{0, 0.3, 0.999} {
		assert.Equal(t, int(StateWell), sampler.Sample(testutil.NewScriptedDraws(t, u)))
	}
}

func TestEmpiricalSampler_InvalidRows(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
	}{
		{"empty", nil},
		{"negative", []float64{-0.1, 1.1}},
		{"NaN", []float64{math.NaN(), 1}},
		{"sums below one", []float64{0.2, 0.2}},
		{"sums above one", []float64{0.7, 0.7}},
		{"infinite", []float64{math.Inf(1), 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmpiricalSampler(tt.probs)
			assert.Error(t, err)
		})
	}
}

func TestEmpiricalSampler_ToleratesRoundingInRowSum(t *testing.T) {
	// 0.1+0.2+0.7 is not exactly 1.0 in binary floating point
	sampler, err := NewEmpiricalSampler([]float64{0.1, 0.2, 0.7})
	require.NoError(t, err)
	assert.Equal(t, 2, sampler.Sample(testutil.NewScriptedDraws(t, math.Nextafter(1, 0))))
}

func TestEmpiricalSampler_FrequenciesConverge(t *testing.T) {
	// GIVEN the standard-therapy SICK row and a fixed seed
	probs := []float64{0, 0.631, 0, 0.369}
	sampler, err := NewEmpiricalSampler(probs)
	require.NoError(t, err)
	rng := NewPatientRNG(7)

	// WHEN drawing many samples
	const n = 100000
	counts := make([]int, len(probs))
	for i := 0; i < n; i++ {
		idx := sampler.Sample(rng)
		require.True(t, idx >= 0 && idx < len(probs), "index %d out of range", idx)
		counts[idx]++
	}

	// THEN each empirical frequency is within 4 standard errors of its probability
	for i, p := range probs {
		freq := float64(counts[i]) / n
		if p == 0 {
			assert.Zero(t, counts[i], "zero-probability index %d was selected", i)
			continue
		}
		se := math.Sqrt(p * (1 - p) / n)
		assert.InDelta(t, p, freq, 4*se, "index %d", i)
	}
}

func TestEmpiricalSampler_SameSeedSameSequence(t *testing.T) {
	sampler, err := NewEmpiricalSampler([]float64{0, 0.8699, 0.0195, 0.1106})
	require.NoError(t, err)
	a, b := NewPatientRNG(99), NewPatientRNG(99)
	for i := 0; i < 500; i++ {
		if sampler.Sample(a) != sampler.Sample(b) {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}
}
