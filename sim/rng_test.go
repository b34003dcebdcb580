package sim

import (
	"math"
	"testing"
)

// === DerivePatientID Tests ===

func TestDerivePatientID(t *testing.T) {
	tests := []struct {
		name     string
		cohortID int
		popSize  int
		index    int
		want     PatientID
	}{
		{"first patient of cohort 0", 0, 2000, 0, 0},
		{"last patient of cohort 0", 0, 2000, 1999, 1999},
		{"first patient of cohort 1", 1, 2000, 0, 2000},
		{"last patient of cohort 1", 1, 2000, 1999, 3999},
		{"large cohort id", 1_000_000, 5000, 7, 5_000_000_007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePatientID(tt.cohortID, tt.popSize, tt.index)
			if got != tt.want {
				t.Errorf("DerivePatientID(%d, %d, %d) = %d, want %d", tt.cohortID, tt.popSize, tt.index, got, tt.want)
			}
		})
	}
}

// === PatientRNG Tests ===

func TestPatientRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same patient id produces same sequence
	rng1 := NewPatientRNG(42)
	rng2 := NewPatientRNG(42)

	for i := 0; i < 100; i++ {
		v1, v2 := rng1.Float64(), rng2.Float64()
		if v1 != v2 {
			t.Fatalf("draw %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPatientRNG_DifferentIDsDiffer(t *testing.T) {
	// BDD: Neighbouring patients do not share a stream
	rngA := NewPatientRNG(1999)
	rngB := NewPatientRNG(2000)

	same := 0
	for i := 0; i < 10; i++ {
		if rngA.Float64() == rngB.Float64() {
			same++
		}
	}
	if same == 10 {
		t.Error("patients 1999 and 2000 produced identical streams")
	}
}

func TestPatientRNG_Isolation(t *testing.T) {
	// BDD: Drawing from one patient's stream doesn't affect another's
	a := NewPatientRNG(7)
	b := NewPatientRNG(8)
	for i := 0; i < 50; i++ {
		a.Float64()
	}
	fresh := NewPatientRNG(8)
	if got, want := b.Float64(), fresh.Float64(); got != want {
		t.Errorf("patient 8 first draw = %v, want %v (isolation broken)", got, want)
	}
}

func TestPatientRNG_DrawsInUnitInterval(t *testing.T) {
	for _, id := range []PatientID{0, 1, -1, math.MaxInt64, math.MinInt64} {
		rng := NewPatientRNG(id)
		if rng.ID() != id {
			t.Errorf("ID() = %d, want %d", rng.ID(), id)
		}
		for i := 0; i < 1000; i++ {
			v := rng.Float64()
			if v < 0 || v >= 1 {
				t.Fatalf("id %d: Float64() returned %v, want [0, 1)", id, v)
			}
		}
	}
}

// === Benchmark ===

func BenchmarkPatientRNG_Float64(b *testing.B) {
	rng := NewPatientRNG(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.Float64()
	}
}
