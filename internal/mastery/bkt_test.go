package mastery

import (
	"math"
	"testing"
)

const eps = 1e-3

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestUpdate_CorrectAnswer(t *testing.T) {
	p := DefaultParams()

	obs := p.Observe(0.2, true)
	if !approx(obs, 0.18/0.34) {
		t.Errorf("Observe(0.2, true) = %.4f, want %.4f", obs, 0.18/0.34)
	}

	got := p.Update(0.2, true)
	if !approx(got, 0.6235) {
		t.Errorf("Update(0.2, true) = %.4f, want ~0.624", got)
	}
}

func TestUpdate_IncorrectAnswer(t *testing.T) {
	p := DefaultParams()
	prior := p.Update(0.2, true)

	obs := p.Observe(prior, false)
	wantObs := prior * 0.1 / (prior*0.1 + (1-prior)*0.8)
	if !approx(obs, wantObs) {
		t.Errorf("Observe(%.4f, false) = %.4f, want %.4f", prior, obs, wantObs)
	}
	if !approx(obs, 0.1718) {
		t.Errorf("Observe = %.4f, want ~0.1718", obs)
	}

	got := p.Update(prior, false)
	if !approx(got, 0.3374) {
		t.Errorf("Update(%.4f, false) = %.4f, want ~0.3374", prior, got)
	}
}

func TestUpdate_StaysInUnitInterval(t *testing.T) {
	paramSets := []Params{
		DefaultParams(),
		{PLearn: 0, PGuess: 0, PSlip: 0},
		{PLearn: 1, PGuess: 1, PSlip: 1},
		{PLearn: 0.5, PGuess: 0, PSlip: 1},
		{PLearn: 0.05, PGuess: 1, PSlip: 0},
	}
	for _, p := range paramSets {
		for i := 0; i <= 100; i++ {
			prior := float64(i) / 100
			for _, correct := range []bool{true, false} {
				got := p.Update(prior, correct)
				if got < 0 || got > 1 || math.IsNaN(got) {
					t.Fatalf("Update(%v, %.2f, %v) = %v, outside [0,1]", p, prior, correct, got)
				}
			}
		}
	}
}

func TestUpdate_LearningTransitionNeverLowers(t *testing.T) {
	p := DefaultParams()
	for i := 0; i <= 100; i++ {
		prior := float64(i) / 100
		for _, correct := range []bool{true, false} {
			obs := p.Observe(prior, correct)
			got := p.Update(prior, correct)
			if got < obs {
				t.Errorf("Update(%.2f, %v) = %.4f < observation %.4f", prior, correct, got, obs)
			}
		}
	}
}

func TestObserve_DivisionGuard(t *testing.T) {
	// Correct answer, prior 0, no guessing: the evidence is impossible.
	p := Params{PLearn: 0.2, PGuess: 0, PSlip: 0.1}
	if got := p.Observe(0, true); got != 0 {
		t.Errorf("Observe(0, true) = %v, want prior 0", got)
	}
	if got := p.Update(0, true); !approx(got, 0.2) {
		t.Errorf("Update(0, true) = %v, want 0.2", got)
	}

	// Wrong answer, prior 1, no slipping.
	p = Params{PLearn: 0.2, PGuess: 0.2, PSlip: 0}
	if got := p.Observe(1, false); got != 1 {
		t.Errorf("Observe(1, false) = %v, want prior 1", got)
	}
}

func TestUpdate_Deterministic(t *testing.T) {
	p := DefaultParams()
	a := Update(p, 0.37, true)
	b := Update(p, 0.37, true)
	if a != b {
		t.Errorf("Update not deterministic: %v != %v", a, b)
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
	bad := []Params{
		{PInit: -0.1},
		{PLearn: 1.5},
		{PGuess: math.NaN()},
		{PSlip: 2},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", p)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{1.0000001, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
