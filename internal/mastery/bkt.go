package mastery

import (
	"fmt"
	"math"
)

// InitialMastery is the starting mastery of every concept.
const InitialMastery = 0.2

// Params holds the four Bayesian Knowledge Tracing probabilities.
// They are fixed for the lifetime of a session.
type Params struct {
	PInit  float64 // prior mastery of an unseen concept
	PLearn float64 // chance of learning the concept on each attempt
	PGuess float64 // chance of a correct answer while unmastered
	PSlip  float64 // chance of a wrong answer while mastered
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		PInit:  InitialMastery,
		PLearn: 0.2,
		PGuess: 0.2,
		PSlip:  0.1,
	}
}

// Validate checks that every parameter is a probability.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"p_init", p.PInit},
		{"p_learn", p.PLearn},
		{"p_guess", p.PGuess},
		{"p_slip", p.PSlip},
	} {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s = %v: must be within [0, 1]", f.name, f.v)
		}
	}
	return nil
}

// Observe applies the Bayesian observation step: the posterior probability
// of mastery given one answer. When the evidence has zero probability the
// prior is returned unchanged.
func (p Params) Observe(prior float64, correct bool) float64 {
	var num, den float64
	if correct {
		num = prior * (1 - p.PSlip)
		den = num + (1-prior)*p.PGuess
	} else {
		num = prior * p.PSlip
		den = num + (1-prior)*(1-p.PGuess)
	}
	if den <= 0 {
		return prior
	}
	return num / den
}

// Update returns the posterior mastery after one answer: the observation
// step followed by the learning transition, clamped to [0, 1].
func (p Params) Update(prior float64, correct bool) float64 {
	posterior := p.Observe(prior, correct)
	return Clamp(posterior + (1-posterior)*p.PLearn)
}

// Update is Params.Update as a free function.
func Update(p Params, prior float64, correct bool) float64 {
	return p.Update(prior, correct)
}

// Clamp bounds v to [0, 1]. NaN maps to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
