package session

import (
	"math"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
)

// TargetDifficulty maps mastery in [0, 1] linearly onto the difficulty
// scale [1, 4]. Halves round to even, so 0.5 mastery targets difficulty 2.
func TargetDifficulty(m float64) int {
	t := int(math.RoundToEven(1 + 3*mastery.Clamp(m)))
	if t < questionbank.MinDifficulty {
		return questionbank.MinDifficulty
	}
	if t > questionbank.MaxDifficulty {
		return questionbank.MaxDifficulty
	}
	return t
}

// PickNext selects the next question, or nil when every question has been
// asked.
//
// Concepts are visited from lowest to highest mastery; equal masteries keep
// the map's concept order, which is the bank's order of first appearance.
// Within the first concept that still has unasked questions, the question
// whose difficulty is closest to TargetDifficulty wins, and among equally
// close questions the earliest in the bank wins.
func PickNext(bank *questionbank.Bank, m *mastery.Map, asked map[int]bool) *questionbank.Question {
	for _, entry := range m.Ascending() {
		target := TargetDifficulty(entry.Mastery)

		var best *questionbank.Question
		bestDist := 0
		for _, q := range bank.ByConcept(entry.Concept) {
			if asked[q.ID] {
				continue
			}
			d := abs(q.Difficulty - target)
			if best == nil || d < bestDist {
				best = &q
				bestDist = d
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
