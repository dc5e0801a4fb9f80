package mastery

// State is a concept's position in the mastery lifecycle.
type State string

const (
	StateNew      State = "new"
	StateLearning State = "learning"
	StateMastered State = "mastered"
)

// ResolveState classifies a concept from its mastery and how many of its
// questions were answered. A concept stays new until its first answer and
// counts as mastered once its mastery reaches threshold.
func ResolveState(m float64, attempted int, threshold float64) State {
	switch {
	case attempted == 0:
		return StateNew
	case m >= threshold:
		return StateMastered
	default:
		return StateLearning
	}
}
