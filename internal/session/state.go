package session

import "time"

// Phase is where the learner is within the current card.
type Phase int

const (
	PhaseLoading  Phase = iota // Loading deck history
	PhasePrompt                // Showing the front of the card
	PhaseRevealed              // Back shown, waiting for a grade
	PhaseIdle                  // Nothing due under the current filter
)

// Summary tracks answers given during one session.
type Summary struct {
	Answered  int
	Correct   int
	StartedAt time.Time
	// Missed lists card ids answered wrong at least once, in order.
	Missed []string
}

// Accuracy returns the session accuracy, or 0 before the first answer.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Incorrect returns the number of wrong answers.
func (s Summary) Incorrect() int {
	return s.Answered - s.Correct
}
