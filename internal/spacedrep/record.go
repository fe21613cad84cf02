package spacedrep

import "time"

// PerformanceRecord is the answer history of a single item in a single
// learning mode. A zero timestamp means the event never happened.
type PerformanceRecord struct {
	TotalCorrect   int `json:"total_correct"`
	TotalIncorrect int `json:"total_incorrect"`

	LastCorrectAt   time.Time `json:"last_correct_at"`
	LastIncorrectAt time.Time `json:"last_incorrect_at"`

	// At most one of the two streak counters is nonzero.
	CorrectStreakLen   int `json:"correct_streak_len"`
	IncorrectStreakLen int `json:"incorrect_streak_len"`

	CorrectStreakStartedAt   time.Time `json:"correct_streak_started_at"`
	IncorrectStreakStartedAt time.Time `json:"incorrect_streak_started_at"`
}

// NewRecord returns the record of an item that has never been answered.
func NewRecord() PerformanceRecord {
	return PerformanceRecord{}
}

// Total returns the number of answers recorded.
func (r PerformanceRecord) Total() int {
	return r.TotalCorrect + r.TotalIncorrect
}

// Accuracy returns the share of correct answers, or 0 with no answers.
func (r PerformanceRecord) Accuracy() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.TotalCorrect) / float64(total)
}

// IsNew reports whether the item has never been reviewed, judged by its
// timestamps.
func (r PerformanceRecord) IsNew() bool {
	return r.LastCorrectAt.IsZero() && r.LastIncorrectAt.IsZero()
}

// Unanswered reports whether no answer has been counted.
func (r PerformanceRecord) Unanswered() bool {
	return r.Total() == 0
}

// LastReview returns the most recent answer time, or the zero time.
func (r PerformanceRecord) LastReview() time.Time {
	if r.LastIncorrectAt.After(r.LastCorrectAt) {
		return r.LastIncorrectAt
	}
	return r.LastCorrectAt
}

// lastAnswerWrong reports whether both outcomes have happened and the most
// recent one was a miss.
func (r PerformanceRecord) lastAnswerWrong() bool {
	if r.LastCorrectAt.IsZero() || r.LastIncorrectAt.IsZero() {
		return false
	}
	return r.LastIncorrectAt.After(r.LastCorrectAt)
}

// Item is anything the scheduler can rank. Content lives with the caller.
type Item interface {
	ItemID() string
}

// Lookup returns the record for an item in a mode. A miss is treated as a
// brand-new record.
type Lookup func(itemID, mode string) (PerformanceRecord, bool)

// Key identifies a record.
type Key struct {
	ItemID string
	Mode   string
}

// History is an in-memory snapshot of records.
type History map[Key]PerformanceRecord

// Lookup implements the Lookup signature over the snapshot.
func (h History) Lookup(itemID, mode string) (PerformanceRecord, bool) {
	rec, ok := h[Key{ItemID: itemID, Mode: mode}]
	return rec, ok
}

// recordFor resolves the record for an item, falling back to a new one.
func recordFor(lookup Lookup, itemID, mode string) PerformanceRecord {
	if lookup == nil {
		return NewRecord()
	}
	if rec, ok := lookup(itemID, mode); ok {
		return rec
	}
	return NewRecord()
}
