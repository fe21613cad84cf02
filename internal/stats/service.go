package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/vocabz/internal/logger"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/store"
)

// Answer is one graded response to record.
type Answer struct {
	SessionID    string
	DeckID       string
	ItemID       string
	Mode         string
	Correct      bool
	ResponseTime time.Duration
}

// SyncResult reports what Sync changed.
type SyncResult struct {
	Created       int
	PrunedRecords int
	PrunedFlags   int
}

// Service applies answers to stored performance records and hands the
// scheduler fresh snapshots.
type Service struct {
	records store.RecordRepo
	events  store.EventRepo
	flags   store.FlagRepo
	now     func() time.Time
	log     *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService wires a Service to the store.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		records: st.RecordRepo(),
		events:  st.EventRepo(),
		flags:   st.FlagRepo(),
		now:     time.Now,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

// Sync makes the stored records match the deck: every (item, mode) pair
// gets a record and records of items no longer in the deck are dropped.
func (s *Service) Sync(ctx context.Context, deckID string, itemIDs, modes []string) (SyncResult, error) {
	var res SyncResult
	var err error

	res.PrunedRecords, err = s.records.PruneExcept(ctx, deckID, itemIDs)
	if err != nil {
		return res, fmt.Errorf("sync %s: %w", deckID, err)
	}
	res.PrunedFlags, err = s.flags.PruneExcept(ctx, deckID, itemIDs)
	if err != nil {
		return res, fmt.Errorf("sync %s: %w", deckID, err)
	}
	res.Created, err = s.records.EnsureMany(ctx, deckID, itemIDs, modes)
	if err != nil {
		return res, fmt.Errorf("sync %s: %w", deckID, err)
	}

	if res.PrunedRecords > 0 || res.PrunedFlags > 0 {
		s.log.Info("pruned orphaned stats",
			"deck", deckID,
			"records", res.PrunedRecords,
			"flags", res.PrunedFlags,
		)
	}
	s.log.Debug("stats sync complete", "deck", deckID, "items", len(itemIDs), "created", res.Created)
	return res, nil
}

// Record applies a to its record and appends an answer event. The record
// update is a single transaction; the event is written after it commits.
func (s *Service) Record(ctx context.Context, a Answer) (spacedrep.PerformanceRecord, error) {
	now := s.now()
	key := store.RecordKey{DeckID: a.DeckID, ItemID: a.ItemID, Mode: a.Mode}

	rec, err := s.records.Update(ctx, key, func(cur spacedrep.PerformanceRecord) spacedrep.PerformanceRecord {
		return ApplyAnswer(cur, a.Correct, now)
	})
	if err != nil {
		return spacedrep.PerformanceRecord{}, fmt.Errorf("record answer: %w", err)
	}

	_, err = s.events.AppendAnswer(ctx, store.AnswerEvent{
		SessionID:    a.SessionID,
		DeckID:       a.DeckID,
		ItemID:       a.ItemID,
		Mode:         a.Mode,
		Correct:      a.Correct,
		ResponseTime: a.ResponseTime,
		AnsweredAt:   now,
	})
	if err != nil {
		// The record is already committed; losing the event only
		// affects history views.
		s.log.Warn("append answer event failed", "deck", a.DeckID, "item", a.ItemID, "error", err)
	}

	s.log.Debug("answer recorded",
		"deck", a.DeckID,
		"item", a.ItemID,
		"mode", a.Mode,
		"correct", a.Correct,
		"streak", rec.CorrectStreakLen,
	)
	return rec, nil
}

// History returns a snapshot of every record in the deck.
func (s *Service) History(ctx context.Context, deckID string) (spacedrep.History, error) {
	h, err := s.records.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", deckID, err)
	}
	return h, nil
}

// Flags returns the deck's starred and ignored toggles.
func (s *Service) Flags(ctx context.Context, deckID string) (map[string]store.Flags, error) {
	f, err := s.flags.List(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("load flags %s: %w", deckID, err)
	}
	return f, nil
}

// ToggleFlag flips one toggle on an item.
func (s *Service) ToggleFlag(ctx context.Context, deckID, itemID string, kind store.FlagKind) (store.Flags, error) {
	f, err := s.flags.Toggle(ctx, deckID, itemID, kind)
	if err != nil {
		return store.Flags{}, fmt.Errorf("toggle flag: %w", err)
	}
	return f, nil
}

// Today counts answers given since local midnight.
func (s *Service) Today(ctx context.Context, deckID string) (total, correct int, err error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.events.CountAnswersSince(ctx, deckID, midnight)
}

// Reset deletes every record and event of a deck.
func (s *Service) Reset(ctx context.Context, deckID string) error {
	n, err := s.records.DeleteDeck(ctx, deckID)
	if err != nil {
		return fmt.Errorf("reset %s: %w", deckID, err)
	}
	m, err := s.events.DeleteDeck(ctx, deckID)
	if err != nil {
		return fmt.Errorf("reset %s: %w", deckID, err)
	}
	s.log.Info("deck progress reset", "deck", deckID, "records", n, "events", m)
	return nil
}
