package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/logger"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/stats"
	"github.com/abhisek/vocabz/internal/store"
)

// ErrNoCard is returned by card operations when no card is being shown.
var ErrNoCard = errors.New("no card in review")

// Options configures a Session.
type Options struct {
	Service  *stats.Service
	Settings store.SettingsRepo
	Deck     *deck.Deck
	Mode     string
	Filter   deck.Filter
	// Jitter adds a random tie-breaker to card selection. Rand overrides
	// the source when set.
	Jitter bool
	Rand   spacedrep.Source
	Logger *logger.Logger
}

// Session is one review sitting over a deck in a single mode. It owns the
// in-memory history snapshot the scheduler reads and keeps it in step
// with what it writes through the stats service.
type Session struct {
	ID     string
	Deck   *deck.Deck
	Mode   deck.Mode
	Filter deck.Filter

	Phase   Phase
	Current *deck.Card
	ShownAt time.Time
	Summary Summary

	svc      *stats.Service
	settings store.SettingsRepo
	rand     spacedrep.Source
	log      *logger.Logger

	history spacedrep.History
	flags   map[string]store.Flags
	cards   []deck.Card
}

// New creates a session. Call Load before use.
func New(opts Options) *Session {
	src := opts.Rand
	if src == nil {
		if opts.Jitter {
			src = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		} else {
			src = spacedrep.ZeroSource{}
		}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Session{
		ID:       uuid.New().String(),
		Deck:     opts.Deck,
		Mode:     deck.ParseMode(opts.Mode),
		Filter:   opts.Filter,
		Phase:    PhaseLoading,
		svc:      opts.Service,
		settings: opts.Settings,
		rand:     src,
		history:  spacedrep.History{},
		flags:    map[string]store.Flags{},
	}
	s.log = log.With("session", s.ID, "deck", s.Deck.ID)
	s.cards = s.Filter.Apply(s.Deck.Cards)
	return s
}

// Load syncs stored records with the deck, restores the saved filter when
// none was given, and reads the history snapshot.
func (s *Session) Load(ctx context.Context) error {
	modes := make([]string, 0, len(deck.Modes()))
	for _, m := range deck.Modes() {
		modes = append(modes, m.ID)
	}
	if _, err := s.svc.Sync(ctx, s.Deck.ID, s.Deck.CardIDs(), modes); err != nil {
		return err
	}

	if s.Filter.IsZero() && s.settings != nil {
		var f deck.Filter
		ok, err := s.settings.Get(ctx, store.FilterSettingKey(s.Deck.ID), &f)
		if err != nil {
			s.log.Warn("load saved filter failed", "error", err)
		} else if ok {
			s.Filter = f
			s.cards = f.Apply(s.Deck.Cards)
		}
	}

	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.Summary.StartedAt = s.svc.Now()
	s.log.Info("session started", "mode", s.Mode.ID, "cards", len(s.cards), "filter", s.Filter.Describe())
	return nil
}

// Refresh reloads the history and flag snapshots from the store.
func (s *Session) Refresh(ctx context.Context) error {
	h, err := s.svc.History(ctx, s.Deck.ID)
	if err != nil {
		return err
	}
	f, err := s.svc.Flags(ctx, s.Deck.ID)
	if err != nil {
		return err
	}
	s.history = h
	s.flags = f
	return nil
}

// Now reads the session clock.
func (s *Session) Now() time.Time {
	return s.svc.Now()
}

// Cards returns the cards that pass the tag and HSK filters.
func (s *Session) Cards() []deck.Card {
	return s.cards
}

// Flags returns the toggles of one card.
func (s *Session) Flags(cardID string) store.Flags {
	return s.flags[cardID]
}

func (s *Session) flagLookup(cardID string) deck.Flags {
	f := s.flags[cardID]
	return deck.Flags{Starred: f.Starred, Ignored: f.Ignored}
}

// Request builds a scheduler request over the filtered cards at now.
func (s *Session) Request(now time.Time) spacedrep.Request[deck.Card] {
	return spacedrep.Request[deck.Card]{
		Items:   s.cards,
		Lookup:  s.history.Lookup,
		Mode:    s.Mode.ID,
		Now:     now,
		Include: s.Filter.Predicate(s.flagLookup),
		Rand:    s.rand,
	}
}

// Next picks the next card to show. It returns false and moves to
// PhaseIdle when nothing is due.
func (s *Session) Next() (deck.Card, bool) {
	now := s.svc.Now()
	c, ok := spacedrep.SelectNext(s.Request(now))
	if !ok {
		s.Current = nil
		s.Phase = PhaseIdle
		return deck.Card{}, false
	}
	s.Current = &c
	s.ShownAt = now
	s.Phase = PhasePrompt
	return c, true
}

// Reveal flips the current card.
func (s *Session) Reveal() {
	if s.Current != nil && s.Phase == PhasePrompt {
		s.Phase = PhaseRevealed
	}
}

// CheckTyped grades a typed pinyin answer against the current card.
func (s *Session) CheckTyped(answer string) bool {
	if s.Current == nil {
		return false
	}
	return deck.MatchPinyin(answer, s.Current.Pinyin)
}

// Answer records a grade for the current card and updates the snapshot.
func (s *Session) Answer(ctx context.Context, correct bool) (spacedrep.PerformanceRecord, error) {
	if s.Current == nil {
		return spacedrep.PerformanceRecord{}, ErrNoCard
	}
	c := *s.Current
	rec, err := s.svc.Record(ctx, stats.Answer{
		SessionID:    s.ID,
		DeckID:       s.Deck.ID,
		ItemID:       c.ID,
		Mode:         s.Mode.ID,
		Correct:      correct,
		ResponseTime: s.svc.Now().Sub(s.ShownAt),
	})
	if err != nil {
		return spacedrep.PerformanceRecord{}, err
	}

	s.history[spacedrep.Key{ItemID: c.ID, Mode: s.Mode.ID}] = rec
	s.Summary.Answered++
	if correct {
		s.Summary.Correct++
	} else if !slices.Contains(s.Summary.Missed, c.ID) {
		s.Summary.Missed = append(s.Summary.Missed, c.ID)
	}
	s.Current = nil
	return rec, nil
}

// ToggleFlag flips a toggle on the current card.
func (s *Session) ToggleFlag(ctx context.Context, kind store.FlagKind) (store.Flags, error) {
	if s.Current == nil {
		return store.Flags{}, ErrNoCard
	}
	f, err := s.svc.ToggleFlag(ctx, s.Deck.ID, s.Current.ID, kind)
	if err != nil {
		return store.Flags{}, err
	}
	s.flags[s.Current.ID] = f
	return f, nil
}

// SetFilter replaces the filter and saves it for the deck.
func (s *Session) SetFilter(ctx context.Context, f deck.Filter) error {
	s.Filter = f
	s.cards = f.Apply(s.Deck.Cards)
	if s.settings == nil {
		return nil
	}
	if err := s.settings.Set(ctx, store.FilterSettingKey(s.Deck.ID), f); err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	return nil
}

// SetMode switches the review mode and remembers it.
func (s *Session) SetMode(ctx context.Context, id string) error {
	s.Mode = deck.ParseMode(id)
	s.Current = nil
	if s.settings == nil {
		return nil
	}
	if err := s.settings.Set(ctx, store.SettingMode, s.Mode.ID); err != nil {
		return fmt.Errorf("save mode: %w", err)
	}
	return nil
}

// DueCount counts the cards that would be offered now.
func (s *Session) DueCount() int {
	return spacedrep.CountDue(s.Request(s.svc.Now()))
}

// DueCounts buckets the filtered cards by time to due.
func (s *Session) DueCounts() spacedrep.DueCounts {
	return spacedrep.BucketByTimeToDue(s.Request(s.svc.Now()))
}

// NextReview summarises the next upcoming batch of reviews.
func (s *Session) NextReview() (*spacedrep.NextReview, bool) {
	return spacedrep.NextReviewSummary(s.Request(s.svc.Now()))
}

// Metrics computes progress metrics over the filtered cards.
func (s *Session) Metrics() stats.Metrics {
	return stats.Compute(s.cards, s.history.Lookup, s.Mode.ID, s.svc.Now())
}

// Today counts answers given in this deck since local midnight.
func (s *Session) Today(ctx context.Context) (total, correct int, err error) {
	return s.svc.Today(ctx, s.Deck.ID)
}

// Record returns the current snapshot record of a card in this mode.
func (s *Session) Record(cardID string) (spacedrep.PerformanceRecord, bool) {
	return s.history.Lookup(cardID, s.Mode.ID)
}
