package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/stats"
	"github.com/abhisek/vocabz/internal/store"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:   "hsk1",
		Name: "HSK 1",
		Cards: []deck.Card{
			{ID: "c1", Hanzi: "你 好", Pinyin: "nǐ hǎo", Def: "hello", Tones: "33", Tags: []string{"greeting"}, HSK: "1"},
			{ID: "c2", Hanzi: "谢 谢", Pinyin: "xiè xie", Def: "thanks", Tones: "45", Tags: []string{"greeting"}, HSK: "1"},
			{ID: "c3", Hanzi: "猫", Pinyin: "māo", Def: "cat", Tones: "1", Tags: []string{"animal"}, HSK: "2"},
		},
	}
}

func newTestSession(t *testing.T, f deck.Filter) (*Session, *store.Store, *fakeClock) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &fakeClock{t: t0}
	s := New(Options{
		Service:  stats.NewService(st, stats.WithClock(clock.Now)),
		Settings: st.SettingsRepo(),
		Deck:     testDeck(),
		Mode:     deck.ModeRecognition,
		Filter:   f,
		Rand:     spacedrep.ZeroSource{},
	})
	require.NoError(t, s.Load(context.Background()))
	return s, st, clock
}

func TestSession_LoadSyncsRecords(t *testing.T) {
	s, st, _ := newTestSession(t, deck.Filter{})
	h, err := st.RecordRepo().ListByDeck(context.Background(), "hsk1")
	require.NoError(t, err)
	assert.Len(t, h, 3*len(deck.Modes()))
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, 3, s.DueCount())
	assert.NotEmpty(t, s.ID)
}

func TestSession_AnswerUpdatesSnapshot(t *testing.T) {
	s, _, clock := newTestSession(t, deck.Filter{})
	ctx := context.Background()

	c, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, PhasePrompt, s.Phase)

	s.Reveal()
	assert.Equal(t, PhaseRevealed, s.Phase)

	clock.t = t0.Add(3 * time.Second)
	rec, err := s.Answer(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalCorrect)
	assert.Nil(t, s.Current)

	// The snapshot sees the answer without a reload.
	got, ok := s.Record("c1")
	require.True(t, ok)
	assert.Equal(t, 1, got.CorrectStreakLen)
	assert.Equal(t, 2, s.DueCount())
	assert.Equal(t, Summary{Answered: 1, Correct: 1, StartedAt: t0}, s.Summary)

	c, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, "c2", c.ID)
}

func TestSession_IdleWhenNothingDue(t *testing.T) {
	s, _, _ := newTestSession(t, deck.Filter{HSK: []string{"2"}})
	ctx := context.Background()

	_, ok := s.Next()
	require.True(t, ok)
	_, err := s.Answer(ctx, true)
	require.NoError(t, err)

	_, ok = s.Next()
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, s.Phase)

	next, ok := s.NextReview()
	require.True(t, ok)
	assert.Equal(t, 1, next.ClusterCount)
	assert.Equal(t, "4 hours", next.ETALabel)
}

func TestSession_AnswerWithoutCard(t *testing.T) {
	s, _, _ := newTestSession(t, deck.Filter{})
	_, err := s.Answer(context.Background(), true)
	assert.ErrorIs(t, err, ErrNoCard)
	_, err = s.ToggleFlag(context.Background(), store.FlagStarred)
	assert.ErrorIs(t, err, ErrNoCard)
}

func TestSession_IgnoreHidesCard(t *testing.T) {
	s, _, _ := newTestSession(t, deck.Filter{})
	ctx := context.Background()

	_, ok := s.Next()
	require.True(t, ok)
	f, err := s.ToggleFlag(ctx, store.FlagIgnored)
	require.NoError(t, err)
	assert.True(t, f.Ignored)
	assert.True(t, s.Flags("c1").Ignored)

	c, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "c2", c.ID)
	assert.Equal(t, 2, s.DueCount())
}

func TestSession_FilterPersists(t *testing.T) {
	s, st, _ := newTestSession(t, deck.Filter{})
	ctx := context.Background()

	require.NoError(t, s.SetFilter(ctx, deck.Filter{Tags: []string{"animal"}}))
	assert.Len(t, s.Cards(), 1)

	again := New(Options{
		Service:  stats.NewService(st),
		Settings: st.SettingsRepo(),
		Deck:     testDeck(),
		Rand:     spacedrep.ZeroSource{},
	})
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, []string{"animal"}, again.Filter.Tags)
	assert.Len(t, again.Cards(), 1)
}

func TestSession_SetModeIsolatesHistory(t *testing.T) {
	s, st, _ := newTestSession(t, deck.Filter{})
	ctx := context.Background()

	for range 3 {
		_, ok := s.Next()
		require.True(t, ok)
		_, err := s.Answer(ctx, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, s.DueCount())

	require.NoError(t, s.SetMode(ctx, deck.ModeProduction))
	assert.Equal(t, deck.ModeProduction, s.Mode.ID)
	assert.Equal(t, 3, s.DueCount())

	var saved string
	ok, err := st.SettingsRepo().Get(ctx, store.SettingMode, &saved)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, deck.ModeProduction, saved)
}

func TestSession_CheckTyped(t *testing.T) {
	s, _, _ := newTestSession(t, deck.Filter{})
	assert.False(t, s.CheckTyped("ni hao"), "no card yet")

	_, ok := s.Next()
	require.True(t, ok)
	assert.True(t, s.CheckTyped("ni hao"))
	assert.True(t, s.CheckTyped("NǏHǍO"))
	assert.False(t, s.CheckTyped("xie xie"))
}

func TestSession_Metrics(t *testing.T) {
	s, _, _ := newTestSession(t, deck.Filter{})
	ctx := context.Background()
	_, ok := s.Next()
	require.True(t, ok)
	_, err := s.Answer(ctx, false)
	require.NoError(t, err)

	m := s.Metrics()
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 1, m.Reviewed)
	assert.Equal(t, 1, m.TotalIncorrect)

	total, correct, err := s.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 0, correct)
}

func TestSummary_Accuracy(t *testing.T) {
	assert.Zero(t, Summary{}.Accuracy())
	s := Summary{Answered: 4, Correct: 3}
	assert.InDelta(t, 0.75, s.Accuracy(), 1e-9)
	assert.Equal(t, 1, s.Incorrect())
}
