// Package sessiontest builds sessions over in-memory stores for tests.
package sessiontest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/stats"
	"github.com/abhisek/vocabz/internal/store"
)

// T0 is the initial clock reading.
var T0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Clock is a settable clock.
type Clock struct{ T time.Time }

// Now returns the current reading.
func (c *Clock) Now() time.Time { return c.T }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Deck returns a three-card deck: two HSK 1 greetings and an HSK 2 animal.
func Deck() *deck.Deck {
	return &deck.Deck{
		ID:   "hsk1",
		Name: "HSK 1",
		Cards: []deck.Card{
			{ID: "c1", Hanzi: "你 好", Pinyin: "nǐ hǎo", Def: "hello", Tones: "33", DefWords: []string{"hello"}, Tags: []string{"greeting"}, HSK: "1"},
			{ID: "c2", Hanzi: "谢 谢", Pinyin: "xiè xie", Def: "thanks", Tones: "45", DefWords: []string{"thanks"}, Tags: []string{"greeting"}, HSK: "1"},
			{ID: "c3", Hanzi: "猫", Pinyin: "māo", Def: "cat", Tones: "1", Tags: []string{"animal"}, HSK: "2"},
		},
	}
}

// Env is a loaded session and the store behind it.
type Env struct {
	Session *session.Session
	Store   *store.Store
	Clock   *Clock
}

// New opens a private in-memory store and loads a session in mode over
// Deck with a deterministic scheduler.
func New(t *testing.T, mode string) *Env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:sessiontest_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clock := &Clock{T: T0}
	sess := session.New(session.Options{
		Service:  stats.NewService(st, stats.WithClock(clock.Now)),
		Settings: st.SettingsRepo(),
		Deck:     Deck(),
		Mode:     mode,
		Rand:     spacedrep.ZeroSource{},
	})
	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("load session: %v", err)
	}
	return &Env{Session: sess, Store: st, Clock: clock}
}
