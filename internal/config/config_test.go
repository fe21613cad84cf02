package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabz/internal/deck"
)

// isolate points every lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("VOCABZ_CONFIG", "")
	for _, k := range []string{"VOCABZ_DB", "VOCABZ_DECK", "VOCABZ_MODE", "VOCABZ_LOG_LEVEL", "VOCABZ_LOG_FILE", "VOCABZ_JITTER"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("deck", "", "")
	fs.String("mode", "", "")
	fs.String("log-level", "", "")
	fs.String("log-file", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, deck.DefaultMode, cfg.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Jitter)
	assert.Empty(t, cfg.Decks)
}

func TestLoadConfigFileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vocabz"), 0o755))
	yaml := `
mode: LM-production
jitter: false
log:
  level: warn
decks:
  - id: hsk1
    label: HSK 1
    location: /decks/hsk1.json
  - id: old
    location: /decks/old.json
    enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vocabz", "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, deck.ModeProduction, cfg.Mode)
	assert.True(t, cfg.ModeExplicit, "mode from config.yaml")
	assert.False(t, cfg.Jitter)
	assert.Equal(t, "warn", cfg.Log.Level)
	require.Len(t, cfg.Decks, 2)
	assert.True(t, cfg.Decks[0].IsEnabled())
	assert.False(t, cfg.Decks[1].IsEnabled())

	// Environment beats the file.
	t.Setenv("VOCABZ_LOG_LEVEL", "debug")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Flags beat the environment.
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--log-level", "error", "--mode", "LM-listening"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, deck.ModeListening, cfg.Mode)
}

func TestLoadModeExplicit(t *testing.T) {
	isolate(t)
	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.False(t, cfg.ModeExplicit, "default mode")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--mode", "LM-listening"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.True(t, cfg.ModeExplicit, "mode flag")

	t.Setenv("VOCABZ_MODE", "LM-production")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.ModeExplicit, "mode env")
}

func TestLoadUnknownModeFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv("VOCABZ_MODE", "LM-bogus")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, deck.DefaultMode, cfg.Mode)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("VOCABZ_CONFIG", filepath.Join(dir, "nope.yaml"))
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestDeckSource(t *testing.T) {
	off := false
	cfg := &Config{Decks: []deck.Source{
		{ID: "old", Location: "old.json", Enabled: &off},
		{ID: "hsk1", Location: "/decks/hsk1.json"},
	}}

	s, err := cfg.DeckSource()
	require.NoError(t, err)
	assert.Equal(t, "hsk1", s.ID, "first enabled deck")

	cfg.Deck = "hsk1"
	s, err = cfg.DeckSource()
	require.NoError(t, err)
	assert.Equal(t, "/decks/hsk1.json", s.Location)

	cfg.Deck = "./my-words.json"
	s, err = cfg.DeckSource()
	require.NoError(t, err)
	assert.Equal(t, "my-words", s.ID)

	cfg.Deck = "https://example.com/decks/travel.json"
	s, err = cfg.DeckSource()
	require.NoError(t, err)
	assert.Equal(t, "travel", s.ID)

	cfg.Deck = "missing"
	_, err = cfg.DeckSource()
	assert.ErrorIs(t, err, deck.ErrUnknownDeck)

	_, err = (&Config{}).DeckSource()
	assert.ErrorIs(t, err, ErrNoDeck)
}
