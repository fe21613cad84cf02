package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/vocabz/internal/deck"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VOCABZ"

// ErrNoDeck is returned when no deck is selected and none is configured.
var ErrNoDeck = errors.New("no deck configured: pass --deck or add decks to config.yaml")

// Config is the resolved application configuration.
type Config struct {
	DB    string        `mapstructure:"db"`
	Deck  string        `mapstructure:"deck"`
	Mode  string        `mapstructure:"mode"`
	Log   LogConfig     `mapstructure:"log"`
	Decks []deck.Source `mapstructure:"decks"`

	// Jitter adds a small random tie-breaker when picking the next card.
	Jitter bool `mapstructure:"jitter"`

	// ModeExplicit is set when the mode came from a flag, the environment
	// or config.yaml rather than the default.
	ModeExplicit bool `mapstructure:"-"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	// SQL logs every statement at debug level.
	SQL bool `mapstructure:"sql"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:   deck.DefaultMode,
		Jitter: true,
		Log: LogConfig{
			Mode:  "development",
			Level: "info",
		},
	}
}

// flagKeys maps config keys to the cobra flags that override them.
var flagKeys = map[string]string{
	"db":        "db",
	"deck":      "deck",
	"mode":      "mode",
	"log.level": "log-level",
	"log.file":  "log-file",
}

// Load resolves configuration from, lowest priority first: defaults, an
// optional config.yaml, a .env file, VOCABZ_* environment variables and
// the given flags. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("mode", def.Mode)
	v.SetDefault("jitter", def.Jitter)
	v.SetDefault("log.mode", def.Log.Mode)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.sql", def.Log.SQL)
	v.SetDefault("db", "")
	v.SetDefault("deck", "")
	v.SetDefault("log.file", "")

	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Mode = deck.ParseMode(cfg.Mode).ID
	cfg.ModeExplicit = v.InConfig("mode") || os.Getenv(EnvPrefix+"_MODE") != ""
	if flags != nil {
		if f := flags.Lookup(flagKeys["mode"]); f != nil && f.Changed {
			cfg.ModeExplicit = true
		}
	}
	return &cfg, nil
}

// Dir returns the configuration directory:
// $XDG_CONFIG_HOME/vocabz or ~/.config/vocabz.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "vocabz"), nil
}

// DeckSource resolves the selected deck. Deck may name a configured deck
// id or point straight at a JSON file or URL. With no selection the first
// enabled configured deck wins.
func (c *Config) DeckSource() (deck.Source, error) {
	if c.Deck == "" {
		for _, s := range c.Decks {
			if s.IsEnabled() {
				return s, nil
			}
		}
		return deck.Source{}, ErrNoDeck
	}

	if s, err := deck.Resolve(c.Decks, c.Deck); err == nil {
		return s, nil
	}
	if looksLikeLocation(c.Deck) {
		base := filepath.Base(c.Deck)
		return deck.Source{
			ID:       strings.TrimSuffix(base, filepath.Ext(base)),
			Location: c.Deck,
		}, nil
	}
	return deck.Source{}, fmt.Errorf("%w: %q", deck.ErrUnknownDeck, c.Deck)
}

func looksLikeLocation(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasSuffix(strings.ToLower(s), ".json") ||
		strings.ContainsRune(s, filepath.Separator)
}
