package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string                `yaml:"log_level"`
	Catalog  []game.CardDefinition `yaml:"catalog"`
	Players  Players               `yaml:"players"`
	Bot      Bot                   `yaml:"bot"`
	Duel     Duel                  `yaml:"duel"`
	Server   Server                `yaml:"server"`
}

type Seat struct {
	Name string   `yaml:"name"`
	Deck []string `yaml:"deck"` // card ids, "" for an empty slot
}

type Players struct {
	Gold  Seat `yaml:"gold"`
	Black Seat `yaml:"black"`
}

// Bot names the seat played by the computer. NoPlayer means two humans.
type Bot struct {
	Seat  game.Player   `yaml:"seat"`
	Delay time.Duration `yaml:"delay"`
}

type Duel struct {
	Games     int                 `yaml:"games"`
	MaxSteps  int                 `yaml:"max_steps"`
	Shuffle   bool                `yaml:"shuffle"` // reorder deck slots every game
	Seed      uint64              `yaml:"seed"`
	Gold      metrics.AgentConfig `yaml:"gold"`
	Black     metrics.AgentConfig `yaml:"black"`
	OutputDir string              `yaml:"output_dir"`
}

type Server struct {
	Addr  string `yaml:"addr"`
	Pprof bool   `yaml:"pprof"`
}

var defaultDeck = []string{"knight", "assassin", "archer", "mage", "guard", "thief", "healer", "knight"}

// Default returns a runnable configuration: one card per class and the same
// balanced deck on both sides, Black played by the bot.
func Default() *Config {
	var catalog []game.CardDefinition
	for _, c := range game.Classes() {
		catalog = append(catalog, game.CardDefinition{
			ID:    strings.ToLower(c.String()),
			Class: c,
			Name:  c.String(),
		})
	}
	return &Config{
		LogLevel: "info",
		Catalog:  catalog,
		Players: Players{
			Gold:  Seat{Name: "Player 1", Deck: append([]string(nil), defaultDeck...)},
			Black: Seat{Name: "Player 2", Deck: append([]string(nil), defaultDeck...)},
		},
		Bot: Bot{Seat: game.Black, Delay: meta.BOT_DELAY},
		Duel: Duel{
			Games:     10,
			MaxSteps:  meta.MAX_TURNS,
			Gold:      metrics.AgentConfig{ID: 1, Kind: "greedy", Bonuses: true},
			Black:     metrics.AgentConfig{ID: 2, Kind: "random", Seed: 1},
			OutputDir: "experiments",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", game.ErrInvalidConfig, err)
	}
	catalog, err := game.NewCatalog(c.Catalog)
	if err != nil {
		return err
	}
	for _, seat := range []struct {
		player game.Player
		deck   []string
	}{{game.Gold, c.Players.Gold.Deck}, {game.Black, c.Players.Black.Deck}} {
		if len(seat.deck) != meta.DECK_SIZE {
			return fmt.Errorf("%w: %s deck has %d slots, want %d", game.ErrInvalidConfig, seat.player, len(seat.deck), meta.DECK_SIZE)
		}
		for i, id := range seat.deck {
			if id == "" {
				continue
			}
			if _, err := catalog.Lookup(id); err != nil {
				return fmt.Errorf("%s deck slot %d: %w", seat.player, i, err)
			}
		}
	}
	if c.Duel.Games < 0 {
		return fmt.Errorf("%w: duel.games must not be negative", game.ErrInvalidConfig)
	}
	if c.Duel.MaxSteps <= 0 {
		return fmt.Errorf("%w: duel.max_steps must be positive", game.ErrInvalidConfig)
	}
	for _, ac := range []metrics.AgentConfig{c.Duel.Gold, c.Duel.Black} {
		if ac.Kind != "greedy" && ac.Kind != "random" {
			return fmt.Errorf("%w: unknown agent kind %q", game.ErrInvalidConfig, ac.Kind)
		}
	}
	return nil
}

// Level is the parsed log level. Validate must have succeeded.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// NewMatch builds a fresh match from the configured catalog and decks.
func (c *Config) NewMatch() (*game.MatchState, error) {
	catalog, err := game.NewCatalog(c.Catalog)
	if err != nil {
		return nil, err
	}
	names := map[game.Player]string{game.Gold: c.Players.Gold.Name, game.Black: c.Players.Black.Name}
	return game.NewMatch(catalog, c.Players.Gold.Deck, c.Players.Black.Deck, names)
}
