package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gambit/config"
	"gambit/experiments"
	"gambit/gamemaster"
	"gambit/player"
	"gambit/searcher"
	"gambit/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (built-in defaults when empty)")
	mode := flag.String("mode", "play", "play | duel | throughput | serve")
	games := flag.Int("games", 0, "Number of duel games (overrides the config)")
	samples := flag.Int("samples", 500, "Number of decisions timed in throughput mode")
	addr := flag.String("addr", "", "Agent server listen address (overrides the config)")
	seed := flag.Uint64("seed", 0, "Duel seed (overrides the config)")
	remote := flag.String("remote", "", "Agent server URL to play the bot seat in play mode")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	if *games > 0 {
		cfg.Duel.Games = *games
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *seed != 0 {
		cfg.Duel.Seed = *seed
	}

	switch *mode {
	case "play":
		bot := agent.NewEvaluationAgent(searcher.NewGreedy())
		if *remote != "" {
			bot = agent.NewRemoteAgent(*remote, 5*time.Second)
		}
		engine := gamemaster.NewLocalEngine(cfg, bot)
		err = player.NewConsoleController(engine, os.Stdin, os.Stdout, true, cfg.Bot.Delay).Run()
	case "duel":
		var summary experiments.Summary
		summary, err = experiments.RunDuel(cfg, os.Stderr)
		if err == nil {
			fmt.Println(summary)
		}
	case "throughput":
		var result experiments.Throughput
		result, err = experiments.RunThroughputExperiment(cfg, *samples, os.Stderr)
		if err == nil {
			fmt.Printf("%d decisions, %v per decision\n", result.Samples, result.PerDecision())
		}
	case "serve":
		err = agent.StartAgentServer(cfg.Server.Addr, cfg.Server.Pprof)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
