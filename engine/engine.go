package engine

import (
	"gambit/experiments/metrics"
	"gambit/game"
)

type Engine interface {
	// Run plays a match till there's a winner or a max number of turns is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
