package metrics

import (
	"math"
	"sync/atomic"
	"time"

	"gambit/game"
)

// AgentConfig describes one side of a duel.
type AgentConfig struct {
	ID      int    `yaml:"id" json:"id"`
	Kind    string `yaml:"kind" json:"kind"` // greedy or random
	Seed    uint64 `yaml:"seed" json:"seed"`
	Bonuses bool   `yaml:"bonuses" json:"bonuses"`
}

type SearchMetric struct {
	Duration    time.Duration `json:"duration"`
	Candidates  int           `json:"candidates"`
	Simulations int           `json:"simulations"`
	BestScore   float64       `json:"bestScore"`
}

type MoveMetric struct {
	Step   int            `json:"step"`
	Player game.Player    `json:"player"`
	Plan   string         `json:"plan"`
	Hash   game.StateHash `json:"hash"`
	SearchMetric
}

type GameMetric struct {
	MatchID        string         `json:"matchId"`
	StartingPlayer game.Player    `json:"startingPlayer"`
	Winner         game.Player    `json:"winner"`
	WinReason      game.WinReason `json:"winReason"`
	StartTime      time.Time      `json:"startTime"`
	EndTime        time.Time      `json:"endTime"`
	Duration       time.Duration  `json:"duration"`
	TotalMoves     int            `json:"totalMoves"`
}

type Collector interface {
	Start()
	AddCandidate()
	AddSimulation()
	SetBestScore(score float64)
	Complete() SearchMetric
}

type collector struct {
	startTime   time.Time
	candidates  atomic.Int32
	simulations atomic.Int32
	bestScore   atomic.Uint64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.candidates.Store(0)
	m.simulations.Store(0)
	m.bestScore.Store(0)
}

func (m *collector) AddCandidate() {
	m.candidates.Add(1)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) SetBestScore(score float64) {
	m.bestScore.Store(math.Float64bits(score))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:    time.Since(m.startTime),
		Candidates:  int(m.candidates.Load()),
		Simulations: int(m.simulations.Load()),
		BestScore:   math.Float64frombits(m.bestScore.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                     {}
func (m *dummyCollector) AddCandidate()              {}
func (m *dummyCollector) AddSimulation()             {}
func (m *dummyCollector) SetBestScore(score float64) {}
func (m *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }
