package metrics

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gambit/game"

	"github.com/bytedance/sonic"
)

type GameRecord struct {
	ID     int `json:"id"`
	Agent1 int `json:"gold"`  // AgentConfig.ID
	Agent2 int `json:"black"` // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchRecord is one line of matches.jsonl: the record plus the final state.
type MatchRecord struct {
	GameRecord
	Final *game.MatchState `json:"final"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> for the experiment outputs.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "seed", "bonuses"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
			strconv.FormatBool(config.Bonuses),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "match_id", "starting_player", "winner", "win_reason", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.MatchID,
			record.StartingPlayer.String(),
			record.Winner.String(),
			record.WinReason.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "plan", "duration", "candidates", "simulations", "best_score", "hash"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Plan,
			record.Duration.String(),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Simulations),
			strconv.FormatFloat(record.BestScore, 'f', 2, 64),
			record.Hash.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteMatches stores one JSON document per line.
func (w *Writer) WriteMatches(records []MatchRecord) error {
	path := filepath.Join(w.baseDir, "matches.jsonl")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create matches file: %w", err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	for _, record := range records {
		line, err := sonic.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode match %d: %w", record.ID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Flush()
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
