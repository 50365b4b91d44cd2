package agent

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks an agent server for its plans.
// baseURL is the server root, e.g. http://localhost:8080.
func NewRemoteAgent(baseURL string, timeout time.Duration) Agent {
	return &remoteAgent{url: baseURL + "/findmove", client: &http.Client{Timeout: timeout}}
}

// FindPlan falls back to the first legal action when the server cannot be
// reached or answers with an error.
func (a *remoteAgent) FindPlan(ms *game.MatchState) (searcher.Plan, metrics.SearchMetric) {
	resp, err := a.request(ms)
	if err != nil {
		log.Warn().Err(err).Str("match", ms.ID).Msg("remote agent failed => forcing first legal action")
		fallback := ms.LegalActions()
		if len(fallback) == 0 {
			return searcher.Plan{game.Pass()}, metrics.SearchMetric{}
		}
		return searcher.Plan{fallback[0]}, metrics.SearchMetric{}
	}
	return resp.Plan, resp.Metrics
}

func (a *remoteAgent) request(ms *game.MatchState) (*FindPlanResponse, error) {
	body, err := sonic.Marshal(FindPlanRequest{State: ms})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}
	var decoded FindPlanResponse
	if err := sonic.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if len(decoded.Plan) == 0 {
		return nil, fmt.Errorf("agent returned an empty plan")
	}
	return &decoded, nil
}
