package agent

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gambit/game"
	"gambit/searcher"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewAgentServer(NewEvaluationAgent(searcher.NewGreedy()), nil, false)
}

func post(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch body := body.(type) {
	case string:
		payload = []byte(body)
	default:
		var err error
		payload, err = sonic.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAgentServer(t *testing.T) {
	router := newTestServer()

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", rec.Body.String())
	})

	t.Run("findmove returns the best plan", func(t *testing.T) {
		rec := post(t, router, "/findmove", FindPlanRequest{State: thiefMatch(t)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp FindPlanResponse
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, searcher.Plan{game.SelfAbility(at(7, 7)), game.Move(at(7, 7), at(6, 6))}, resp.Plan)
	})

	t.Run("findmove rejects malformed bodies", func(t *testing.T) {
		rec := post(t, router, "/findmove", "{not json")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = post(t, router, "/findmove", "{}")
		require.Equal(t, http.StatusBadRequest, rec.Code, "A state is required")
	})

	t.Run("findmove refuses a decided match", func(t *testing.T) {
		ms, err := thiefMatch(t).Surrender(game.Black)
		require.NoError(t, err)
		rec := post(t, router, "/findmove", FindPlanRequest{State: ms})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("evaluate scores a board", func(t *testing.T) {
		ms := thiefMatch(t)
		rec := post(t, router, "/evaluate", EvaluateRequest{Board: ms.Board, Perspective: game.Gold})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp EvaluateResponse
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
		require.InDelta(t, game.EvaluateMaterial(&ms.Board, game.Gold, game.NoPlayer), resp.Score, 1e-9)

		rec = post(t, router, "/evaluate", EvaluateRequest{Board: ms.Board})
		require.Equal(t, http.StatusBadRequest, rec.Code, "Perspective is required")
	})
}

func TestRemoteAgent(t *testing.T) {
	t.Run("plays what the server finds", func(t *testing.T) {
		server := httptest.NewServer(newTestServer())
		defer server.Close()

		plan, _ := NewRemoteAgent(server.URL, time.Second).FindPlan(thiefMatch(t))
		require.Equal(t, searcher.Plan{game.SelfAbility(at(7, 7)), game.Move(at(7, 7), at(6, 6))}, plan)
	})

	t.Run("falls back to the first legal action", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ms := thiefMatch(t)
		plan, _ := NewRemoteAgent(server.URL, time.Second).FindPlan(ms)
		require.Equal(t, searcher.Plan{ms.LegalActions()[0]}, plan)
	})
}
