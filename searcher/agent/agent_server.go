package agent

import (
	"net/http"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/bytedance/sonic"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FindPlanRequest struct {
	State *game.MatchState `json:"state"`
}

type FindPlanResponse struct {
	Plan    searcher.Plan        `json:"plan"`
	Metrics metrics.SearchMetric `json:"metrics"`
}

type EvaluateRequest struct {
	Board       game.Board  `json:"board"`
	Perspective game.Player `json:"perspective"`
	Guard       game.Player `json:"guard"`
}

type EvaluateResponse struct {
	Score float64 `json:"score"`
}

// NewAgentServer exposes an agent over HTTP: POST /findmove with a match
// state returns the plan for the player to move, POST /evaluate scores a
// board and GET /healthz reports liveness. Profiling routes are mounted under
// /debug/pprof when withPprof is set.
func NewAgentServer(a Agent, evaluate game.Evaluate, withPprof bool) *gin.Engine {
	if evaluate == nil {
		evaluate = game.EvaluateMaterial
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if withPprof {
		pprof.Register(router)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.POST("/findmove", func(c *gin.Context) {
		var req FindPlanRequest
		if !decode(c, &req) {
			return
		}
		if req.State == nil {
			c.String(http.StatusBadRequest, "bad request: missing state")
			return
		}
		if req.State.Over() {
			c.String(http.StatusConflict, game.ErrGameOver.Error())
			return
		}
		plan, metric := a.FindPlan(req.State)
		log.Debug().Str("match", req.State.ID).Stringer("player", req.State.CurrentPlayer).Stringer("plan", plan).Msg("found plan")
		encode(c, FindPlanResponse{Plan: plan, Metrics: metric})
	})

	router.POST("/evaluate", func(c *gin.Context) {
		var req EvaluateRequest
		if !decode(c, &req) {
			return
		}
		if !req.Perspective.Valid() {
			c.String(http.StatusBadRequest, "bad request: perspective must be Gold or Black")
			return
		}
		encode(c, EvaluateResponse{Score: evaluate(&req.Board, req.Perspective, req.Guard)})
	})

	return router
}

// StartAgentServer serves the greedy agent on addr until the listener fails.
func StartAgentServer(addr string, withPprof bool) error {
	gin.SetMode(gin.ReleaseMode)
	log.Info().Msgf("starting agent server on %s ...", addr)
	router := NewAgentServer(NewEvaluationAgent(searcher.NewGreedy()), nil, withPprof)
	return router.Run(addr)
}

func decode(c *gin.Context, v any) bool {
	body, err := c.GetRawData()
	if err == nil {
		err = sonic.Unmarshal(body, v)
	}
	if err != nil {
		c.String(http.StatusBadRequest, "bad request: "+err.Error())
		return false
	}
	return true
}

func encode(c *gin.Context, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
