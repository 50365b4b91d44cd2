package gamemaster

import (
	"fmt"

	"gambit/config"
	"gambit/game"
	"gambit/searcher/agent"

	"github.com/rs/zerolog/log"
)

const updateBuffer = 64

// Update is published after every accepted action and after a surrender.
type Update struct {
	Action *game.Action // nil for a surrender
	Result game.Result
	State  *game.MatchState
	Hash   game.StateHash
}

// UpdateGetter returns the next pending update without blocking. ok is false
// when nothing is pending or the match is over and drained.
type UpdateGetter func() (u Update, ok bool)

type Engine interface {
	Init() (*game.MatchState, UpdateGetter, error)
	State() *game.MatchState
	BotSeat() game.Player
	Play(game.Action) error
	BotTurn() ([]game.Action, error)
	Surrender(game.Player) error
}

type localEngine struct {
	cfg      *config.Config
	bot      agent.Agent
	botSeat  game.Player
	state    *game.MatchState
	updateCh chan Update
	gameOver bool
}

// NewLocalEngine hosts one match. With a bot, cfg.Bot.Seat is played by it;
// without one both seats are human.
func NewLocalEngine(cfg *config.Config, bot agent.Agent) *localEngine {
	e := &localEngine{cfg: cfg, bot: bot}
	if bot != nil {
		e.botSeat = cfg.Bot.Seat
	}
	return e
}

func (e *localEngine) Init() (*game.MatchState, UpdateGetter, error) {
	ms, err := e.cfg.NewMatch()
	if err != nil {
		return nil, nil, err
	}
	e.state = ms
	e.gameOver = false
	e.updateCh = make(chan Update, updateBuffer)
	log.Info().Str("match", ms.ID).Msgf("match started, bot seat %q", e.botSeat)

	updateCh := e.updateCh
	return ms, func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}, nil
}

// State returns the current match state.
func (e *localEngine) State() *game.MatchState {
	return e.state
}

// BotSeat returns the seat played by the bot, NoPlayer without one.
func (e *localEngine) BotSeat() game.Player {
	return e.botSeat
}

// Play applies a human action for the player to move.
func (e *localEngine) Play(a game.Action) error {
	if err := e.ready(); err != nil {
		return err
	}
	if e.botSeat.Valid() && e.state.CurrentPlayer == e.botSeat {
		return fmt.Errorf("%w: waiting for the bot", game.ErrIllegalAction)
	}
	return e.apply(a)
}

// BotTurn lets the bot play its whole plan. It is an error to call it
// while the human is to move. An illegal step forfeits the rest of the plan
// and the first legal action is played instead.
func (e *localEngine) BotTurn() ([]game.Action, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if !e.botSeat.Valid() || e.state.CurrentPlayer != e.botSeat {
		return nil, fmt.Errorf("%w: not the bot's turn", game.ErrIllegalAction)
	}
	plan, _ := e.bot.FindPlan(e.state)
	var played []game.Action
	for _, a := range plan {
		if err := e.apply(a); err != nil {
			log.Warn().Err(err).Str("match", e.state.ID).Msg("bot returned an illegal action => forcing first legal action")
			fallback := e.state.LegalActions()[0]
			if err := e.apply(fallback); err != nil {
				return played, err
			}
			return append(played, fallback), nil
		}
		played = append(played, a)
		if e.gameOver {
			break
		}
	}
	return played, nil
}

// Surrender ends the match in favor of p's opponent. In bot mode only the
// human seat can surrender. A decided match is left alone.
func (e *localEngine) Surrender(p game.Player) error {
	if e.state == nil {
		return fmt.Errorf("match not initialized")
	}
	if e.gameOver {
		return nil
	}
	if e.botSeat.Valid() && p == e.botSeat {
		return fmt.Errorf("%w: the bot does not surrender", game.ErrIllegalAction)
	}
	next, err := e.state.Surrender(p)
	if err != nil {
		return err
	}
	e.state = next
	log.Info().Str("match", next.ID).Stringer("player", p).Msg("surrendered")
	e.publish(Update{State: next, Hash: next.Hash()})
	return nil
}

func (e *localEngine) ready() error {
	if e.state == nil {
		return fmt.Errorf("match not initialized")
	}
	if e.gameOver {
		return game.ErrGameOver
	}
	return nil
}

func (e *localEngine) apply(a game.Action) error {
	next, res, err := e.state.Play(a)
	if err != nil {
		log.Debug().Err(err).Str("match", e.state.ID).Msg("action refused")
		return err
	}
	e.state = next
	log.Debug().Str("match", next.ID).Stringer("player", res.Actor).Stringer("action", a).Msg("action played")
	e.publish(Update{Action: &a, Result: res, State: next, Hash: next.Hash()})
	return nil
}

// publish queues an update and closes the stream once the match is decided.
func (e *localEngine) publish(u Update) {
	select {
	case e.updateCh <- u:
	default:
		log.Warn().Str("match", u.State.ID).Msg("update buffer full, dropping update")
	}
	if u.State.Over() {
		log.Info().Str("match", u.State.ID).Msgf("game over: %s wins by %s", u.State.Winner(), u.State.WinReason)
		e.gameOver = true
		close(e.updateCh)
	}
}
