package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gambit/game"
	"gambit/gamemaster"

	"github.com/logrusorgru/aurora"
)

type Controller interface {
	Run() error
}

// consoleController lets a human play one seat (or both) from a terminal
// while the engine's bot plays the other.
type consoleController struct {
	engine  gamemaster.Engine
	session *gamemaster.Session
	in      *bufio.Scanner
	out     io.Writer
	au      aurora.Aurora
	delay   time.Duration
}

func NewConsoleController(engine gamemaster.Engine, in io.Reader, out io.Writer, colors bool, delay time.Duration) Controller {
	return &consoleController{
		engine:  engine,
		session: gamemaster.NewSession(),
		in:      bufio.NewScanner(in),
		out:     out,
		au:      aurora.NewAurora(colors),
		delay:   delay,
	}
}

const help = `commands:
  s <row> <col>   select a piece
  m               arm a move          a          arm the ability
  r <index>       choose the ally to revive
  t <row> <col>   target a highlighted cell
  c               cancel              p          pass (only when stuck)
  surrender       give up             q          quit`

func (c *consoleController) Run() error {
	_, getUpdate, err := c.engine.Init()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, help)
	c.show()

	drain := func() {
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			c.report(u)
		}
	}
	defer drain()

	for !c.engine.State().Over() {
		drain()
		if c.engine.State().CurrentPlayer == c.engine.BotSeat() {
			if err := c.botTurn(); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(c.out, "%s> ", c.engine.State().CurrentPlayer)
		if !c.in.Scan() {
			return c.in.Err()
		}
		quit, err := c.handle(strings.Fields(c.in.Text()))
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(c.out, c.au.Red(err.Error()))
		}
	}
	return nil
}

func (c *consoleController) botTurn() error {
	time.Sleep(c.delay)
	played, err := c.engine.BotTurn()
	if err != nil {
		return err
	}
	for _, a := range played {
		fmt.Fprintf(c.out, "%s plays %s\n", c.engine.BotSeat(), a)
	}
	c.show()
	return nil
}

// handle runs one command. Errors are refusals to show, not failures.
func (c *consoleController) handle(args []string) (quit bool, err error) {
	if len(args) == 0 {
		return false, nil
	}
	ms := c.engine.State()
	switch args[0] {
	case "q", "quit":
		return true, nil
	case "s", "select":
		pos, err := parsePosition(args[1:])
		if err != nil {
			return false, err
		}
		return false, c.session.Select(ms, pos)
	case "m", "move":
		if err := c.session.ArmMove(ms); err != nil {
			return false, err
		}
	case "a", "ability":
		a, err := c.session.ArmAbility(ms)
		if err != nil {
			return false, err
		}
		if a != nil {
			return false, c.play(*a)
		}
		if c.session.Step() == gamemaster.ReviveChoosing {
			for i, p := range ms.Captured[ms.CurrentPlayer] {
				fmt.Fprintf(c.out, "  %d: %s (%s)\n", i, p.Name, p.Class)
			}
			return false, nil
		}
	case "r", "revive":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: r <index>")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("bad index %q", args[1])
		}
		if err := c.session.ChooseRevive(ms, index); err != nil {
			return false, err
		}
	case "t", "target":
		pos, err := parsePosition(args[1:])
		if err != nil {
			return false, err
		}
		a, err := c.session.Target(pos)
		if err != nil {
			return false, err
		}
		return false, c.play(a)
	case "c", "cancel":
		c.session.Cancel()
	case "p", "pass":
		return false, c.play(game.Pass())
	case "surrender":
		return false, c.engine.Surrender(ms.CurrentPlayer)
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	c.show()
	return false, nil
}

func (c *consoleController) play(a game.Action) error {
	c.session.Cancel()
	if err := c.engine.Play(a); err != nil {
		return err
	}
	c.show()
	return nil
}

func (c *consoleController) show() {
	fmt.Fprint(c.out, Render(c.au, &c.engine.State().Board, c.session.Targets()))
	fmt.Fprintln(c.out, Status(c.au, c.engine.State()))
}

func (c *consoleController) report(u gamemaster.Update) {
	switch {
	case u.Action == nil:
		fmt.Fprintln(c.out, "surrendered")
	case len(u.Result.Captured) > 0:
		fmt.Fprintf(c.out, "%s captured %d piece(s)\n", u.Result.Actor, len(u.Result.Captured))
	case u.Result.ExtraTurn:
		fmt.Fprintf(c.out, "%s takes an extra turn\n", u.Result.Actor)
	}
	if u.State.Over() {
		fmt.Fprintln(c.out, Status(c.au, u.State))
	}
}

func parsePosition(args []string) (game.Position, error) {
	if len(args) != 2 {
		return game.Position{}, fmt.Errorf("usage: <row> <col>")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Position{}, fmt.Errorf("bad row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return game.Position{}, fmt.Errorf("bad col %q", args[1])
	}
	return game.Position{Row: row, Col: col}, nil
}
