package meta

import "time"

// BOARD_SIZE is the width and height of the square grid.
const BOARD_SIZE = 8

// DECK_SIZE is the number of slots in a player's deck.
const DECK_SIZE = 8

// MAX_TURNS caps bot-vs-bot matches that never reach a capture win.
const MAX_TURNS = 300

// BOT_DELAY is the display delay a caller may wait before asking the bot to act.
const BOT_DELAY = 1500 * time.Millisecond

// Special ability bonuses added to the pre-action board score by the bot.
const (
	GUARD_BONUS  = 75.0
	THIEF_BONUS  = 40.0
	HEALER_BONUS = 90.0
)

// GUARD_THREAT_THRESHOLD is how many threatened pieces make the bot consider Full Guard.
const GUARD_THREAT_THRESHOLD = 2

// Board evaluation weights.
const (
	PIECE_VALUE      = 100.0
	POSITIONAL_BONUS = 2.0
	THREAT_BONUS     = 15.0
	DANGER_PENALTY   = 20.0
)
