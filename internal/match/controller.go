package match

import (
	"log"
	"time"

	"github.com/ayusman/shadowbox/internal/combat"
	"github.com/ayusman/shadowbox/internal/gesture"
)

// State is the match-level phase.
type State int

const (
	StateTitle State = iota
	StateCountdown
	StateFighting
	StateRoundEnd
	StateGameOver
	StateVictory
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateCountdown:
		return "countdown"
	case StateFighting:
		return "fighting"
	case StateRoundEnd:
		return "round_end"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "title"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Winner identifies which side took a round.
type Winner int

const (
	WinnerPlayer Winner = iota
	WinnerOpponent
)

func (w Winner) String() string {
	if w == WinnerOpponent {
		return "opponent"
	}
	return "player"
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Request is a UI-originated transition request (keyboard, tray, or the
// presentation client over the websocket).
type Request int

const (
	// RequestStart begins a match from the title screen.
	RequestStart Request = iota
	// RequestContinue moves from round-end into the next round.
	RequestContinue
	// RequestRestart returns to the title screen after the match ends.
	RequestRestart
)

// Controller is the sole owner and mutator of match state: HP pools, the
// round record, and the phase machine
// title → countdown → fighting → round_end → {countdown|game_over|victory}.
// It is driven by Tick from the game loop and by Request from the UI;
// all methods must be called from the game loop goroutine.
type Controller struct {
	tuning   Tuning
	opponent *combat.Opponent

	state      State
	stateTimer time.Duration

	round      int // 1-based
	playerHP   int
	opponentHP int
	roundTime  time.Duration

	invulnTimer   time.Duration
	blockCooldown time.Duration

	record       []Winner
	playerWins   int
	opponentWins int

	lastOutcome combat.Outcome
	lastAttack  combat.Attack
}

// NewController creates a controller at the title screen. The opponent is
// injected so tests can pin its random source.
func NewController(tuning Tuning, opponent *combat.Opponent) *Controller {
	return &Controller{
		tuning:   tuning,
		opponent: opponent,
		state:    StateTitle,
		round:    1,
	}
}

// State returns the current match phase.
func (c *Controller) State() State {
	return c.state
}

// InputLive reports whether player gestures should be classified at all.
// During countdown and menu phases gesture processing is suspended so
// nothing spurious lands before the round visually starts.
func (c *Controller) InputLive() bool {
	return c.state == StateFighting
}

// Request applies a UI transition request. Requests that do not match the
// current phase are ignored.
func (c *Controller) Request(r Request) {
	switch {
	case r == RequestStart && c.state == StateTitle:
		c.resetMatch()
		c.enterCountdown()

	case r == RequestContinue && c.state == StateRoundEnd:
		c.round++
		c.enterCountdown()

	case r == RequestRestart && (c.state == StateGameOver || c.state == StateVictory):
		c.resetMatch()
		c.state = StateTitle

	default:
		log.Printf("match: ignoring request %d in state %s", r, c.state)
	}
}

// Tick advances the match by dt with the player's classified action for
// this tick, returning the combat outcome (OutcomeNone outside fights).
func (c *Controller) Tick(dt time.Duration, action gesture.Action) combat.Outcome {
	c.lastOutcome = combat.OutcomeNone

	switch c.state {
	case StateCountdown:
		c.stateTimer -= dt
		if c.stateTimer <= 0 {
			c.beginRound()
		}

	case StateFighting:
		c.fightTick(dt, action)
	}

	return c.lastOutcome
}

func (c *Controller) fightTick(dt time.Duration, action gesture.Action) {
	c.roundTime += dt
	c.invulnTimer = maxDur(0, c.invulnTimer-dt)
	c.blockCooldown = maxDur(0, c.blockCooldown-dt)

	// A guard thrown during block cooldown is just arms in the air.
	if action == gesture.ActionBlock && c.blockCooldown > 0 {
		action = gesture.ActionNone
	}

	// Resolve against the state before this tick's advance so a
	// last-instant punch into a closing window still lands.
	prev := c.opponent.State()
	attack := c.opponent.Advance(dt)
	if attack.Fired {
		c.lastAttack = attack
	}
	outcome := combat.Resolve(prev, attack, action)

	switch outcome {
	case combat.OutcomeHitLanded:
		c.opponentHP = maxInt(0, c.opponentHP-c.tuning.PunchDamage)
		c.opponent.ForceHitStun()

	case combat.OutcomePlayerDamaged:
		if c.invulnTimer > 0 {
			outcome = combat.OutcomeNone
		} else {
			c.playerHP = maxInt(0, c.playerHP-c.tuning.AttackDamage)
			c.invulnTimer = c.tuning.PlayerInvuln
		}

	case combat.OutcomeBlocked:
		c.blockCooldown = c.tuning.BlockCooldown
	}

	c.lastOutcome = outcome

	// Round-end check fires the same tick HP reaches zero.
	switch {
	case c.playerHP == 0:
		c.endRound(WinnerOpponent)
	case c.opponentHP == 0:
		c.endRound(WinnerPlayer)
	case c.roundTime >= c.tuning.RoundDuration:
		c.endRound(c.decisionWinner())
	}
}

// decisionWinner picks the round winner on time-out by remaining HP
// fraction, since the two pools differ in size. Ties go to the opponent.
func (c *Controller) decisionWinner() Winner {
	playerFrac := float64(c.playerHP) / float64(c.tuning.PlayerMaxHP)
	oppFrac := float64(c.opponentHP) / float64(c.tuning.OpponentMaxHP)
	if playerFrac > oppFrac {
		return WinnerPlayer
	}
	return WinnerOpponent
}

func (c *Controller) endRound(w Winner) {
	if len(c.record) >= c.tuning.MaxRounds {
		// Already at the round cap; nothing more to record.
		c.state = StateRoundEnd
		return
	}

	c.record = append(c.record, w)
	if w == WinnerPlayer {
		c.playerWins++
	} else {
		c.opponentWins++
	}

	switch {
	case c.playerWins >= c.tuning.RoundsToWin:
		c.state = StateVictory
	case c.opponentWins >= c.tuning.RoundsToWin:
		c.state = StateGameOver
	case len(c.record) >= c.tuning.MaxRounds:
		// Round cap without a majority; decide on wins.
		if c.playerWins > c.opponentWins {
			c.state = StateVictory
		} else {
			c.state = StateGameOver
		}
	default:
		c.state = StateRoundEnd
	}
}

func (c *Controller) resetMatch() {
	c.round = 1
	c.record = nil
	c.playerWins = 0
	c.opponentWins = 0
	c.lastOutcome = combat.OutcomeNone
	c.lastAttack = combat.Attack{}
}

func (c *Controller) enterCountdown() {
	c.state = StateCountdown
	c.stateTimer = c.tuning.Countdown
	c.playerHP = c.tuning.PlayerMaxHP
	c.opponentHP = c.tuning.OpponentMaxHP
	c.roundTime = 0
	c.invulnTimer = 0
	c.blockCooldown = 0
	c.lastAttack = combat.Attack{}
	c.opponent.Reset(c.round)
}

func (c *Controller) beginRound() {
	c.state = StateFighting
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxDur(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
