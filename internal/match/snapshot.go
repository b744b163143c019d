package match

import (
	"time"

	"github.com/ayusman/shadowbox/internal/combat"
)

// Snapshot is the read-only per-tick view handed to the presentation
// layer. Presentation never mutates game state; everything it needs to
// draw HP bars, sprites, and HUD text is here.
type Snapshot struct {
	State State `json:"state"`
	Round int   `json:"round"`

	PlayerHP      int `json:"player_hp"`
	PlayerMaxHP   int `json:"player_max_hp"`
	OpponentHP    int `json:"opponent_hp"`
	OpponentMaxHP int `json:"opponent_max_hp"`

	PlayerWins   int      `json:"player_wins"`
	OpponentWins int      `json:"opponent_wins"`
	Rounds       []Winner `json:"rounds"`

	OpponentState         combat.OpponentState `json:"opponent_state"`
	OpponentTimerFraction float64              `json:"opponent_timer_fraction"`
	AttackSide            string               `json:"attack_side"`

	Outcome combat.Outcome `json:"outcome"`

	RoundSecondsLeft     float64 `json:"round_seconds_left"`
	CountdownSecondsLeft float64 `json:"countdown_seconds_left"`
}

// Snapshot builds the current view. The rounds slice is copied so the
// caller can hold it across ticks.
func (c *Controller) Snapshot() Snapshot {
	rounds := make([]Winner, len(c.record))
	copy(rounds, c.record)

	s := Snapshot{
		State:                 c.state,
		Round:                 c.round,
		PlayerHP:              c.playerHP,
		PlayerMaxHP:           c.tuning.PlayerMaxHP,
		OpponentHP:            c.opponentHP,
		OpponentMaxHP:         c.tuning.OpponentMaxHP,
		PlayerWins:            c.playerWins,
		OpponentWins:          c.opponentWins,
		Rounds:                rounds,
		OpponentState:         c.opponent.State(),
		OpponentTimerFraction: c.opponent.TimerFraction(),
		Outcome:               c.lastOutcome,
	}

	// No side to report until the round's first attack has fired.
	if c.lastAttack.Fired {
		s.AttackSide = c.lastAttack.Side.String()
	}

	if remaining := c.tuning.RoundDuration - c.roundTime; c.state == StateFighting && remaining > 0 {
		s.RoundSecondsLeft = remaining.Seconds()
	}
	if c.state == StateCountdown && c.stateTimer > 0 {
		s.CountdownSecondsLeft = c.stateTimer.Seconds()
	}

	return s
}

// TickRate is the canonical game-loop rate in ticks per second;
// TickInterval is the corresponding tick duration.
const (
	TickRate     = 60
	TickInterval = time.Second / TickRate
)
