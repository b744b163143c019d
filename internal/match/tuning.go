// Package match owns the round and match lifecycle: HP pools, round
// records, and the title/countdown/fighting/round-end state machine.
package match

import "time"

// Tuning holds the match-level constants. JSON tags let stored settings
// override individual fields; durations are nanoseconds on the wire.
type Tuning struct {
	// PlayerMaxHP and OpponentMaxHP are the per-round HP pools. The
	// opponent's is smaller: landing clean punches is harder than
	// eating them.
	PlayerMaxHP   int `json:"player_max_hp"`
	OpponentMaxHP int `json:"opponent_max_hp"`

	// AttackDamage is the fixed HP cost of one unblocked opponent attack.
	AttackDamage int `json:"attack_damage"`

	// PunchDamage is the fixed HP cost of one landed player punch.
	PunchDamage int `json:"punch_damage"`

	// RoundsToWin ends the match; MaxRounds caps the round record.
	RoundsToWin int `json:"rounds_to_win"`
	MaxRounds   int `json:"max_rounds"`

	// RoundDuration ends a round on time if nobody is knocked out.
	RoundDuration time.Duration `json:"round_duration"`

	// Countdown is the frozen pre-round phase during which no gestures
	// are read.
	Countdown time.Duration `json:"countdown"`

	// PlayerInvuln is the mercy window after the player takes a hit.
	PlayerInvuln time.Duration `json:"player_invuln"`

	// BlockCooldown disables blocking briefly after a successful block,
	// so the guard cannot be held permanently.
	BlockCooldown time.Duration `json:"block_cooldown"`
}

// DefaultTuning returns the values used in play testing.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerMaxHP:   12,
		OpponentMaxHP: 6,
		AttackDamage:  1,
		PunchDamage:   1,
		RoundsToWin:   2,
		MaxRounds:     3,
		RoundDuration: 90 * time.Second,
		Countdown:     3 * time.Second,
		PlayerInvuln:  500 * time.Millisecond,
		BlockCooldown: 700 * time.Millisecond,
	}
}
