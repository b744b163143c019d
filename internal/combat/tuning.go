// Package combat implements the opponent's timer-driven state machine and
// the per-tick arbitration between opponent state and player action.
package combat

import "time"

// Tuning holds the opponent's timing constants. All values are fixed per
// round; nothing adapts to player performance mid-round. JSON tags let
// stored settings override individual fields; durations are nanoseconds
// on the wire.
type Tuning struct {
	// IdleMin and IdleMax bound the random pause between attack cycles.
	IdleMin time.Duration `json:"idle_min"`
	IdleMax time.Duration `json:"idle_max"`

	// Telegraph is the base wind-up duration before an attack. Each round
	// past the first shortens it by TelegraphRoundStep, floored at
	// TelegraphMin, so later rounds demand faster reactions.
	Telegraph          time.Duration `json:"telegraph"`
	TelegraphRoundStep time.Duration `json:"telegraph_round_step"`
	TelegraphMin       time.Duration `json:"telegraph_min"`

	// AttackActive is how long the attack state lasts; the hit itself
	// lands on the instant the state is entered.
	AttackActive time.Duration `json:"attack_active"`

	// Vulnerable is the window after an attack during which a player
	// punch connects.
	Vulnerable time.Duration `json:"vulnerable"`

	// HitStun is the forced recovery after being punched.
	HitStun time.Duration `json:"hit_stun"`

	// Recovering is the pause between hit-stun and returning to idle.
	Recovering time.Duration `json:"recovering"`
}

// DefaultTuning returns the timings used in play testing. Telegraph and
// vulnerability windows are generous; this is a party game, not a ranked
// ladder.
func DefaultTuning() Tuning {
	return Tuning{
		IdleMin:            200 * time.Millisecond,
		IdleMax:            500 * time.Millisecond,
		Telegraph:          400 * time.Millisecond,
		TelegraphRoundStep: 50 * time.Millisecond,
		TelegraphMin:       200 * time.Millisecond,
		AttackActive:       150 * time.Millisecond,
		Vulnerable:         time.Second,
		HitStun:            600 * time.Millisecond,
		Recovering:         400 * time.Millisecond,
	}
}

// telegraphFor returns the telegraph duration for the given 1-based round.
func (t Tuning) telegraphFor(round int) time.Duration {
	d := t.Telegraph - time.Duration(round-1)*t.TelegraphRoundStep
	if d < t.TelegraphMin {
		d = t.TelegraphMin
	}
	return d
}
