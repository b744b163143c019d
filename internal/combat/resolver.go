package combat

import "github.com/ayusman/shadowbox/internal/gesture"

// Outcome is the result of one tick's arbitration between the player's
// action and the opponent's state.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHitLanded
	OutcomePlayerDamaged
	OutcomeBlocked
	OutcomeDodged
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeHitLanded:
		return "hit_landed"
	case OutcomePlayerDamaged:
		return "player_damaged"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeDodged:
		return "dodged"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Resolve arbitrates one tick. It is a pure function of the opponent
// state captured *before* this tick's Advance (so a punch thrown on the
// last instant of a closing vulnerability window still lands), the attack
// edge reported by that Advance, and the classified player action.
//
// An incoming attack is resolved first: blocking or dodging negates it,
// anything else (standing still, or punching, which does not defend)
// takes the hit. Otherwise a punch into the vulnerable window lands, and
// a punch at any other time whiffs with no effect on either side.
func Resolve(prev OpponentState, attack Attack, action gesture.Action) Outcome {
	if attack.Fired {
		switch action {
		case gesture.ActionBlock:
			return OutcomeBlocked
		case gesture.ActionDodgeLeft, gesture.ActionDodgeRight:
			return OutcomeDodged
		default:
			return OutcomePlayerDamaged
		}
	}

	if action == gesture.ActionPunch && prev == StateVulnerable {
		return OutcomeHitLanded
	}

	return OutcomeNone
}
