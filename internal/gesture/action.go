// Package gesture turns per-frame hand landmarks into discrete boxing
// actions: punch, block, dodge left/right, or nothing.
package gesture

// Action is the single classified player action for one tick.
type Action int

const (
	ActionNone Action = iota
	ActionPunch
	ActionBlock
	ActionDodgeLeft
	ActionDodgeRight
)

// String returns the wire name of the action, used in snapshots and logs.
func (a Action) String() string {
	switch a {
	case ActionPunch:
		return "punch"
	case ActionBlock:
		return "block"
	case ActionDodgeLeft:
		return "dodge_left"
	case ActionDodgeRight:
		return "dodge_right"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
