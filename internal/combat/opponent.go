package combat

import (
	"log"
	"math/rand"
	"time"
)

// OpponentState is the opponent's current phase in its attack cycle.
type OpponentState int

const (
	StateIdle OpponentState = iota
	StateTelegraph
	StateAttacking
	StateVulnerable
	StateHitStun
	StateRecovering
)

// String returns the wire name of the state, used in snapshots and logs.
func (s OpponentState) String() string {
	switch s {
	case StateTelegraph:
		return "telegraph"
	case StateAttacking:
		return "attacking"
	case StateVulnerable:
		return "vulnerable"
	case StateHitStun:
		return "hit_stun"
	case StateRecovering:
		return "recovering"
	default:
		return "idle"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON snapshots.
func (s OpponentState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Side identifies which hand an attack comes from, for presentation cues.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Attack reports whether the opponent's attack landed its active edge
// during an Advance call, and from which side.
type Attack struct {
	Fired bool
	Side  Side
}

// Opponent is a timer-driven finite state machine cycling
// idle → telegraph → attacking → vulnerable → idle, with
// vulnerable → hit_stun → recovering → idle when punched.
// Exactly one state is active at a time; transitions happen only when the
// state timer expires or ForceHitStun is accepted.
type Opponent struct {
	tuning Tuning
	rng    *rand.Rand

	state    OpponentState
	timer    time.Duration
	stateDur time.Duration
	side     Side
	round    int
}

// NewOpponent creates an opponent with the given tuning. A nil rng gets a
// time-seeded source; tests inject a fixed seed for determinism.
func NewOpponent(tuning Tuning, rng *rand.Rand) *Opponent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	o := &Opponent{tuning: tuning, rng: rng}
	o.Reset(1)
	return o
}

// Reset puts the opponent back to idle for the given 1-based round.
func (o *Opponent) Reset(round int) {
	if round < 1 {
		round = 1
	}
	o.round = round
	o.enter(StateIdle, o.idleDuration())
}

// State returns the current state.
func (o *Opponent) State() OpponentState {
	return o.state
}

// TimerFraction returns the remaining fraction (0-1) of the current
// state's duration, for telegraph color and animation cues.
func (o *Opponent) TimerFraction() float64 {
	if o.stateDur <= 0 {
		return 0
	}
	f := float64(o.timer) / float64(o.stateDur)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Advance moves the state machine forward by dt and reports whether the
// attack edge fired this tick. At most one transition happens per call.
func (o *Opponent) Advance(dt time.Duration) Attack {
	if o.timer > dt {
		o.timer -= dt
		return Attack{}
	}
	o.timer = 0

	switch o.state {
	case StateIdle:
		o.side = SideLeft
		if o.rng.Intn(2) == 1 {
			o.side = SideRight
		}
		o.enter(StateTelegraph, o.tuning.telegraphFor(o.round))

	case StateTelegraph:
		o.enter(StateAttacking, o.tuning.AttackActive)
		return Attack{Fired: true, Side: o.side}

	case StateAttacking:
		o.enter(StateVulnerable, o.tuning.Vulnerable)

	case StateVulnerable:
		o.enter(StateIdle, o.idleDuration())

	case StateHitStun:
		o.enter(StateRecovering, o.tuning.Recovering)

	case StateRecovering:
		o.enter(StateIdle, o.idleDuration())
	}

	return Attack{}
}

// ForceHitStun transitions the opponent into hit-stun. Legal only from
// the vulnerable window; any other request is outside the transition
// graph and is ignored.
func (o *Opponent) ForceHitStun() bool {
	if o.state != StateVulnerable {
		log.Printf("combat: ignoring hit-stun request in state %s", o.state)
		return false
	}
	o.enter(StateHitStun, o.tuning.HitStun)
	return true
}

func (o *Opponent) enter(s OpponentState, dur time.Duration) {
	o.state = s
	o.timer = dur
	o.stateDur = dur
}

func (o *Opponent) idleDuration() time.Duration {
	min, max := o.tuning.IdleMin, o.tuning.IdleMax
	if max <= min {
		return min
	}
	return min + time.Duration(o.rng.Int63n(int64(max-min)))
}
