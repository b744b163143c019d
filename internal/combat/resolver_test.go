package combat

import (
	"testing"
	"time"

	"github.com/ayusman/shadowbox/internal/gesture"
)

func TestResolve(t *testing.T) {
	attack := Attack{Fired: true, Side: SideLeft}
	noAttack := Attack{}

	tests := []struct {
		name   string
		prev   OpponentState
		attack Attack
		action gesture.Action
		want   Outcome
	}{
		{
			name:   "punch into vulnerable window lands",
			prev:   StateVulnerable,
			attack: noAttack,
			action: gesture.ActionPunch,
			want:   OutcomeHitLanded,
		},
		{
			name:   "block negates incoming attack",
			prev:   StateTelegraph,
			attack: attack,
			action: gesture.ActionBlock,
			want:   OutcomeBlocked,
		},
		{
			name:   "dodge left negates incoming attack",
			prev:   StateTelegraph,
			attack: attack,
			action: gesture.ActionDodgeLeft,
			want:   OutcomeDodged,
		},
		{
			name:   "dodge right negates incoming attack",
			prev:   StateTelegraph,
			attack: attack,
			action: gesture.ActionDodgeRight,
			want:   OutcomeDodged,
		},
		{
			name:   "idle player takes incoming attack",
			prev:   StateTelegraph,
			attack: attack,
			action: gesture.ActionNone,
			want:   OutcomePlayerDamaged,
		},
		{
			name:   "punching does not defend",
			prev:   StateTelegraph,
			attack: attack,
			action: gesture.ActionPunch,
			want:   OutcomePlayerDamaged,
		},
		{
			name:   "punch at idle opponent whiffs",
			prev:   StateIdle,
			attack: noAttack,
			action: gesture.ActionPunch,
			want:   OutcomeNone,
		},
		{
			name:   "punch at telegraphing opponent whiffs",
			prev:   StateTelegraph,
			attack: noAttack,
			action: gesture.ActionPunch,
			want:   OutcomeNone,
		},
		{
			name:   "punch during hit-stun whiffs",
			prev:   StateHitStun,
			attack: noAttack,
			action: gesture.ActionPunch,
			want:   OutcomeNone,
		},
		{
			name:   "no action no attack is a quiet tick",
			prev:   StateIdle,
			attack: noAttack,
			action: gesture.ActionNone,
			want:   OutcomeNone,
		},
		{
			name:   "block with nothing incoming does nothing",
			prev:   StateVulnerable,
			attack: noAttack,
			action: gesture.ActionBlock,
			want:   OutcomeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.prev, tt.attack, tt.action)
			if got != tt.want {
				t.Errorf("Resolve(%s, fired=%v, %s) = %s, want %s",
					tt.prev, tt.attack.Fired, tt.action, got, tt.want)
			}
		})
	}
}

// The pre-advance read matters: a vulnerability window that expires on
// the same tick as the player's punch must still count the hit.
func TestResolve_LastInstantPunch(t *testing.T) {
	o := testOpponent()
	advanceUntil(t, o, StateVulnerable)

	// Advance far enough that the window closes this very tick.
	prev := o.State()
	attack := o.Advance(DefaultTuning().Vulnerable + time.Millisecond)

	if o.State() == StateVulnerable {
		t.Fatal("window should have closed")
	}
	if got := Resolve(prev, attack, gesture.ActionPunch); got != OutcomeHitLanded {
		t.Errorf("last-instant punch resolved as %s, want hit_landed", got)
	}
}
