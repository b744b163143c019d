package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/shadowbox/internal/detector"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const frameStep = 33 * time.Millisecond

// punchSequence returns a right fist growing frame over frame, the
// signature of a punch thrown toward the camera.
func punchSequence(n int) [][]detector.HandLandmarks {
	frames := make([][]detector.HandLandmarks, n)
	for i := range frames {
		scale := 1.0 + 0.15*float64(i)
		frames[i] = []detector.HandLandmarks{detector.FistLandmarks(0.5, 0.5, scale)}
	}
	return frames
}

func TestClassify_Totality(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	inputs := [][]detector.HandLandmarks{
		nil,
		{},
		{{}}, // zero-valued hand, zero confidence
		{detector.OpenHandLandmarks(0.5, 0.5)},
		{detector.FistLandmarks(0.5, 0.5, 1.0)},
		detector.GuardHands(),
	}

	now := t0
	for i, hands := range inputs {
		action := c.Classify(hands, now)
		switch action {
		case ActionNone, ActionPunch, ActionBlock, ActionDodgeLeft, ActionDodgeRight:
		default:
			t.Errorf("input %d: invalid action %d", i, action)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_PunchFromApproachingFist(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	now := t0
	var punches int
	for _, hands := range punchSequence(5) {
		if c.Classify(hands, now) == ActionPunch {
			punches++
		}
		now = now.Add(frameStep)
	}

	if punches == 0 {
		t.Error("growing fist should classify as a punch")
	}
}

func TestClassify_StaticFistIsNotAPunch(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	now := t0
	for i := 0; i < 10; i++ {
		hands := []detector.HandLandmarks{detector.FistLandmarks(0.5, 0.5, 1.0)}
		if got := c.Classify(hands, now); got != ActionNone {
			t.Fatalf("frame %d: static fist classified as %v, want none", i, got)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_PunchRefractory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PunchCooldown = 200 * time.Millisecond
	c := NewClassifier(cfg)

	// Two back-to-back punch motions inside one cooldown window.
	now := t0
	var punches int
	for _, hands := range punchSequence(6) { // 6 frames = 165ms < cooldown
		if c.Classify(hands, now) == ActionPunch {
			punches++
		}
		now = now.Add(frameStep)
	}
	if punches != 1 {
		t.Errorf("punches within refractory window = %d, want exactly 1", punches)
	}

	// After the cooldown a fresh swing fires again.
	now = now.Add(cfg.PunchCooldown)
	for _, hands := range punchSequence(5) {
		if c.Classify(hands, now) == ActionPunch {
			punches++
		}
		now = now.Add(frameStep)
	}
	if punches != 2 {
		t.Errorf("punches after refractory elapsed = %d, want 2", punches)
	}
}

func TestClassify_BlockFromGuardPose(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	now := t0
	for i := 0; i < 5; i++ {
		got := c.Classify(detector.GuardHands(), now)
		if got != ActionBlock {
			t.Fatalf("frame %d: guard pose classified as %v, want block", i, got)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_BlockRequiresBothHands(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	one := detector.OpenHandLandmarks(0.5, 0.25)
	one.Handedness = "Left"

	now := t0
	for i := 0; i < 5; i++ {
		if got := c.Classify([]detector.HandLandmarks{one}, now); got == ActionBlock {
			t.Fatal("single raised hand must not count as a block")
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_BlockRequiresGuardSpread(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// Both hands high but spread wide apart: not a guard.
	left := detector.OpenHandLandmarks(0.1, 0.25)
	left.Handedness = "Left"
	right := detector.OpenHandLandmarks(0.9, 0.25)
	right.Handedness = "Right"

	now := t0
	for i := 0; i < 5; i++ {
		if got := c.Classify([]detector.HandLandmarks{left, right}, now); got == ActionBlock {
			t.Fatal("wide-spread hands must not count as a block")
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_BlockBeatsPunch(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// Raised fists in guard position, growing frame over frame: both the
	// block and punch conditions hold. Block is the deliberate pose and
	// wins.
	now := t0
	for i := 0; i < 5; i++ {
		scale := 1.0 + 0.15*float64(i)
		left := detector.FistLandmarks(0.44, 0.2, scale)
		left.Handedness = "Left"
		right := detector.FistLandmarks(0.56, 0.2, scale)
		right.Handedness = "Right"

		got := c.Classify([]detector.HandLandmarks{left, right}, now)
		if i > 0 && got != ActionBlock {
			t.Fatalf("frame %d: guard+punch classified as %v, want block", i, got)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_DodgeSustain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DodgeSustainFrames = 3
	c := NewClassifier(cfg)

	hand := detector.OpenHandLandmarks(0.2, 0.6)

	now := t0
	got := c.Classify([]detector.HandLandmarks{hand}, now)
	if got != ActionNone {
		t.Fatalf("frame 1: transient left position classified as %v, want none", got)
	}

	now = now.Add(frameStep)
	got = c.Classify([]detector.HandLandmarks{hand}, now)
	if got != ActionNone {
		t.Fatalf("frame 2: classified as %v, want none before sustain", got)
	}

	now = now.Add(frameStep)
	got = c.Classify([]detector.HandLandmarks{hand}, now)
	if got != ActionDodgeLeft {
		t.Fatalf("frame 3: classified as %v, want dodge_left after sustain", got)
	}
}

func TestClassify_DodgeRight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DodgeSustainFrames = 2
	c := NewClassifier(cfg)

	hand := detector.OpenHandLandmarks(0.85, 0.6)

	now := t0
	c.Classify([]detector.HandLandmarks{hand}, now)
	now = now.Add(frameStep)
	if got := c.Classify([]detector.HandLandmarks{hand}, now); got != ActionDodgeRight {
		t.Errorf("sustained right position classified as %v, want dodge_right", got)
	}
}

func TestClassify_DodgeTransientRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DodgeSustainFrames = 3
	c := NewClassifier(cfg)

	left := detector.OpenHandLandmarks(0.2, 0.6)
	center := detector.OpenHandLandmarks(0.5, 0.6)

	now := t0
	for i, hand := range []detector.HandLandmarks{left, left, center, left, center} {
		if got := c.Classify([]detector.HandLandmarks{hand}, now); got != ActionNone {
			t.Errorf("frame %d: %v emitted for non-sustained dodge", i, got)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_LowConfidenceDegradesToNone(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	hand := detector.FistLandmarks(0.5, 0.5, 1.0)
	hand.Score = 0.2 // below MinScore

	now := t0
	for i := 0; i < 5; i++ {
		if got := c.Classify([]detector.HandLandmarks{hand}, now); got != ActionNone {
			t.Fatalf("low-confidence hand classified as %v, want none", got)
		}
		now = now.Add(frameStep)
	}
}

func TestClassify_PoseLossResetsRefractory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PunchCooldown = 10 * time.Second // would block any second punch
	c := NewClassifier(cfg)

	now := t0
	var punches int
	for _, hands := range punchSequence(5) {
		if c.Classify(hands, now) == ActionPunch {
			punches++
		}
		now = now.Add(frameStep)
	}
	if punches != 1 {
		t.Fatalf("punches = %d, want 1", punches)
	}

	// Hands disappear past the grace period: pose lost, counters reset.
	now = now.Add(cfg.LossGrace + time.Second)
	if got := c.Classify(nil, now); got != ActionNone {
		t.Fatalf("lost pose classified as %v, want none", got)
	}

	// A fresh swing fires despite the huge cooldown, because the
	// refractory state was reset on pose loss.
	now = now.Add(frameStep)
	for _, hands := range punchSequence(5) {
		if c.Classify(hands, now) == ActionPunch {
			punches++
		}
		now = now.Add(frameStep)
	}
	if punches != 2 {
		t.Errorf("punches after pose loss = %d, want 2", punches)
	}
}

func TestCoast_HoldsBlockThroughDropout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSustain = 120 * time.Millisecond
	c := NewClassifier(cfg)

	now := t0
	if got := c.Classify(detector.GuardHands(), now); got != ActionBlock {
		t.Fatalf("guard classified as %v, want block", got)
	}

	// Dropped frame shortly after: block sustains.
	now = now.Add(50 * time.Millisecond)
	if got := c.Coast(now); got != ActionBlock {
		t.Errorf("Coast within sustain = %v, want block", got)
	}

	// Well past the sustain window: nothing held.
	now = now.Add(cfg.BlockSustain)
	if got := c.Coast(now); got != ActionBlock && got != ActionNone {
		t.Errorf("Coast returned %v, want block or none", got)
	}
	now = now.Add(cfg.LossGrace)
	if got := c.Coast(now); got != ActionNone {
		t.Errorf("Coast after sustain+grace = %v, want none", got)
	}
}

func TestClassify_NeverPanicsOnGarbage(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	garbage := detector.HandLandmarks{Handedness: "???", Score: 0.99}
	now := t0
	for i := 0; i < 20; i++ {
		c.Classify([]detector.HandLandmarks{garbage}, now)
		c.Classify(nil, now)
		now = now.Add(frameStep)
	}
}
