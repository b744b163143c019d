package gesture

import (
	"strings"
	"time"

	"github.com/ayusman/shadowbox/internal/detector"
)

// motionSample is one per-tick measurement of a tracked hand.
type motionSample struct {
	at    time.Time
	size  float64
	depth float64
}

// handTrack holds the smoothed landmarks and bounded motion history for
// one hand, keyed by handedness.
type handTrack struct {
	smoothed detector.HandLandmarks
	hasPrev  bool
	lastSeen time.Time

	// Ring buffer of motion samples, oldest evicted first.
	samples []motionSample
	head    int
	count   int
}

func (t *handTrack) push(s motionSample, capacity int) {
	if len(t.samples) != capacity {
		t.samples = make([]motionSample, capacity)
		t.head = 0
		t.count = 0
	}
	t.samples[(t.head+t.count)%capacity] = s
	if t.count < capacity {
		t.count++
	} else {
		t.head = (t.head + 1) % capacity
	}
}

func (t *handTrack) oldest() motionSample { return t.samples[t.head] }

func (t *handTrack) newest() motionSample {
	return t.samples[(t.head+t.count-1)%len(t.samples)]
}

func (t *handTrack) reset() {
	t.hasPrev = false
	t.count = 0
	t.head = 0
}

// Classifier turns a stream of per-frame hand landmarks into one Action
// per tick. It is total over its input: garbled or absent input always
// degrades to ActionNone, never an error.
//
// Not safe for concurrent use; the game loop owns it.
type Classifier struct {
	cfg Config

	tracks    map[string]*handTrack
	lastPunch map[string]time.Time

	lastConfident time.Time
	blockUntil    time.Time
	dodgeSide     Action
	dodgeRun      int
}

// NewClassifier creates a Classifier with the given tuning.
func NewClassifier(cfg Config) *Classifier {
	if cfg.HistoryFrames < 2 {
		cfg.HistoryFrames = 2
	}
	return &Classifier{
		cfg:       cfg,
		tracks:    make(map[string]*handTrack),
		lastPunch: make(map[string]time.Time),
	}
}

// Classify ingests the hands detected at time now and returns the action
// for this tick. Priority when several poses qualify at once:
// block > dodge > punch > none.
func (c *Classifier) Classify(hands []detector.HandLandmarks, now time.Time) Action {
	confident := hands[:0:0]
	for i := range hands {
		if hands[i].Score >= c.cfg.MinScore {
			confident = append(confident, hands[i])
		}
	}

	if len(confident) == 0 {
		return c.coast(now)
	}
	c.lastConfident = now

	seen := make(map[string]bool, len(confident))
	for i := range confident {
		key := strings.ToLower(confident[i].Handedness)
		seen[key] = true
		c.updateTrack(key, &confident[i], now)
	}
	// Hands that vanished restart smoothing when they return.
	for key, tr := range c.tracks {
		if !seen[key] {
			tr.reset()
		}
	}

	blocking := c.updateBlock(seen, now)
	dodge := c.updateDodge(seen)
	punch := c.punchReady(seen, now)

	switch {
	case blocking:
		return ActionBlock
	case dodge != ActionNone:
		return dodge
	case punch != "":
		c.lastPunch[punch] = now
		return ActionPunch
	default:
		return ActionNone
	}
}

// Coast returns the action for a tick on which no new frame arrived.
// Held states (block, a sustained dodge) persist; edge-triggered punches
// never fire from stale data.
func (c *Classifier) Coast(now time.Time) Action {
	return c.coast(now)
}

// Reset drops all history, smoothing state, and counters. Called between
// rounds so a stale wind-up cannot fire into the next countdown.
func (c *Classifier) Reset() {
	c.tracks = make(map[string]*handTrack)
	c.lastPunch = make(map[string]time.Time)
	c.lastConfident = time.Time{}
	c.blockUntil = time.Time{}
	c.dodgeSide = ActionNone
	c.dodgeRun = 0
}

func (c *Classifier) coast(now time.Time) Action {
	if !c.lastConfident.IsZero() && now.Sub(c.lastConfident) > c.cfg.LossGrace {
		// Pose lost, not "player chose idle": drop counters so the next
		// detection starts clean.
		c.Reset()
		return ActionNone
	}
	if c.blockUntil.After(now) {
		return ActionBlock
	}
	if c.dodgeRun >= c.cfg.DodgeSustainFrames {
		return c.dodgeSide
	}
	return ActionNone
}

// updateTrack EMA-smooths the hand into its track and appends a motion
// sample to the ring buffer.
func (c *Classifier) updateTrack(key string, hand *detector.HandLandmarks, now time.Time) {
	tr, ok := c.tracks[key]
	if !ok {
		tr = &handTrack{}
		c.tracks[key] = tr
	}

	if tr.hasPrev && now.Sub(tr.lastSeen) > c.cfg.LossGrace {
		tr.reset()
	}

	if tr.hasPrev {
		a := c.cfg.SmoothAlpha
		for i := range hand.Points {
			p := &tr.smoothed.Points[i]
			p.X = a*hand.Points[i].X + (1-a)*p.X
			p.Y = a*hand.Points[i].Y + (1-a)*p.Y
			p.Z = a*hand.Points[i].Z + (1-a)*p.Z
		}
		tr.smoothed.Handedness = hand.Handedness
		tr.smoothed.Score = hand.Score
	} else {
		tr.smoothed = *hand
		tr.hasPrev = true
	}
	tr.lastSeen = now

	tr.push(motionSample{
		at:    now,
		size:  tr.smoothed.Size(),
		depth: tr.smoothed.Depth(),
	}, c.cfg.HistoryFrames)
}

// updateBlock refreshes the guard state: both hands raised above the
// height threshold with wrists close together. Block is level-triggered
// and carries a short sustain once engaged.
func (c *Classifier) updateBlock(seen map[string]bool, now time.Time) bool {
	left, lok := c.trackIfSeen("left", seen)
	right, rok := c.trackIfSeen("right", seen)
	if lok && rok {
		lw := left.smoothed.WristPos()
		rw := right.smoothed.WristPos()
		high := lw.Y < c.cfg.BlockMaxY && rw.Y < c.cfg.BlockMaxY
		spread := lw.X - rw.X
		if spread < 0 {
			spread = -spread
		}
		if high && spread < c.cfg.BlockMaxSpread {
			c.blockUntil = now.Add(c.cfg.BlockSustain)
			return true
		}
	}
	return c.blockUntil.After(now)
}

// updateDodge tracks the mean wrist x of the visible hands and requires
// the same outer-third side for DodgeSustainFrames consecutive frames.
func (c *Classifier) updateDodge(seen map[string]bool) Action {
	var sumX float64
	var n int
	for key, tr := range c.tracks {
		if seen[key] {
			sumX += tr.smoothed.WristPos().X
			n++
		}
	}
	if n == 0 {
		c.dodgeRun = 0
		c.dodgeSide = ActionNone
		return ActionNone
	}

	side := ActionNone
	switch meanX := sumX / float64(n); {
	case meanX < c.cfg.DodgeLeftMax:
		side = ActionDodgeLeft
	case meanX > c.cfg.DodgeRightMin:
		side = ActionDodgeRight
	}

	if side == ActionNone || side != c.dodgeSide {
		c.dodgeSide = side
		if side == ActionNone {
			c.dodgeRun = 0
		} else {
			c.dodgeRun = 1
		}
		return ActionNone
	}

	c.dodgeRun++
	if c.dodgeRun >= c.cfg.DodgeSustainFrames {
		return side
	}
	return ActionNone
}

// punchReady reports which hand, if any, qualifies as punching this tick:
// a closed fist outside its refractory window whose size is growing (or
// depth shrinking) fast enough across the trailing history.
func (c *Classifier) punchReady(seen map[string]bool, now time.Time) string {
	for key, tr := range c.tracks {
		if !seen[key] || tr.count < 2 {
			continue
		}
		if !tr.smoothed.IsFist() {
			continue
		}
		if last, ok := c.lastPunch[key]; ok && now.Sub(last) < c.cfg.PunchCooldown {
			continue
		}

		first, last := tr.oldest(), tr.newest()
		dt := last.at.Sub(first.at).Seconds()
		if dt <= 0 {
			continue
		}
		sizeVel := (last.size - first.size) / dt
		depthVel := (last.depth - first.depth) / dt

		if sizeVel > c.cfg.PunchSizeVelocity || depthVel < c.cfg.PunchDepthVelocity {
			return key
		}
	}
	return ""
}

func (c *Classifier) trackIfSeen(key string, seen map[string]bool) (*handTrack, bool) {
	if !seen[key] {
		return nil, false
	}
	tr, ok := c.tracks[key]
	return tr, ok
}
