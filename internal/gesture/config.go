package gesture

import "time"

// Config holds the classifier's tuning thresholds. All coordinates are in
// normalized frame space (0-1, origin top-left, y increasing downward).
// JSON tags let stored settings override individual fields; durations are
// nanoseconds on the wire.
type Config struct {
	// HistoryFrames is the ring-buffer capacity of per-hand motion
	// samples used for velocity estimation.
	HistoryFrames int `json:"history_frames"`

	// SmoothAlpha is the EMA coefficient applied to raw landmarks.
	// Higher is more responsive, lower is smoother.
	SmoothAlpha float64 `json:"smooth_alpha"`

	// MinScore is the minimum detection confidence; hands below it are
	// treated as absent.
	MinScore float64 `json:"min_score"`

	// LossGrace is how long the classifier tolerates absent or
	// low-confidence hands before treating the pose as lost and
	// resetting its counters.
	LossGrace time.Duration `json:"loss_grace"`

	// PunchSizeVelocity is the hand bounding-box growth rate (fraction
	// of frame per second) above which a closed fist counts as a punch.
	PunchSizeVelocity float64 `json:"punch_size_velocity"`

	// PunchDepthVelocity is the landmark depth rate below which a closed
	// fist counts as a punch (depth decreases toward the camera).
	PunchDepthVelocity float64 `json:"punch_depth_velocity"`

	// PunchCooldown is the refractory period after an emitted punch
	// during which further punches are suppressed.
	PunchCooldown time.Duration `json:"punch_cooldown"`

	// BlockMaxY is the wrist height threshold for a guard: both wrists
	// must be above it (smaller y is higher in frame).
	BlockMaxY float64 `json:"block_max_y"`

	// BlockMaxSpread is the maximum horizontal wrist distance for a
	// guard pose.
	BlockMaxSpread float64 `json:"block_max_spread"`

	// BlockSustain keeps the block active briefly after the guard pose
	// drops, bridging detector dropouts mid-combination.
	BlockSustain time.Duration `json:"block_sustain"`

	// DodgeLeftMax and DodgeRightMin split the frame into thirds: a mean
	// wrist x below the former is a left dodge, above the latter a right
	// dodge.
	DodgeLeftMax  float64 `json:"dodge_left_max"`
	DodgeRightMin float64 `json:"dodge_right_min"`

	// DodgeSustainFrames is the number of consecutive frames a dodge
	// position must hold before it is emitted, rejecting transients.
	DodgeSustainFrames int `json:"dodge_sustain_frames"`
}

// DefaultConfig returns the tuning used in play testing.
func DefaultConfig() Config {
	return Config{
		HistoryFrames:      5,
		SmoothAlpha:        0.35,
		MinScore:           0.5,
		LossGrace:          250 * time.Millisecond,
		PunchSizeVelocity:  0.07,
		PunchDepthVelocity: -0.35,
		PunchCooldown:      200 * time.Millisecond,
		BlockMaxY:          0.50,
		BlockMaxSpread:     0.40,
		BlockSustain:       120 * time.Millisecond,
		DodgeLeftMax:       0.35,
		DodgeRightMin:      0.65,
		DodgeSustainFrames: 3,
	}
}
