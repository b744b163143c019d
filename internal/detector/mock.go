package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Tests either pin a fixed result with SetHands or script a per-frame
// sequence with QueueHands.
type MockDetector struct {
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	err    error
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands returned by every subsequent Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// QueueHands appends a per-frame result. Queued results are consumed in
// order before falling back to the fixed SetHands result.
func (m *MockDetector) QueueHands(hands []HandLandmarks) {
	m.queue = append(m.queue, hands)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the next queued result, the pinned result, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// FistLandmarks returns a synthetic closed fist centered at (cx, cy) with
// the given scale. Scale 1.0 is a hand at guard distance; growing scale
// across frames reads as motion toward the camera.
func FistLandmarks(cx, cy, scale float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	s := scale
	lm.Points[Wrist] = Point3D{X: cx, Y: cy + 0.10*s, Z: -0.02 * s}

	// Knuckle row above the wrist, fingertips curled back toward it.
	pipOffsets := [4]float64{-0.045, -0.015, 0.015, 0.045}
	pips := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
	tips := [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	dips := [4]int{IndexDIP, MiddleDIP, RingDIP, PinkyDIP}
	for i := 0; i < 4; i++ {
		dx := pipOffsets[i] * s
		lm.Points[mcps[i]] = Point3D{X: cx + dx, Y: cy + 0.04*s, Z: -0.02 * s}
		lm.Points[pips[i]] = Point3D{X: cx + dx, Y: cy + 0.01*s, Z: -0.03 * s}
		lm.Points[dips[i]] = Point3D{X: cx + dx, Y: cy + 0.04*s, Z: -0.04 * s}
		lm.Points[tips[i]] = Point3D{X: cx + dx, Y: cy + 0.06*s, Z: -0.04 * s}
	}

	// Thumb folded across the front.
	lm.Points[ThumbCMC] = Point3D{X: cx - 0.05*s, Y: cy + 0.08*s, Z: -0.02 * s}
	lm.Points[ThumbMCP] = Point3D{X: cx - 0.06*s, Y: cy + 0.05*s, Z: -0.03 * s}
	lm.Points[ThumbIP] = Point3D{X: cx - 0.065*s, Y: cy + 0.03*s, Z: -0.04 * s}
	lm.Points[ThumbTip] = Point3D{X: cx - 0.065*s, Y: cy + 0.05*s, Z: -0.04 * s}

	return lm
}

// OpenHandLandmarks returns a synthetic open hand centered at (cx, cy).
// Fingers are extended, so IsFist reports false.
func OpenHandLandmarks(cx, cy float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: cx, Y: cy + 0.12, Z: 0}

	pipOffsets := [4]float64{-0.045, -0.015, 0.015, 0.045}
	pips := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
	tips := [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	dips := [4]int{IndexDIP, MiddleDIP, RingDIP, PinkyDIP}
	for i := 0; i < 4; i++ {
		dx := pipOffsets[i]
		lm.Points[mcps[i]] = Point3D{X: cx + dx, Y: cy + 0.05, Z: 0}
		lm.Points[pips[i]] = Point3D{X: cx + dx, Y: cy - 0.01, Z: 0}
		lm.Points[dips[i]] = Point3D{X: cx + dx, Y: cy - 0.06, Z: 0}
		lm.Points[tips[i]] = Point3D{X: cx + dx, Y: cy - 0.11, Z: 0}
	}

	lm.Points[ThumbCMC] = Point3D{X: cx - 0.05, Y: cy + 0.10, Z: 0}
	lm.Points[ThumbMCP] = Point3D{X: cx - 0.08, Y: cy + 0.07, Z: 0}
	lm.Points[ThumbIP] = Point3D{X: cx - 0.10, Y: cy + 0.05, Z: 0}
	lm.Points[ThumbTip] = Point3D{X: cx - 0.12, Y: cy + 0.03, Z: 0}

	return lm
}

// GuardHands returns a left/right pair raised into a guard: both wrists
// high in the frame and close together.
func GuardHands() []HandLandmarks {
	left := OpenHandLandmarks(0.42, 0.25)
	left.Handedness = "Left"
	right := OpenHandLandmarks(0.58, 0.25)
	right.Handedness = "Right"
	return []HandLandmarks{left, right}
}
