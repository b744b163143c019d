// Package detector provides hand detection interfaces and types for the
// Shadowbox gesture pipeline.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point with x, y in normalized frame coordinates
// (0-1, origin top-left) and z as MediaPipe's relative depth (smaller is
// closer to the camera).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// WristPos returns the wrist landmark position.
func (h *HandLandmarks) WristPos() Point3D {
	return h.Points[Wrist]
}

// Size returns the diagonal of the landmark bounding box in frame
// coordinates. A hand moving toward the camera grows, so the classifier
// uses the growth rate as an approach-velocity signal.
func (h *HandLandmarks) Size() float64 {
	minX, maxX := h.Points[0].X, h.Points[0].X
	minY, maxY := h.Points[0].Y, h.Points[0].Y
	for _, p := range h.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return math.Hypot(maxX-minX, maxY-minY)
}

// Depth returns the mean z of all landmarks. Decreasing depth means the
// hand is approaching the camera.
func (h *HandLandmarks) Depth() float64 {
	var sum float64
	for _, p := range h.Points {
		sum += p.Z
	}
	return sum / NumLandmarks
}

// Fist heuristic constants.
const (
	// minFistSpan rejects hands too small to call a pose reliably.
	minFistSpan = 0.05
	// curlSlack allows fingertips slightly beyond the PIP to still count
	// as curled, since knuckle landmarks jitter.
	curlSlack = 1.3
)

// IsFist reports whether the landmarks describe a closed fist: every
// fingertip sits no farther from the wrist than its PIP joint (with a
// small slack factor), and the hand spans enough of the frame to rule
// out degenerate detections.
func (h *HandLandmarks) IsFist() bool {
	wrist := h.Points[Wrist]

	span := math.Hypot(
		h.Points[ThumbTip].X-h.Points[PinkyTip].X,
		h.Points[ThumbTip].Y-h.Points[PinkyTip].Y,
	)
	if span < minFistSpan {
		return false
	}

	curled := func(tip, pip int) bool {
		dTip := sqDist2D(h.Points[tip], wrist)
		dPIP := sqDist2D(h.Points[pip], wrist)
		return dTip <= dPIP*curlSlack
	}

	return curled(IndexTip, IndexPIP) &&
		curled(MiddleTip, MiddlePIP) &&
		curled(RingTip, RingPIP) &&
		curled(PinkyTip, PinkyPIP)
}

func sqDist2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
