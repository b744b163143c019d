package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionDetector(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{name: "wake threshold", threshold: 1.0},
		{name: "strict threshold", threshold: 5.0},
		{name: "loose threshold", threshold: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMotionDetector(tt.threshold)
			if md == nil {
				t.Fatal("NewMotionDetector returned nil")
			}
			defer md.Close()

			if md.threshold != tt.threshold {
				t.Errorf("threshold = %f, want %f", md.threshold, tt.threshold)
			}
			if md.initialized {
				t.Error("motion detector should not be initialized before the first frame")
			}
		})
	}
}

func TestMotionDetector_StaticScene(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	// First frame only establishes the baseline.
	if detected, pct := md.Detect(&frame1); detected || pct != 0 {
		t.Errorf("first frame: detected=%v pct=%f, want false, 0", detected, pct)
	}

	if detected, pct := md.Detect(&frame2); detected {
		t.Errorf("identical frames should not detect motion, pct=%f", pct)
	}
}

func TestMotionDetector_PlayerStepsIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	empty := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer empty.Close()

	occupied := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer occupied.Close()
	occupied.SetTo(gocv.NewScalar(200, 200, 200, 0))

	md.Detect(&empty)

	detected, pct := md.Detect(&occupied)
	if !detected {
		t.Errorf("full-frame change should detect motion, pct=%f", pct)
	}
	if pct < 50 {
		t.Errorf("changePercent = %f, want most of the frame", pct)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md.Detect(&black)
	md.Reset()

	// After reset the white frame is a new baseline, not a delta.
	if detected, _ := md.Detect(&white); detected {
		t.Error("first frame after Reset should not detect motion")
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(3.5)
	if md.threshold != 3.5 {
		t.Errorf("threshold = %f, want 3.5", md.threshold)
	}

	// Non-positive values are ignored.
	md.SetThreshold(0)
	md.SetThreshold(-1)
	if md.threshold != 3.5 {
		t.Errorf("threshold = %f after invalid sets, want 3.5", md.threshold)
	}
}
