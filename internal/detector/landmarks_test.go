package detector

import (
	"math"
	"testing"
)

func TestIsFist(t *testing.T) {
	tests := []struct {
		name string
		hand HandLandmarks
		want bool
	}{
		{
			name: "closed fist",
			hand: FistLandmarks(0.5, 0.5, 1.0),
			want: true,
		},
		{
			name: "closed fist close to camera",
			hand: FistLandmarks(0.5, 0.5, 1.8),
			want: true,
		},
		{
			name: "open hand",
			hand: OpenHandLandmarks(0.5, 0.5),
			want: false,
		},
		{
			name: "degenerate detection",
			hand: HandLandmarks{Score: 0.9}, // all points at origin, zero span
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hand.IsFist(); got != tt.want {
				t.Errorf("IsFist() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSize_GrowsWithScale(t *testing.T) {
	small := FistLandmarks(0.5, 0.5, 1.0)
	big := FistLandmarks(0.5, 0.5, 1.5)

	if small.Size() <= 0 {
		t.Fatalf("Size() = %f, want > 0", small.Size())
	}
	if big.Size() <= small.Size() {
		t.Errorf("scaled-up fist should have larger size: small=%f big=%f",
			small.Size(), big.Size())
	}

	ratio := big.Size() / small.Size()
	if math.Abs(ratio-1.5) > 0.01 {
		t.Errorf("size ratio = %f, want 1.5", ratio)
	}
}

func TestDepth(t *testing.T) {
	var hand HandLandmarks
	for i := range hand.Points {
		hand.Points[i].Z = -0.5
	}
	if got := hand.Depth(); got != -0.5 {
		t.Errorf("Depth() = %f, want -0.5", got)
	}
}

func TestWristPos(t *testing.T) {
	hand := OpenHandLandmarks(0.3, 0.4)
	w := hand.WristPos()
	if w.X != 0.3 {
		t.Errorf("wrist x = %f, want 0.3", w.X)
	}
	if w.Y <= 0.4 {
		t.Errorf("wrist y = %f, want below palm center (> 0.4)", w.Y)
	}
}

func TestGuardHands(t *testing.T) {
	hands := GuardHands()
	if len(hands) != 2 {
		t.Fatalf("GuardHands() returned %d hands, want 2", len(hands))
	}
	if hands[0].Handedness != "Left" || hands[1].Handedness != "Right" {
		t.Errorf("handedness = %q, %q; want Left, Right",
			hands[0].Handedness, hands[1].Handedness)
	}
	for _, h := range hands {
		if h.WristPos().Y >= 0.5 {
			t.Errorf("%s wrist y = %f, want raised above mid-frame",
				h.Handedness, h.WristPos().Y)
		}
	}
}
