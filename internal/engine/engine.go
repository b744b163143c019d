// Package engine provides the game core for Shadowbox: a capture
// goroutine feeding hand landmarks into a single-slot mailbox, and a
// fixed-rate game loop that classifies gestures and advances the match.
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/combat"
	"github.com/ayusman/shadowbox/internal/detector"
	"github.com/ayusman/shadowbox/internal/gesture"
	"github.com/ayusman/shadowbox/internal/match"
)

// IdleTimeout is how long after the last detected motion the capture
// loop drops back to the idle frame rate.
const IdleTimeout = 2 * time.Second

// Config holds configuration options for the engine.
type Config struct {
	CameraID     int
	MotionThresh float64
	Gesture      gesture.Config
	Combat       combat.Tuning
	Match        match.Tuning
}

// DefaultConfig returns an engine configuration with all tuning at
// defaults, reading from camera 0.
func DefaultConfig() Config {
	return Config{
		CameraID:     0,
		MotionThresh: 1.0,
		Gesture:      gesture.DefaultConfig(),
		Combat:       combat.DefaultTuning(),
		Match:        match.DefaultTuning(),
	}
}

// Engine orchestrates capture, detection, gesture classification, and
// the match state machine. Match state is owned by the game loop
// goroutine; everything else talks to it through the hands mailbox, the
// request channel, and published snapshots.
type Engine struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	controller *match.Controller

	hands handMailbox
	frame frameBuffer

	requests chan match.Request

	mu       sync.RWMutex
	enabled  bool
	keyBlock bool
	stopCh   chan struct{}
	wg       sync.WaitGroup

	snapMu   sync.RWMutex
	lastSnap match.Snapshot
	subs     map[chan match.Snapshot]struct{}
}

// New creates a new Engine with the given configuration.
func New(config Config) *Engine {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0
	}

	opponent := combat.NewOpponent(config.Combat, nil)

	e := &Engine{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(config.Gesture),
		controller: match.NewController(config.Match, opponent),
		requests:   make(chan match.Request, 8),
		subs:       make(map[chan match.Snapshot]struct{}),
	}
	e.lastSnap = e.controller.Snapshot()

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		e.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		e.detector = detector.NewMockDetector()
	}

	return e
}

// SetEnabled enables or disables the capture pipeline. The game loop
// keeps ticking either way so menus stay responsive.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether capture is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetDetector sets the hand detector implementation to use.
// Call before Start.
func (e *Engine) SetDetector(d detector.Detector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detector = d
}

// SetCamera sets the camera implementation to use. Call before Start.
func (e *Engine) SetCamera(c capture.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = c
}

// SetKeyboardBlock sets the keyboard block fallback. While held it
// overrides the classified gesture, so the game stays playable when
// hand tracking is unreliable.
func (e *Engine) SetKeyboardBlock(held bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyBlock = held
}

// Request queues a match transition request from the UI. Requests are
// applied by the game loop at the start of its next tick.
func (e *Engine) Request(r match.Request) {
	select {
	case e.requests <- r:
	default:
		log.Printf("engine: dropping request %d, queue full", r)
	}
}

// Snapshot returns the most recently published match snapshot.
func (e *Engine) Snapshot() match.Snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	return e.lastSnap
}

// Subscribe registers a snapshot channel fed once per tick. Slow
// subscribers miss snapshots rather than stalling the game loop.
func (e *Engine) Subscribe() chan match.Snapshot {
	ch := make(chan match.Snapshot, 1)
	e.snapMu.Lock()
	e.subs[ch] = struct{}{}
	e.snapMu.Unlock()
	return ch
}

// Unsubscribe removes a snapshot channel registered with Subscribe and
// closes it, so goroutines ranging over the channel terminate. Calling
// it again with the same channel is a no-op.
func (e *Engine) Unsubscribe(ch chan match.Snapshot) {
	e.snapMu.Lock()
	if _, ok := e.subs[ch]; ok {
		delete(e.subs, ch)
		close(ch)
	}
	e.snapMu.Unlock()
}

// LatestFrame returns the most recent JPEG-encoded camera frame, or nil
// if none has been captured yet.
func (e *Engine) LatestFrame() []byte {
	return e.frame.get()
}

// Start opens the camera and launches the capture and game loops.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}
	e.camera.SetFPS(capture.IdleFPS)

	e.stopCh = make(chan struct{})
	e.wg.Add(2)
	go e.runCapture(e.stopCh)
	go e.runGameLoop(e.stopCh)

	log.Println("Engine started")
	return nil
}

// Stop halts both loops and releases camera and detector resources.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopCh == nil {
		e.mu.Unlock()
		return
	}
	close(e.stopCh)
	e.stopCh = nil
	e.mu.Unlock()

	e.wg.Wait()

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	e.motion.Close()
	if e.detector != nil {
		if err := e.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Engine stopped")
}

// handMailbox is a single-slot handoff from the capture loop to the
// game loop. A new detection overwrites the previous one, so the game
// loop always sees the freshest hands and never queues stale frames.
type handMailbox struct {
	mu    sync.Mutex
	hands []detector.HandLandmarks
	at    time.Time
	fresh bool
}

func (m *handMailbox) put(hands []detector.HandLandmarks, at time.Time) {
	m.mu.Lock()
	m.hands = hands
	m.at = at
	m.fresh = true
	m.mu.Unlock()
}

func (m *handMailbox) take() ([]detector.HandLandmarks, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fresh {
		return nil, time.Time{}, false
	}
	m.fresh = false
	return m.hands, m.at, true
}

// frameBuffer holds the latest JPEG frame for the MJPEG stream.
type frameBuffer struct {
	mu   sync.RWMutex
	data []byte
}

func (b *frameBuffer) set(data []byte) {
	b.mu.Lock()
	b.data = data
	b.mu.Unlock()
}

func (b *frameBuffer) get() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data
}
