package engine

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/gesture"
	"github.com/ayusman/shadowbox/internal/match"
)

// runCapture is the camera-side loop. It reads frames at the current
// camera rate, runs motion detection to switch between idle and fight
// frame rates, runs hand detection while active, and drops the results
// into the mailbox for the game loop.
//
// Capture logic:
// 1. Start at IdleFPS watching for motion
// 2. On motion, switch to FightFPS and run hand detection
// 3. After IdleTimeout with no motion outside a fight, drop back to idle
// 4. During a fight stay at FightFPS regardless of motion
func (e *Engine) runCapture(stop <-chan struct{}) {
	defer e.wg.Done()

	activeMode := false
	lastMotion := time.Now()

	frameInterval := time.Second / time.Duration(capture.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	setRate := func(fps int) {
		e.camera.SetFPS(fps)
		frameInterval = time.Second / time.Duration(fps)
		ticker.Reset(frameInterval)
	}

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.IsEnabled() {
				continue
			}

			frame, err := e.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}
			readAt := time.Now()

			fighting := e.Snapshot().State == match.StateFighting

			motionDetected, _ := e.motion.Detect(frame)
			if motionDetected {
				lastMotion = readAt
			}

			switch {
			case (motionDetected || fighting) && !activeMode:
				activeMode = true
				setRate(capture.FightFPS)
				log.Println("Switched to active capture")
			case activeMode && !fighting && time.Since(lastMotion) > IdleTimeout:
				activeMode = false
				setRate(capture.IdleFPS)
				e.motion.Reset()
				log.Println("Switched to idle capture")
			}

			e.publishFrame(frame)

			if !activeMode || e.detector == nil {
				frame.Close()
				continue
			}

			hands, err := e.detector.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			e.hands.put(hands, readAt)
		}
	}
}

// publishFrame JPEG-encodes the frame into the stream buffer.
func (e *Engine) publishFrame(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	buf.Close()
	e.frame.set(data)
}

// runGameLoop ticks the match at a fixed rate. Each tick it applies
// queued UI requests, turns the freshest hands into a player action,
// advances the controller, and publishes a snapshot.
func (e *Engine) runGameLoop(stop <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(match.TickInterval)
	defer ticker.Stop()

	wasLive := false

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.drainRequests()

			action := gesture.ActionNone
			live := e.controller.InputLive()

			if live {
				if hands, at, ok := e.hands.take(); ok {
					action = e.classifier.Classify(hands, at)
				} else {
					action = e.classifier.Coast(time.Now())
				}
				if e.keyboardBlockHeld() {
					action = gesture.ActionBlock
				}
			} else if wasLive {
				// Leaving the fight: drop any half-built gesture state
				// so nothing carries into the next round.
				e.classifier.Reset()
				e.hands.take()
			}
			wasLive = live

			e.controller.Tick(match.TickInterval, action)
			e.publishSnapshot(e.controller.Snapshot())
		}
	}
}

func (e *Engine) drainRequests() {
	for {
		select {
		case r := <-e.requests:
			e.controller.Request(r)
		default:
			return
		}
	}
}

func (e *Engine) keyboardBlockHeld() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.keyBlock
}

// publishSnapshot records the snapshot and fans it out to subscribers
// without blocking. A subscriber that has not drained its channel gets
// the newest snapshot instead of a backlog.
func (e *Engine) publishSnapshot(s match.Snapshot) {
	e.snapMu.Lock()
	e.lastSnap = s
	for ch := range e.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
	e.snapMu.Unlock()
}
