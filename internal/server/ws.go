package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/shadowbox/internal/match"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler serves the game state feed over WebSocket. Snapshots go
// out once per game tick; the client sends commands back as JSON
// messages of the form {"cmd": "..."}.
type StateHandler struct {
	game Game
}

// NewStateHandler creates a new StateHandler for the given game.
func NewStateHandler(g Game) *StateHandler {
	return &StateHandler{game: g}
}

// clientCommand is an inbound message from the presentation client.
type clientCommand struct {
	Cmd string `json:"cmd"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	snapshots := h.game.Subscribe()
	defer h.game.Unsubscribe(snapshots)

	// The client may disconnect mid-block; make sure the fallback does
	// not stay held.
	defer h.game.SetKeyboardBlock(false)

	// Send the current state immediately so the client can draw
	// without waiting for the next tick.
	if err := conn.WriteJSON(h.game.Snapshot()); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.handleCommand(msg)
		}
	}()

	for {
		select {
		case <-done:
			return
		case snap := <-snapshots:
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}

func (h *StateHandler) handleCommand(msg []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		log.Printf("websocket: malformed command: %v", err)
		return
	}

	switch cmd.Cmd {
	case "start":
		h.game.Request(match.RequestStart)
	case "continue":
		h.game.Request(match.RequestContinue)
	case "restart":
		h.game.Request(match.RequestRestart)
	case "block_down":
		h.game.SetKeyboardBlock(true)
	case "block_up":
		h.game.SetKeyboardBlock(false)
	default:
		log.Printf("websocket: unknown command %q", cmd.Cmd)
	}
}
