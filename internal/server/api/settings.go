package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/ayusman/shadowbox/internal/store"
)

// DefaultSettingsFlushDelay is how long after the last settings change
// the staged values are written to the database. The options screen
// sends a PUT per slider movement, so writes are coalesced.
const DefaultSettingsFlushDelay = 500 * time.Millisecond

// settingsKeys is the set of keys the API accepts. Values are stored as
// their raw JSON encoding.
var settingsKeys = map[string]bool{
	store.KeyGestureTuning:    true,
	store.KeyMatchTuning:      true,
	store.KeyCombatTuning:     true,
	store.KeyCameraIndex:      true,
	store.KeyDetectionEnabled: true,
}

// SettingsHandler handles HTTP requests for the settings resource.
type SettingsHandler struct {
	store *store.Store

	mu      sync.Mutex
	pending map[string]string
	flush   func(func())
}

// NewSettingsHandler creates a new SettingsHandler. flushDelay controls
// how long writes are debounced before hitting the database.
func NewSettingsHandler(s *store.Store, flushDelay time.Duration) *SettingsHandler {
	return &SettingsHandler{
		store:   s,
		pending: make(map[string]string),
		flush:   debounce.New(flushDelay),
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings and returns all stored settings,
// including staged values that have not been flushed yet.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	response := make(map[string]json.RawMessage)

	settings := h.store.Settings()
	for key := range settingsKeys {
		value, err := settings.Get(key)
		if err != nil {
			continue
		}
		response[key] = json.RawMessage(value)
	}

	h.mu.Lock()
	for key, value := range h.pending {
		response[key] = json.RawMessage(value)
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, response)
}

// put handles PUT /api/settings. The body is a JSON object whose keys
// are a subset of the known settings keys; unknown keys are rejected.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	for key := range req {
		if !settingsKeys[key] {
			writeError(w, http.StatusBadRequest, "Unknown settings key: "+key)
			return
		}
	}

	h.mu.Lock()
	for key, value := range req {
		h.pending[key] = string(value)
	}
	h.mu.Unlock()

	h.flush(h.writePending)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writePending persists staged settings to the database.
func (h *SettingsHandler) writePending() {
	h.mu.Lock()
	staged := h.pending
	h.pending = make(map[string]string)
	h.mu.Unlock()

	settings := h.store.Settings()
	for key, value := range staged {
		if err := settings.Set(key, value); err != nil {
			log.Printf("settings: failed to persist %s: %v", key, err)
		}
	}
}
