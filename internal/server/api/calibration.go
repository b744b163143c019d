package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/shadowbox/internal/store"
)

// CalibrationHandler handles HTTP requests for calibration samples.
type CalibrationHandler struct {
	store *store.Store
}

// NewCalibrationHandler creates a new CalibrationHandler with the given store.
func NewCalibrationHandler(s *store.Store) *CalibrationHandler {
	return &CalibrationHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/calibration/samples and /api/calibration/samples/{id}
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/calibration/samples")
	id = strings.Trim(id, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case id == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case id != "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type createSampleRequest struct {
	Pose string          `json:"pose"`
	Data json.RawMessage `json:"data"`
}

// Response types

type sampleResponse struct {
	ID        string          `json:"id"`
	Pose      string          `json:"pose"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

// list handles GET /api/calibration/samples with an optional ?pose= filter.
func (h *CalibrationHandler) list(w http.ResponseWriter, r *http.Request) {
	var samples []store.CalibrationSample
	var err error

	if pose := r.URL.Query().Get("pose"); pose != "" {
		if !store.CalibrationPose(pose).Valid() {
			writeError(w, http.StatusBadRequest, "Unknown pose: "+pose)
			return
		}
		samples, err = h.store.Calibration().GetByPose(store.CalibrationPose(pose))
	} else {
		samples, err = h.store.Calibration().List()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}
	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:        s.ID,
			Pose:      string(s.Pose),
			Data:      s.Data,
			CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/calibration/samples.
func (h *CalibrationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !store.CalibrationPose(req.Pose).Valid() {
		writeError(w, http.StatusBadRequest, "Unknown pose: "+req.Pose)
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "Sample data is required")
		return
	}

	id, err := h.store.Calibration().Create(store.CalibrationPose(req.Pose), req.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save sample")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// delete handles DELETE /api/calibration/samples/{id}.
func (h *CalibrationHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Calibration().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Sample not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete sample")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
