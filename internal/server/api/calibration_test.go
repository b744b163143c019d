package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func createSample(t *testing.T, h *CalibrationHandler, pose string) string {
	t.Helper()

	body := `{"pose": "` + pose + `", "data": {"landmarks": []}}`
	req := httptest.NewRequest(http.MethodPost, "/api/calibration/samples", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["id"] == "" {
		t.Fatal("response is missing the sample ID")
	}
	return response["id"]
}

func TestCalibrationHandler_CreateAndList(t *testing.T) {
	h := NewCalibrationHandler(newTestStore(t))

	createSample(t, h, "guard")
	createSample(t, h, "fist")

	req := httptest.NewRequest(http.MethodGet, "/api/calibration/samples", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}

	var response listSamplesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Samples) != 2 {
		t.Errorf("got %d samples, want 2", len(response.Samples))
	}
}

func TestCalibrationHandler_ListFiltersByPose(t *testing.T) {
	h := NewCalibrationHandler(newTestStore(t))

	createSample(t, h, "guard")
	createSample(t, h, "guard")
	createSample(t, h, "fist")

	req := httptest.NewRequest(http.MethodGet, "/api/calibration/samples?pose=guard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var response listSamplesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Samples) != 2 {
		t.Errorf("got %d guard samples, want 2", len(response.Samples))
	}
	for _, s := range response.Samples {
		if s.Pose != "guard" {
			t.Errorf("sample pose = %s, want guard", s.Pose)
		}
	}
}

func TestCalibrationHandler_Delete(t *testing.T) {
	h := NewCalibrationHandler(newTestStore(t))

	id := createSample(t, h, "open")

	req := httptest.NewRequest(http.MethodDelete, "/api/calibration/samples/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	// Deleting again reports not found.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/calibration/samples/"+id, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCalibrationHandler_Validation(t *testing.T) {
	h := NewCalibrationHandler(newTestStore(t))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown pose", `{"pose": "uppercut", "data": {}}`, http.StatusBadRequest},
		{"missing data", `{"pose": "guard"}`, http.StatusBadRequest},
		{"invalid JSON", `{oops`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/calibration/samples", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	t.Run("bad pose filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/calibration/samples?pose=uppercut", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
