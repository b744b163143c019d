package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CalibrationPose identifies which reference pose a sample captures.
type CalibrationPose string

const (
	// PoseGuard is both fists raised in front of the face.
	PoseGuard CalibrationPose = "guard"
	// PoseFist is a single closed fist at rest distance.
	PoseFist CalibrationPose = "fist"
	// PoseOpen is a relaxed open hand.
	PoseOpen CalibrationPose = "open"
	// PoseRest is hands down out of frame, used as a negative reference.
	PoseRest CalibrationPose = "rest"
)

// Valid reports whether the pose is one of the known reference poses.
func (p CalibrationPose) Valid() bool {
	switch p {
	case PoseGuard, PoseFist, PoseOpen, PoseRest:
		return true
	}
	return false
}

// CalibrationSample is a recorded hand pose used to tune gesture
// thresholds to a particular player and camera setup.
type CalibrationSample struct {
	ID        string          `json:"id"`
	Pose      CalibrationPose `json:"pose"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// CalibrationRepository provides CRUD operations for calibration samples.
type CalibrationRepository struct {
	db *sql.DB
}

// Calibration returns the calibration repository for this store.
func (s *Store) Calibration() *CalibrationRepository {
	return &CalibrationRepository{db: s.db}
}

// Create inserts a new calibration sample and returns its generated ID.
func (r *CalibrationRepository) Create(pose CalibrationPose, data json.RawMessage) (string, error) {
	if !pose.Valid() {
		return "", fmt.Errorf("unknown calibration pose %q", pose)
	}

	id := uuid.New().String()
	_, err := r.db.Exec(
		`INSERT INTO calibration_samples (id, pose, data) VALUES (?, ?, ?)`,
		id, string(pose), string(data),
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetByPose retrieves all samples recorded for the given pose, oldest first.
func (r *CalibrationRepository) GetByPose(pose CalibrationPose) ([]CalibrationSample, error) {
	rows, err := r.db.Query(
		`SELECT id, pose, data, created_at
		 FROM calibration_samples
		 WHERE pose = ?
		 ORDER BY created_at`,
		string(pose),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSamples(rows)
}

// List retrieves all calibration samples, newest first.
func (r *CalibrationRepository) List() ([]CalibrationSample, error) {
	rows, err := r.db.Query(
		`SELECT id, pose, data, created_at
		 FROM calibration_samples
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSamples(rows)
}

// Delete removes a calibration sample by its ID.
func (r *CalibrationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM calibration_samples WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByPose removes all samples for a pose, returning the count removed.
func (r *CalibrationRepository) DeleteByPose(pose CalibrationPose) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM calibration_samples WHERE pose = ?`, string(pose))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanSamples(rows *sql.Rows) ([]CalibrationSample, error) {
	var samples []CalibrationSample
	for rows.Next() {
		var s CalibrationSample
		var pose, data string
		if err := rows.Scan(&s.ID, &pose, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Pose = CalibrationPose(pose)
		s.Data = json.RawMessage(data)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
