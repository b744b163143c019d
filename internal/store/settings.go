package store

import (
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Well-known settings keys.
const (
	// KeyGestureTuning holds a JSON-encoded gesture.Config override.
	KeyGestureTuning = "gesture_tuning"
	// KeyMatchTuning holds a JSON-encoded match.Tuning override.
	KeyMatchTuning = "match_tuning"
	// KeyCombatTuning holds a JSON-encoded combat.Tuning override.
	KeyCombatTuning = "combat_tuning"
	// KeyCameraIndex is the preferred camera device index.
	KeyCameraIndex = "camera_index"
	// KeyDetectionEnabled records the tray toggle across restarts.
	KeyDetectionEnabled = "detection_enabled"
)

// SettingsRepository provides typed access to the key-value settings table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes a setting. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// GetBool retrieves a boolean setting, returning def when the key is
// missing or malformed.
func (r *SettingsRepository) GetBool(key string, def bool) bool {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	return r.Set(key, strconv.FormatBool(value))
}

// GetInt retrieves an integer setting, returning def when the key is
// missing or malformed.
func (r *SettingsRepository) GetInt(key string, def int) int {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// SetInt stores an integer setting.
func (r *SettingsRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}

// GetDuration retrieves a duration setting, returning def when the key
// is missing or malformed.
func (r *SettingsRepository) GetDuration(key string, def time.Duration) time.Duration {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

// SetDuration stores a duration setting.
func (r *SettingsRepository) SetDuration(key string, value time.Duration) error {
	return r.Set(key, value.String())
}
