package engine

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/ayusman/shadowbox/internal/store"
)

// ConfigFromSettings builds an engine configuration from persisted
// settings, starting from DefaultConfig. The tuning keys hold JSON
// objects that are unmarshaled over the corresponding defaults, so a
// stored override may set only the fields it cares about. Malformed
// values are logged and the defaults kept.
func ConfigFromSettings(settings *store.SettingsRepository) Config {
	cfg := DefaultConfig()
	cfg.CameraID = settings.GetInt(store.KeyCameraIndex, cfg.CameraID)
	applyTuning(settings, store.KeyGestureTuning, &cfg.Gesture)
	applyTuning(settings, store.KeyCombatTuning, &cfg.Combat)
	applyTuning(settings, store.KeyMatchTuning, &cfg.Match)
	return cfg
}

func applyTuning[T any](settings *store.SettingsRepository, key string, dst *T) {
	value, err := settings.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("settings: reading %s: %v", key, err)
		}
		return
	}
	merged := *dst
	if err := json.Unmarshal([]byte(value), &merged); err != nil {
		log.Printf("settings: ignoring malformed %s: %v", key, err)
		return
	}
	*dst = merged
}
