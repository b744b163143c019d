package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Calibration samples table - stores recorded hand poses used to
		// tune gesture thresholds per player and camera setup
		`CREATE TABLE IF NOT EXISTS calibration_samples (
			id TEXT PRIMARY KEY,
			pose TEXT NOT NULL CHECK(pose IN ('guard', 'fist', 'open', 'rest')),
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_calibration_samples_pose ON calibration_samples(pose)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
