package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Activities (summary data parsed from FIT files)
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fit_file_hash TEXT NOT NULL UNIQUE,
			fit_file_path TEXT,
			start_time TEXT NOT NULL,
			kind TEXT NOT NULL,
			source TEXT,
			title TEXT,
			duration_seconds REAL NOT NULL,
			distance_meters REAL,
			avg_speed_mps REAL,
			max_speed_mps REAL,
			total_ascent_m REAL,
			total_descent_m REAL,
			avg_hr REAL,
			max_hr REAL,
			avg_power REAL,
			max_power REAL,
			normalized_power REAL,
			avg_cadence REAL,
			calories INTEGER,
			sample_interval_s INTEGER NOT NULL DEFAULT 1,
			imported_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_kind ON activities(kind)`,

		// Power samples (power-over-time trace for cycling and rowing)
		`CREATE TABLE IF NOT EXISTS power_samples (
			activity_id INTEGER NOT NULL,
			time_offset INTEGER NOT NULL,
			watts REAL NOT NULL,
			PRIMARY KEY (activity_id, time_offset),
			FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE
		)`,

		// Distance samples (cumulative distance trace for rowing efforts)
		`CREATE TABLE IF NOT EXISTS trace_samples (
			activity_id INTEGER NOT NULL,
			time_offset REAL NOT NULL,
			distance_m REAL NOT NULL,
			PRIMARY KEY (activity_id, time_offset),
			FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE
		)`,

		// Computed per-activity metrics (one row per activity)
		`CREATE TABLE IF NOT EXISTS activity_metrics (
			activity_id INTEGER PRIMARY KEY,
			tss REAL NOT NULL DEFAULT 0,
			tss_method TEXT NOT NULL DEFAULT 'duration',
			intensity_factor REAL NOT NULL DEFAULT 0,
			efficiency_factor REAL,
			variability_index REAL,
			peak_power_5s REAL,
			peak_power_1min REAL,
			peak_power_5min REAL,
			peak_power_20min REAL,
			peak_power_4min REAL,
			peak_power_30min REAL,
			peak_power_60min REAL,
			rowing_500m_time REAL,
			rowing_1k_time REAL,
			rowing_2k_time REAL,
			rowing_5k_time REAL,
			rowing_10k_time REAL,
			rowing_1min_distance REAL,
			rowing_4min_distance REAL,
			rowing_10min_distance REAL,
			rowing_20min_distance REAL,
			rowing_30min_distance REAL,
			rowing_60min_distance REAL,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE
		)`,

		// Daily training load series (one row per calendar day, no gaps)
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			date TEXT PRIMARY KEY,
			total_tss REAL NOT NULL DEFAULT 0,
			activity_count INTEGER NOT NULL DEFAULT 0,
			total_duration_s REAL NOT NULL DEFAULT 0,
			total_distance_m REAL NOT NULL DEFAULT 0,
			ctl REAL NOT NULL DEFAULT 0,
			atl REAL NOT NULL DEFAULT 0,
			tsb REAL NOT NULL DEFAULT 0,
			tss_7day REAL NOT NULL DEFAULT 0,
			tss_30day REAL NOT NULL DEFAULT 0,
			tss_90day REAL NOT NULL DEFAULT 0,
			acwr REAL,
			monotony REAL,
			strain REAL,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Threshold profiles (time-versioned; newest effective row is current)
		`CREATE TABLE IF NOT EXISTS threshold_profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ftp INTEGER NOT NULL DEFAULT 200,
			lthr INTEGER NOT NULL DEFAULT 165,
			max_hr INTEGER NOT NULL DEFAULT 185,
			resting_hr INTEGER NOT NULL DEFAULT 50,
			threshold_pace_minkm REAL NOT NULL DEFAULT 5.0,
			swim_threshold_pace REAL NOT NULL DEFAULT 2.0,
			weight_kg REAL NOT NULL DEFAULT 70.0,
			effective_from TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_effective_from ON threshold_profiles(effective_from)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
