package store

import (
	"database/sql"
	"time"
)

// SaveActivity inserts an activity or updates the existing row with the
// same FIT file hash. Returns the activity's id.
func (db *DB) SaveActivity(a *Activity) (int64, error) {
	_, err := db.Exec(`
		INSERT INTO activities (
			fit_file_hash, fit_file_path, start_time, kind, source, title,
			duration_seconds, distance_meters, avg_speed_mps, max_speed_mps,
			total_ascent_m, total_descent_m, avg_hr, max_hr,
			avg_power, max_power, normalized_power, avg_cadence, calories,
			sample_interval_s
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fit_file_hash) DO UPDATE SET
			fit_file_path = excluded.fit_file_path,
			start_time = excluded.start_time,
			kind = excluded.kind,
			source = excluded.source,
			title = excluded.title,
			duration_seconds = excluded.duration_seconds,
			distance_meters = excluded.distance_meters,
			avg_speed_mps = excluded.avg_speed_mps,
			max_speed_mps = excluded.max_speed_mps,
			total_ascent_m = excluded.total_ascent_m,
			total_descent_m = excluded.total_descent_m,
			avg_hr = excluded.avg_hr,
			max_hr = excluded.max_hr,
			avg_power = excluded.avg_power,
			max_power = excluded.max_power,
			normalized_power = excluded.normalized_power,
			avg_cadence = excluded.avg_cadence,
			calories = excluded.calories,
			sample_interval_s = excluded.sample_interval_s
	`,
		a.FitFileHash, a.FitFilePath, a.StartTime.Format(time.RFC3339), a.Kind, a.Source, a.Title,
		a.DurationSeconds, a.DistanceMeters, a.AvgSpeedMps, a.MaxSpeedMps,
		a.TotalAscentM, a.TotalDescentM, a.AvgHR, a.MaxHR,
		a.AvgPower, a.MaxPower, a.NormalizedPower, a.AvgCadence, a.Calories,
		a.SampleIntervalS,
	)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRow(`SELECT id FROM activities WHERE fit_file_hash = ?`, a.FitFileHash).Scan(&id)
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

// HasActivityHash reports whether an activity with the hash is stored.
func (db *DB) HasActivityHash(hash string) (bool, error) {
	var exists int
	err := db.QueryRow(`SELECT 1 FROM activities WHERE fit_file_hash = ? LIMIT 1`, hash).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetActivity retrieves one activity by id.
func (db *DB) GetActivity(id int64) (*Activity, error) {
	row := db.QueryRow(activitySelect+` WHERE id = ?`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAllActivities retrieves all activities ordered by start time.
func (db *DB) GetAllActivities() ([]Activity, error) {
	rows, err := db.Query(activitySelect + ` ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// GetRecentActivities retrieves the newest activities, most recent first.
func (db *DB) GetRecentActivities(limit int) ([]Activity, error) {
	rows, err := db.Query(activitySelect+` ORDER BY start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// GetActivitiesPage retrieves one page of activities, most recent first.
func (db *DB) GetActivitiesPage(limit, offset int) ([]Activity, error) {
	rows, err := db.Query(activitySelect+` ORDER BY start_time DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// CountActivities returns the number of stored activities.
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	return count, err
}

const activitySelect = `
	SELECT id, fit_file_hash, fit_file_path, start_time, kind, source, title,
		duration_seconds, distance_meters, avg_speed_mps, max_speed_mps,
		total_ascent_m, total_descent_m, avg_hr, max_hr,
		avg_power, max_power, normalized_power, avg_cadence, calories,
		sample_interval_s
	FROM activities`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*Activity, error) {
	var a Activity
	var startTime string
	var path, title sql.NullString

	err := s.Scan(
		&a.ID, &a.FitFileHash, &path, &startTime, &a.Kind, &a.Source, &title,
		&a.DurationSeconds, &a.DistanceMeters, &a.AvgSpeedMps, &a.MaxSpeedMps,
		&a.TotalAscentM, &a.TotalDescentM, &a.AvgHR, &a.MaxHR,
		&a.AvgPower, &a.MaxPower, &a.NormalizedPower, &a.AvgCadence, &a.Calories,
		&a.SampleIntervalS,
	)
	if err != nil {
		return nil, err
	}

	a.FitFilePath = path.String
	a.Title = title.String
	a.StartTime, _ = time.Parse(time.RFC3339, startTime)
	return &a, nil
}
