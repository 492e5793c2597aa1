package store

// SavePowerSamples replaces the stored power trace for an activity.
func (db *DB) SavePowerSamples(activityID int64, samples []PowerSample) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM power_samples WHERE activity_id = ?`, activityID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO power_samples (activity_id, time_offset, watts) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(activityID, s.TimeOffset, s.Watts); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetPowerSamples retrieves an activity's power trace in time order.
func (db *DB) GetPowerSamples(activityID int64) ([]PowerSample, error) {
	rows, err := db.Query(`
		SELECT activity_id, time_offset, watts
		FROM power_samples
		WHERE activity_id = ?
		ORDER BY time_offset
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []PowerSample
	for rows.Next() {
		var s PowerSample
		if err := rows.Scan(&s.ActivityID, &s.TimeOffset, &s.Watts); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// SaveTraceSamples replaces the stored cumulative distance trace.
func (db *DB) SaveTraceSamples(activityID int64, samples []TraceSample) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trace_samples WHERE activity_id = ?`, activityID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO trace_samples (activity_id, time_offset, distance_m) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(activityID, s.TimeOffset, s.DistanceM); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetTraceSamples retrieves an activity's distance trace in time order.
func (db *DB) GetTraceSamples(activityID int64) ([]TraceSample, error) {
	rows, err := db.Query(`
		SELECT activity_id, time_offset, distance_m
		FROM trace_samples
		WHERE activity_id = ?
		ORDER BY time_offset
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []TraceSample
	for rows.Next() {
		var s TraceSample
		if err := rows.Scan(&s.ActivityID, &s.TimeOffset, &s.DistanceM); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
