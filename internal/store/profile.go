package store

import (
	"database/sql"
	"time"
)

// CurrentProfile returns the newest threshold profile whose effective_from
// is not in the future. Falls back to defaults when none is stored.
func (db *DB) CurrentProfile() (Profile, error) {
	row := db.QueryRow(`
		SELECT id, ftp, lthr, max_hr, resting_hr,
			threshold_pace_minkm, swim_threshold_pace, weight_kg, effective_from
		FROM threshold_profiles
		WHERE effective_from <= DATE('now')
		ORDER BY effective_from DESC, id DESC
		LIMIT 1
	`)

	var p Profile
	var effectiveFrom string
	err := row.Scan(&p.ID, &p.FTPWatts, &p.LTHR, &p.MaxHR, &p.RestingHR,
		&p.ThresholdPaceMinKm, &p.SwimThresholdPace, &p.WeightKg, &effectiveFrom)
	if err == sql.ErrNoRows {
		return DefaultProfile(), nil
	}
	if err != nil {
		return Profile{}, err
	}

	p.EffectiveFrom, _ = time.Parse("2006-01-02", effectiveFrom)
	return p, nil
}

// SaveProfile inserts a new threshold profile version.
func (db *DB) SaveProfile(p *Profile) (int64, error) {
	effectiveFrom := p.EffectiveFrom
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}

	result, err := db.Exec(`
		INSERT INTO threshold_profiles (
			ftp, lthr, max_hr, resting_hr,
			threshold_pace_minkm, swim_threshold_pace, weight_kg, effective_from
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.FTPWatts, p.LTHR, p.MaxHR, p.RestingHR,
		p.ThresholdPaceMinKm, p.SwimThresholdPace, p.WeightKg,
		effectiveFrom.Format("2006-01-02"),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}
