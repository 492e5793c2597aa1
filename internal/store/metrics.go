package store

import (
	"database/sql"
)

// SaveActivityMetrics stores the computed metric bundle for an activity,
// replacing any previous row.
func (db *DB) SaveActivityMetrics(m *ActivityMetrics) error {
	_, err := db.Exec(`
		INSERT INTO activity_metrics (
			activity_id, tss, tss_method, intensity_factor,
			efficiency_factor, variability_index,
			peak_power_5s, peak_power_1min, peak_power_5min, peak_power_20min,
			peak_power_4min, peak_power_30min, peak_power_60min,
			rowing_500m_time, rowing_1k_time, rowing_2k_time, rowing_5k_time, rowing_10k_time,
			rowing_1min_distance, rowing_4min_distance, rowing_10min_distance,
			rowing_20min_distance, rowing_30min_distance, rowing_60min_distance,
			computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(activity_id) DO UPDATE SET
			tss = excluded.tss,
			tss_method = excluded.tss_method,
			intensity_factor = excluded.intensity_factor,
			efficiency_factor = excluded.efficiency_factor,
			variability_index = excluded.variability_index,
			peak_power_5s = excluded.peak_power_5s,
			peak_power_1min = excluded.peak_power_1min,
			peak_power_5min = excluded.peak_power_5min,
			peak_power_20min = excluded.peak_power_20min,
			peak_power_4min = excluded.peak_power_4min,
			peak_power_30min = excluded.peak_power_30min,
			peak_power_60min = excluded.peak_power_60min,
			rowing_500m_time = excluded.rowing_500m_time,
			rowing_1k_time = excluded.rowing_1k_time,
			rowing_2k_time = excluded.rowing_2k_time,
			rowing_5k_time = excluded.rowing_5k_time,
			rowing_10k_time = excluded.rowing_10k_time,
			rowing_1min_distance = excluded.rowing_1min_distance,
			rowing_4min_distance = excluded.rowing_4min_distance,
			rowing_10min_distance = excluded.rowing_10min_distance,
			rowing_20min_distance = excluded.rowing_20min_distance,
			rowing_30min_distance = excluded.rowing_30min_distance,
			rowing_60min_distance = excluded.rowing_60min_distance,
			computed_at = CURRENT_TIMESTAMP
	`,
		m.ActivityID, m.TSS, m.TSSMethod, m.IntensityFactor,
		m.EfficiencyFactor, m.VariabilityIndex,
		m.PeakPower5s, m.PeakPower1Min, m.PeakPower5Min, m.PeakPower20Min,
		m.PeakPower4Min, m.PeakPower30Min, m.PeakPower60Min,
		m.Rowing500mTime, m.Rowing1kTime, m.Rowing2kTime, m.Rowing5kTime, m.Rowing10kTime,
		m.Rowing1MinDistance, m.Rowing4MinDistance, m.Rowing10MinDistance,
		m.Rowing20MinDistance, m.Rowing30MinDistance, m.Rowing60MinDistance,
	)
	return err
}

// GetActivityMetrics retrieves the computed metrics for an activity.
// Returns nil when none have been computed yet.
func (db *DB) GetActivityMetrics(activityID int64) (*ActivityMetrics, error) {
	row := db.QueryRow(`
		SELECT activity_id, tss, tss_method, intensity_factor,
			efficiency_factor, variability_index,
			peak_power_5s, peak_power_1min, peak_power_5min, peak_power_20min,
			peak_power_4min, peak_power_30min, peak_power_60min,
			rowing_500m_time, rowing_1k_time, rowing_2k_time, rowing_5k_time, rowing_10k_time,
			rowing_1min_distance, rowing_4min_distance, rowing_10min_distance,
			rowing_20min_distance, rowing_30min_distance, rowing_60min_distance
		FROM activity_metrics
		WHERE activity_id = ?
	`, activityID)

	var m ActivityMetrics
	err := row.Scan(
		&m.ActivityID, &m.TSS, &m.TSSMethod, &m.IntensityFactor,
		&m.EfficiencyFactor, &m.VariabilityIndex,
		&m.PeakPower5s, &m.PeakPower1Min, &m.PeakPower5Min, &m.PeakPower20Min,
		&m.PeakPower4Min, &m.PeakPower30Min, &m.PeakPower60Min,
		&m.Rowing500mTime, &m.Rowing1kTime, &m.Rowing2kTime, &m.Rowing5kTime, &m.Rowing10kTime,
		&m.Rowing1MinDistance, &m.Rowing4MinDistance, &m.Rowing10MinDistance,
		&m.Rowing20MinDistance, &m.Rowing30MinDistance, &m.Rowing60MinDistance,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetDailyTotals aggregates stored activities per calendar day, joining in
// each activity's computed TSS. Days without activities are absent here;
// the load series builder fills them.
func (db *DB) GetDailyTotals() ([]DailyTotal, error) {
	rows, err := db.Query(`
		SELECT DATE(a.start_time) AS day,
			COALESCE(SUM(m.tss), 0) AS tss,
			COUNT(*) AS count,
			COALESCE(SUM(a.duration_seconds), 0) AS duration_s,
			COALESCE(SUM(a.distance_meters), 0) AS distance_m
		FROM activities a
		LEFT JOIN activity_metrics m ON a.id = m.activity_id
		GROUP BY DATE(a.start_time)
		ORDER BY day
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Day, &t.TSS, &t.Count, &t.DurationS, &t.DistanceM); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// UpsertDailyMetric stores one day of the training load series.
func (db *DB) UpsertDailyMetric(m *DailyMetric) error {
	_, err := db.Exec(`
		INSERT INTO daily_metrics (
			date, total_tss, activity_count, total_duration_s, total_distance_m,
			ctl, atl, tsb, tss_7day, tss_30day, tss_90day,
			acwr, monotony, strain, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			total_tss = excluded.total_tss,
			activity_count = excluded.activity_count,
			total_duration_s = excluded.total_duration_s,
			total_distance_m = excluded.total_distance_m,
			ctl = excluded.ctl,
			atl = excluded.atl,
			tsb = excluded.tsb,
			tss_7day = excluded.tss_7day,
			tss_30day = excluded.tss_30day,
			tss_90day = excluded.tss_90day,
			acwr = excluded.acwr,
			monotony = excluded.monotony,
			strain = excluded.strain,
			computed_at = CURRENT_TIMESTAMP
	`,
		m.Date, m.TotalTSS, m.ActivityCount, m.TotalDurationS, m.TotalDistanceM,
		m.CTL, m.ATL, m.TSB, m.TSS7Day, m.TSS30Day, m.TSS90Day,
		m.ACWR, m.Monotony, m.Strain,
	)
	return err
}

// GetDailyMetrics retrieves the stored series between two dates inclusive.
func (db *DB) GetDailyMetrics(start, end string) ([]DailyMetric, error) {
	rows, err := db.Query(dailyMetricSelect+`
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []DailyMetric
	for rows.Next() {
		m, err := scanDailyMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

// GetLatestDailyMetric returns the most recent day of the series, or nil
// when no series has been computed.
func (db *DB) GetLatestDailyMetric() (*DailyMetric, error) {
	row := db.QueryRow(dailyMetricSelect + ` ORDER BY date DESC LIMIT 1`)
	m, err := scanDailyMetric(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetPeakPowersSince returns stored peak powers for activities on or after
// the given date, for assembling the aggregated power curve.
func (db *DB) GetPeakPowersSince(day string) ([]PeakPowerRow, error) {
	rows, err := db.Query(`
		SELECT m.activity_id, DATE(a.start_time),
			m.peak_power_5s, m.peak_power_1min, m.peak_power_5min, m.peak_power_20min
		FROM activity_metrics m
		JOIN activities a ON m.activity_id = a.id
		WHERE DATE(a.start_time) >= ?
		ORDER BY a.start_time
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peaks []PeakPowerRow
	for rows.Next() {
		var p PeakPowerRow
		err := rows.Scan(&p.ActivityID, &p.ActivityDate,
			&p.PeakPower5s, &p.PeakPower1Min, &p.PeakPower5Min, &p.PeakPower20Min)
		if err != nil {
			return nil, err
		}
		peaks = append(peaks, p)
	}
	return peaks, rows.Err()
}

const dailyMetricSelect = `
	SELECT date, total_tss, activity_count, total_duration_s, total_distance_m,
		ctl, atl, tsb, tss_7day, tss_30day, tss_90day,
		acwr, monotony, strain
	FROM daily_metrics`

func scanDailyMetric(s scanner) (*DailyMetric, error) {
	var m DailyMetric
	err := s.Scan(
		&m.Date, &m.TotalTSS, &m.ActivityCount, &m.TotalDurationS, &m.TotalDistanceM,
		&m.CTL, &m.ATL, &m.TSB, &m.TSS7Day, &m.TSS30Day, &m.TSS90Day,
		&m.ACWR, &m.Monotony, &m.Strain,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
