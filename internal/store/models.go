package store

import "time"

// Activity is the immutable summary of one imported session. It is
// produced once at import time and never mutated by the metrics engine.
type Activity struct {
	ID              int64     `db:"id"`
	FitFileHash     string    `db:"fit_file_hash"`
	FitFilePath     string    `db:"fit_file_path"`
	StartTime       time.Time `db:"start_time"`
	Kind            string    `db:"kind"` // run, cycle, swim, row, strength, ...
	Source          *string   `db:"source"`
	Title           string    `db:"title"`
	DurationSeconds float64   `db:"duration_seconds"`
	DistanceMeters  *float64  `db:"distance_meters"`
	AvgSpeedMps     *float64  `db:"avg_speed_mps"`
	MaxSpeedMps     *float64  `db:"max_speed_mps"`
	TotalAscentM    *float64  `db:"total_ascent_m"`
	TotalDescentM   *float64  `db:"total_descent_m"`
	AvgHR           *float64  `db:"avg_hr"`
	MaxHR           *float64  `db:"max_hr"`
	AvgPower        *float64  `db:"avg_power"`
	MaxPower        *float64  `db:"max_power"`
	NormalizedPower *float64  `db:"normalized_power"`
	AvgCadence      *float64  `db:"avg_cadence"`
	Calories        *int      `db:"calories"`
	SampleIntervalS int       `db:"sample_interval_s"` // seconds between samples
}

// Profile is a time-versioned snapshot of the athlete's thresholds. The
// current profile is the newest row whose effective_from is not in the
// future; the engine treats it as read-only input.
type Profile struct {
	ID                 int64     `db:"id"`
	FTPWatts           int       `db:"ftp"`
	LTHR               int       `db:"lthr"`
	MaxHR              int       `db:"max_hr"`
	RestingHR          int       `db:"resting_hr"`
	ThresholdPaceMinKm float64   `db:"threshold_pace_minkm"` // min/km
	SwimThresholdPace  float64   `db:"swim_threshold_pace"`  // min/100m
	WeightKg           float64   `db:"weight_kg"`
	EffectiveFrom      time.Time `db:"effective_from"`
}

// DefaultProfile returns sensible thresholds when none are configured.
func DefaultProfile() Profile {
	return Profile{
		FTPWatts:           200,
		LTHR:               165,
		MaxHR:              185,
		RestingHR:          50,
		ThresholdPaceMinKm: 5.0,
		SwimThresholdPace:  2.0,
		WeightKg:           70.0,
	}
}

// ActivityMetrics holds the computed metric bundle, one-to-one with an
// activity. Recomputed wholesale whenever thresholds or samples change.
type ActivityMetrics struct {
	ActivityID      int64   `db:"activity_id"`
	TSS             float64 `db:"tss"`
	TSSMethod       string  `db:"tss_method"`
	IntensityFactor float64 `db:"intensity_factor"`

	EfficiencyFactor *float64 `db:"efficiency_factor"`
	VariabilityIndex *float64 `db:"variability_index"`

	PeakPower5s    *float64 `db:"peak_power_5s"`
	PeakPower1Min  *float64 `db:"peak_power_1min"`
	PeakPower5Min  *float64 `db:"peak_power_5min"`
	PeakPower20Min *float64 `db:"peak_power_20min"`
	PeakPower4Min  *float64 `db:"peak_power_4min"`
	PeakPower30Min *float64 `db:"peak_power_30min"`
	PeakPower60Min *float64 `db:"peak_power_60min"`

	Rowing500mTime *float64 `db:"rowing_500m_time"`
	Rowing1kTime   *float64 `db:"rowing_1k_time"`
	Rowing2kTime   *float64 `db:"rowing_2k_time"`
	Rowing5kTime   *float64 `db:"rowing_5k_time"`
	Rowing10kTime  *float64 `db:"rowing_10k_time"`

	Rowing1MinDistance  *float64 `db:"rowing_1min_distance"`
	Rowing4MinDistance  *float64 `db:"rowing_4min_distance"`
	Rowing10MinDistance *float64 `db:"rowing_10min_distance"`
	Rowing20MinDistance *float64 `db:"rowing_20min_distance"`
	Rowing30MinDistance *float64 `db:"rowing_30min_distance"`
	Rowing60MinDistance *float64 `db:"rowing_60min_distance"`
}

// DailyMetric is one calendar day of the training load series, keyed by
// date. The stored sequence has no calendar gaps.
type DailyMetric struct {
	Date           string  `db:"date"` // YYYY-MM-DD
	TotalTSS       float64 `db:"total_tss"`
	ActivityCount  int     `db:"activity_count"`
	TotalDurationS float64 `db:"total_duration_s"`
	TotalDistanceM float64 `db:"total_distance_m"`

	CTL float64 `db:"ctl"`
	ATL float64 `db:"atl"`
	TSB float64 `db:"tsb"`

	TSS7Day  float64 `db:"tss_7day"`
	TSS30Day float64 `db:"tss_30day"`
	TSS90Day float64 `db:"tss_90day"`

	ACWR     *float64 `db:"acwr"`
	Monotony *float64 `db:"monotony"`
	Strain   *float64 `db:"strain"`
}

// PowerSample is one point of an activity's power-over-time trace.
type PowerSample struct {
	ActivityID int64   `db:"activity_id"`
	TimeOffset int     `db:"time_offset"` // seconds from start
	Watts      float64 `db:"watts"`
}

// TraceSample is one point of an activity's cumulative distance trace.
type TraceSample struct {
	ActivityID int64   `db:"activity_id"`
	TimeOffset float64 `db:"time_offset"` // seconds from start
	DistanceM  float64 `db:"distance_m"`  // cumulative meters
}

// DailyTotal is the per-day aggregate of stored activities, the input to
// the load series rebuild.
type DailyTotal struct {
	Day       string  `db:"day"` // YYYY-MM-DD
	TSS       float64 `db:"tss"`
	Count     int     `db:"count"`
	DurationS float64 `db:"duration_s"`
	DistanceM float64 `db:"distance_m"`
}

// PeakPowerRow is one activity's stored peak powers, used to assemble the
// aggregated power curve over a lookback window.
type PeakPowerRow struct {
	ActivityID     int64
	ActivityDate   string // YYYY-MM-DD
	PeakPower5s    *float64
	PeakPower1Min  *float64
	PeakPower5Min  *float64
	PeakPower20Min *float64
}
