package service

import (
	"time"

	"github.com/bart6114/trainy/internal/analysis"
	"github.com/bart6114/trainy/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store *store.DB
}

// NewQueryService creates a new query service
func NewQueryService(store *store.DB) *QueryService {
	return &QueryService{store: store}
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Today's training load state
	Current         *store.DailyMetric
	FormDescription string
	ACWRDescription string
	MonotonyStatus  string
	StrainStatus    string

	// Load series for charts (oldest first)
	LoadHistory []store.DailyMetric

	// Recent activities
	RecentActivities []ActivityWithMetrics

	// Aggregated power curve over the lookback window
	PowerCurve analysis.PowerCurveResult
	WattsPerKg *float64

	// Hour-long workout projections for the kind the athlete has been
	// doing most
	PlannedForecast []PlannedEstimate
}

// ActivityWithMetrics combines an activity and its computed metrics.
// Metrics is nil when the activity hasn't been computed yet.
type ActivityWithMetrics struct {
	Activity store.Activity
	Metrics  *store.ActivityMetrics

	// EstimatedCalories is a MET-based estimate, filled on the detail
	// view when the device reported no calories
	EstimatedCalories *int
}

// PlannedEstimate projects the training stress and caloric cost of a
// planned session of one workout type.
type PlannedEstimate struct {
	WorkoutType string
	TSS         float64
	Calories    int
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData() (*DashboardData, error) {
	data := &DashboardData{}

	current, err := q.store.GetLatestDailyMetric()
	if err != nil {
		return nil, err
	}
	data.Current = current

	if current != nil {
		data.FormDescription = analysis.FormStatus(current.TSB)
		data.ACWRDescription = analysis.ACWRStatus(current.ACWR)
		data.MonotonyStatus = analysis.MonotonyStatus(current.Monotony)
		data.StrainStatus = analysis.StrainStatus(current.Strain)
	}

	history, err := q.loadHistory(LoadChartDays)
	if err != nil {
		return nil, err
	}
	data.LoadHistory = history

	recent, err := q.getRecentActivities()
	if err != nil {
		return nil, err
	}
	data.RecentActivities = recent

	forecast, err := q.plannedForecast(recent)
	if err != nil {
		return nil, err
	}
	data.PlannedForecast = forecast

	curve, wattsPerKg, err := q.GetPowerCurve(PowerCurveDays)
	if err != nil {
		return nil, err
	}
	data.PowerCurve = curve
	data.WattsPerKg = wattsPerKg

	return data, nil
}

// loadHistory fetches the last n days of the stored load series
func (q *QueryService) loadHistory(days int) ([]store.DailyMetric, error) {
	end := time.Now().Format(dateFormat)
	start := time.Now().AddDate(0, 0, -days).Format(dateFormat)
	return q.store.GetDailyMetrics(start, end)
}

// getRecentActivities fetches recent activities and pairs each with its
// metrics when they exist
func (q *QueryService) getRecentActivities() ([]ActivityWithMetrics, error) {
	activities, err := q.store.GetRecentActivities(RecentActivitiesLimit)
	if err != nil {
		return nil, err
	}

	result := make([]ActivityWithMetrics, len(activities))
	for i := range activities {
		metrics, err := q.store.GetActivityMetrics(activities[i].ID)
		if err != nil {
			return nil, err
		}
		result[i] = ActivityWithMetrics{
			Activity: activities[i],
			Metrics:  metrics,
		}
	}
	return result, nil
}

// forecastTypes are the workout types projected on the dashboard
var forecastTypes = []string{"recovery", "easy", "tempo", "intervals"}

// plannedForecast estimates TSS and calories for an hour-long session of
// each common workout type, assuming the kind the athlete has done most
// recently
func (q *QueryService) plannedForecast(recent []ActivityWithMetrics) ([]PlannedEstimate, error) {
	profile, err := q.store.CurrentProfile()
	if err != nil {
		return nil, err
	}

	kind := dominantKind(recent)
	forecast := make([]PlannedEstimate, 0, len(forecastTypes))
	for _, workoutType := range forecastTypes {
		tss, intensity := analysis.PlannedTSS(analysis.PlannedWorkout{
			DurationSeconds: plannedForecastSeconds,
			ActivityKind:    kind,
			WorkoutType:     workoutType,
		}, profile)
		forecast = append(forecast, PlannedEstimate{
			WorkoutType: workoutType,
			TSS:         tss,
			Calories:    analysis.PredictCalories(plannedForecastSeconds, kind, intensity, profile.WeightKg),
		})
	}
	return forecast, nil
}

// dominantKind picks the most frequent kind among recent activities,
// ties broken by recency
func dominantKind(recent []ActivityWithMetrics) string {
	counts := map[string]int{}
	best, kind := 0, "run"
	for _, am := range recent {
		counts[am.Activity.Kind]++
		if counts[am.Activity.Kind] > best {
			best = counts[am.Activity.Kind]
			kind = am.Activity.Kind
		}
	}
	return kind
}

// GetActivitiesList fetches one page of activities with their metrics
func (q *QueryService) GetActivitiesList(limit, offset int) ([]ActivityWithMetrics, error) {
	activities, err := q.store.GetActivitiesPage(limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]ActivityWithMetrics, len(activities))
	for i := range activities {
		metrics, err := q.store.GetActivityMetrics(activities[i].ID)
		if err != nil {
			return nil, err
		}
		result[i] = ActivityWithMetrics{
			Activity: activities[i],
			Metrics:  metrics,
		}
	}
	return result, nil
}

// GetTotalActivityCount returns the number of stored activities
func (q *QueryService) GetTotalActivityCount() (int, error) {
	return q.store.CountActivities()
}

// GetActivityDetail fetches one activity with its metrics. When the
// device reported no calories, a MET-based estimate fills the gap.
func (q *QueryService) GetActivityDetail(id int64) (*ActivityWithMetrics, error) {
	activity, err := q.store.GetActivity(id)
	if err != nil {
		return nil, err
	}
	metrics, err := q.store.GetActivityMetrics(id)
	if err != nil {
		return nil, err
	}

	detail := &ActivityWithMetrics{Activity: *activity, Metrics: metrics}
	if activity.Calories == nil && metrics != nil {
		profile, err := q.store.CurrentProfile()
		if err != nil {
			return nil, err
		}
		est := analysis.PredictCalories(activity.DurationSeconds, activity.Kind, metrics.IntensityFactor, profile.WeightKg)
		if est > 0 {
			detail.EstimatedCalories = &est
		}
	}
	return detail, nil
}

// GetPowerCurve aggregates the best stored peak powers over the last n
// days and fits the power-duration model to them. The second return is
// the estimated FTP in watts per kilogram, nil when no estimate exists.
func (q *QueryService) GetPowerCurve(days int) (analysis.PowerCurveResult, *float64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(dateFormat)

	rows, err := q.store.GetPeakPowersSince(cutoff)
	if err != nil {
		return analysis.PowerCurveResult{Method: analysis.FitNone}, nil, err
	}

	// Best watts per window across all activities in the lookback
	best := map[int]float64{}
	for _, r := range rows {
		consider(best, analysis.Window5s, r.PeakPower5s)
		consider(best, analysis.Window1Min, r.PeakPower1Min)
		consider(best, analysis.Window5Min, r.PeakPower5Min)
		consider(best, analysis.Window20Min, r.PeakPower20Min)
	}

	var durations, powers []float64
	for _, w := range analysis.PeakWindows {
		if watts, ok := best[w]; ok {
			durations = append(durations, float64(w))
			powers = append(powers, watts)
		}
	}

	var best20 *float64
	if watts, ok := best[analysis.Window20Min]; ok {
		best20 = &watts
	}

	curve := analysis.EstimateFTP(durations, powers, best20)

	var wattsPerKg *float64
	if curve.EFTP != nil {
		profile, err := q.store.CurrentProfile()
		if err == nil && profile.WeightKg > 0 {
			wkg := float64(*curve.EFTP) / profile.WeightKg
			wattsPerKg = &wkg
		}
	}

	return curve, wattsPerKg, nil
}

// consider records watts as the best for the window if higher than the
// current best
func consider(best map[int]float64, window int, watts *float64) {
	if watts == nil {
		return
	}
	if current, ok := best[window]; !ok || *watts > current {
		best[window] = *watts
	}
}
