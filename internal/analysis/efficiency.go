package analysis

import "github.com/bart6114/trainy/internal/store"

// EfficiencyFactor tracks aerobic output per heartbeat. For cycling it is
// normalized (or average) power over average HR; for running and swimming
// it is speed in meters per minute over average HR. Returns nil when the
// activity lacks the required signals.
func EfficiencyFactor(a store.Activity) *float64 {
	if a.AvgHR == nil || *a.AvgHR <= 0 {
		return nil
	}
	avgHR := *a.AvgHR

	switch a.Kind {
	case "cycle":
		power := a.AvgPower
		if a.NormalizedPower != nil && *a.NormalizedPower > 0 {
			power = a.NormalizedPower
		}
		if power == nil || *power <= 0 {
			return nil
		}
		ef := round3(*power / avgHR)
		return &ef

	case "run", "swim":
		if a.AvgSpeedMps == nil || *a.AvgSpeedMps <= 0 {
			return nil
		}
		speedMPM := *a.AvgSpeedMps * 60
		ef := round3(speedMPM / avgHR)
		return &ef
	}

	return nil
}

// VariabilityIndex is the ratio of normalized power to average power,
// a measure of pacing steadiness. Cycling only; nil otherwise.
//
// 1.00-1.05 is a very steady ride, above 1.10 a highly variable one.
func VariabilityIndex(a store.Activity) *float64 {
	if a.Kind != "cycle" {
		return nil
	}
	if a.NormalizedPower == nil || a.AvgPower == nil {
		return nil
	}
	if *a.NormalizedPower <= 0 || *a.AvgPower <= 0 {
		return nil
	}

	vi := round3(*a.NormalizedPower / *a.AvgPower)
	return &vi
}

// VariabilityStatus describes a variability index for display.
func VariabilityStatus(vi *float64) string {
	switch {
	case vi == nil:
		return "N/A"
	case *vi <= 1.05:
		return "Very Steady"
	case *vi <= 1.10:
		return "Moderate"
	default:
		return "Variable"
	}
}
