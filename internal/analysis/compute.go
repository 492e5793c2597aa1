package analysis

import "github.com/bart6114/trainy/internal/store"

// ComputeActivityMetrics calculates the full metric bundle for a single
// activity: TSS, efficiency, peak powers, and rowing best efforts. The
// power and distance traces may be empty; every metric that lacks its
// inputs is simply left nil.
func ComputeActivityMetrics(a store.Activity, p store.Profile, power []float64, trace []TracePoint) store.ActivityMetrics {
	m := store.ActivityMetrics{ActivityID: a.ID}

	tss, method, intensity := EstimateTSS(a, p)
	m.TSS = tss
	m.TSSMethod = method.String()
	m.IntensityFactor = intensity

	m.EfficiencyFactor = EfficiencyFactor(a)
	m.VariabilityIndex = VariabilityIndex(a)

	if (a.Kind == "cycle" || a.Kind == "row") && len(power) > 0 {
		interval := a.SampleIntervalS
		m.PeakPower5s = PeakPower(power, Window5s, interval)
		m.PeakPower1Min = PeakPower(power, Window1Min, interval)
		m.PeakPower5Min = PeakPower(power, Window5Min, interval)
		m.PeakPower20Min = PeakPower(power, Window20Min, interval)

		if a.Kind == "row" {
			m.PeakPower4Min = PeakPower(power, Window4Min, interval)
			m.PeakPower30Min = PeakPower(power, Window30Min, interval)
			m.PeakPower60Min = PeakPower(power, Window60Min, interval)
		}
	}

	if a.Kind == "row" && len(trace) > 0 {
		m.Rowing500mTime = BestEffortTime(trace, 500)
		m.Rowing1kTime = BestEffortTime(trace, 1000)
		m.Rowing2kTime = BestEffortTime(trace, 2000)
		m.Rowing5kTime = BestEffortTime(trace, 5000)
		m.Rowing10kTime = BestEffortTime(trace, 10000)

		m.Rowing1MinDistance = BestEffortDistance(trace, 60)
		m.Rowing4MinDistance = BestEffortDistance(trace, 240)
		m.Rowing10MinDistance = BestEffortDistance(trace, 600)
		m.Rowing20MinDistance = BestEffortDistance(trace, 1200)
		m.Rowing30MinDistance = BestEffortDistance(trace, 1800)
		m.Rowing60MinDistance = BestEffortDistance(trace, 3600)
	}

	return m
}
