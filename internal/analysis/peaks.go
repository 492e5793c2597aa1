package analysis

import "math"

// Standard peak power window durations in seconds.
const (
	Window5s    = 5
	Window1Min  = 60
	Window4Min  = 240
	Window5Min  = 300
	Window20Min = 1200
	Window30Min = 1800
	Window60Min = 3600
)

// PeakWindows are the window durations tracked for every power activity.
var PeakWindows = []int{Window5s, Window1Min, Window5Min, Window20Min}

// RowingWindows are the extra durations tracked for rowing, matching the
// standard erg test pieces.
var RowingWindows = []int{Window4Min, Window30Min, Window60Min}

// npWindowSamples is Normalized Power's rolling window. Note this counts
// samples, not seconds: a 3 s-interval ergometer gets a 90-second window
// here while peak power windows scale by the interval. Preserved as-is.
const npWindowSamples = 30

// PeakPower returns the highest average power sustained over a window of
// windowSeconds, given the seconds between samples (1 for most head units,
// 3 for some ergometers). Returns nil when the activity is shorter than
// the window.
func PeakPower(samples []float64, windowSeconds, sampleInterval int) *float64 {
	if sampleInterval <= 0 {
		sampleInterval = 1
	}
	k := windowSeconds / sampleInterval
	if k <= 0 || len(samples) < k {
		return nil
	}

	var sum float64
	for i := 0; i < k; i++ {
		sum += samples[i]
	}
	best := sum

	for i := k; i < len(samples); i++ {
		sum += samples[i] - samples[i-k]
		if sum > best {
			best = sum
		}
	}

	peak := round1(best / float64(k))
	return &peak
}

// NormalizedPower computes the 4th-power-weighted average that emphasizes
// variable efforts: rolling 30-sample averages raised to the 4th power,
// averaged, then 4th-rooted. Returns nil with fewer than 30 samples.
func NormalizedPower(samples []float64) *float64 {
	if len(samples) < npWindowSamples {
		return nil
	}

	var sum float64
	for i := 0; i < npWindowSamples; i++ {
		sum += samples[i]
	}

	var fourthTotal float64
	count := 0
	for i := npWindowSamples - 1; i < len(samples); i++ {
		if i >= npWindowSamples {
			sum += samples[i] - samples[i-npWindowSamples]
		}
		rolling := sum / npWindowSamples
		fourthTotal += math.Pow(rolling, 4)
		count++
	}

	np := round1(math.Pow(fourthTotal/float64(count), 0.25))
	return &np
}
