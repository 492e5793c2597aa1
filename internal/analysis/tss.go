package analysis

import (
	"math"

	"github.com/bart6114/trainy/internal/store"
)

// Method identifies which input signal a TSS estimate was derived from.
type Method int

const (
	MethodPower Method = iota
	MethodHeartRate
	MethodPace
	MethodDuration
)

// String returns the persisted identifier for the method.
func (m Method) String() string {
	switch m {
	case MethodPower:
		return "power"
	case MethodHeartRate:
		return "hr"
	case MethodPace:
		return "pace"
	default:
		return "duration"
	}
}

// maxPaceIF caps pace-derived intensity factors. Short GPS glitches can
// make a recorded pace absurdly fast; anything beyond 1.5 is noise.
const maxPaceIF = 1.5

// kindIntensity is the assumed intensity factor per activity kind when no
// physiological signal is available.
var kindIntensity = map[string]float64{
	"strength": 0.6,
	"yoga":     0.4,
	"walk":     0.5,
	"cardio":   0.75,
	"hike":     0.65,
	"other":    0.6,
}

// defaultDurationIF is used for kinds missing from kindIntensity.
const defaultDurationIF = 0.6

// EstimateTSS computes the Training Stress Score for an activity, choosing
// the best available method in priority order: power (cycling), heart rate,
// pace (run/swim), then a duration-only fallback. It never fails; sparse or
// invalid inputs fall through to the next method or yield zero.
//
// All methods share the closing formula TSS = hours x IF^2 x 100; only the
// intensity factor derivation differs.
func EstimateTSS(a store.Activity, p store.Profile) (float64, Method, float64) {
	if a.DurationSeconds <= 0 {
		return 0, MethodDuration, 0
	}

	if a.Kind == "cycle" && a.AvgPower != nil && *a.AvgPower > 0 {
		tss, intensity := powerTSS(a, p)
		return tss, MethodPower, intensity
	}

	if a.AvgHR != nil && *a.AvgHR > 0 {
		tss, intensity := heartRateTSS(a, p)
		return tss, MethodHeartRate, intensity
	}

	if a.Kind == "run" && a.DistanceMeters != nil && *a.DistanceMeters > 0 {
		tss, intensity := paceTSS(a, p.ThresholdPaceMinKm, *a.DistanceMeters/1000)
		return tss, MethodPace, intensity
	}

	if a.Kind == "swim" && a.DistanceMeters != nil && *a.DistanceMeters > 0 {
		tss, intensity := paceTSS(a, p.SwimThresholdPace, *a.DistanceMeters/100)
		return tss, MethodPace, intensity
	}

	tss, intensity := durationTSS(a)
	return tss, MethodDuration, intensity
}

// powerTSS uses normalized power when present, average power otherwise.
func powerTSS(a store.Activity, p store.Profile) (float64, float64) {
	if p.FTPWatts <= 0 {
		return 0, 0
	}

	power := a.AvgPower
	if a.NormalizedPower != nil && *a.NormalizedPower > 0 {
		power = a.NormalizedPower
	}
	if power == nil || *power <= 0 {
		return 0, 0
	}

	intensity := *power / float64(p.FTPWatts)
	return closeTSS(a.DurationSeconds, intensity)
}

func heartRateTSS(a store.Activity, p store.Profile) (float64, float64) {
	if p.LTHR <= 0 {
		return 0, 0
	}

	intensity := *a.AvgHR / float64(p.LTHR)
	return closeTSS(a.DurationSeconds, intensity)
}

// paceTSS compares actual pace against the threshold pace in the kind's
// native unit (min/km for running, min/100m for swimming). A faster pace
// means a higher intensity factor.
func paceTSS(a store.Activity, thresholdPace, distanceUnits float64) (float64, float64) {
	if thresholdPace <= 0 || distanceUnits <= 0 {
		return 0, 0
	}

	actualPace := (a.DurationSeconds / 60) / distanceUnits
	if actualPace <= 0 {
		return 0, 0
	}

	intensity := thresholdPace / actualPace
	if intensity > maxPaceIF {
		intensity = maxPaceIF
	}
	return closeTSS(a.DurationSeconds, intensity)
}

func durationTSS(a store.Activity) (float64, float64) {
	intensity := defaultDurationIF
	if v, ok := kindIntensity[a.Kind]; ok {
		intensity = v
	}
	return closeTSS(a.DurationSeconds, intensity)
}

// closeTSS applies the shared formula TSS = hours x IF^2 x 100.
func closeTSS(durationSeconds, intensity float64) (float64, float64) {
	hours := durationSeconds / 3600
	tss := hours * intensity * intensity * 100
	return round1(tss), round3(intensity)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
