package analysis

import (
	"math"
	"strings"

	"github.com/bart6114/trainy/internal/store"
)

// hrZoneIF maps a target heart rate zone to an assumed intensity factor.
var hrZoneIF = map[int]float64{
	1: 0.60,
	2: 0.70,
	3: 0.85,
	4: 0.95,
	5: 1.05,
}

// workoutTypeIF is the fallback intensity by workout type.
var workoutTypeIF = map[string]float64{
	"easy":      0.60,
	"recovery":  0.60,
	"long":      0.70,
	"tempo":     0.85,
	"intervals": 0.95,
	"rest":      0,
}

const defaultPlannedIF = 0.70

// PlannedWorkout carries the targets of a workout that hasn't happened yet.
type PlannedWorkout struct {
	DurationSeconds float64
	ActivityKind    string
	WorkoutType     string
	TargetHRZone    *int
	TargetPaceMinKm *float64 // min/km for runs, min/100m for swims
}

// PlannedTSS estimates TSS for a planned workout using the same closing
// formula as completed activities. Intensity comes from target pace when
// the profile has the matching threshold, then the HR zone table, then the
// workout type table.
func PlannedTSS(w PlannedWorkout, p store.Profile) (float64, float64) {
	if w.DurationSeconds <= 0 {
		return 0, 0
	}
	if w.ActivityKind == "rest" || w.WorkoutType == "rest" {
		return 0, 0
	}

	intensity, ok := plannedPaceIF(w, p)
	if !ok && w.TargetHRZone != nil {
		intensity, ok = hrZoneIF[*w.TargetHRZone]
		if !ok {
			intensity = defaultPlannedIF
			ok = true
		}
	}
	if !ok && w.WorkoutType != "" {
		intensity, ok = workoutTypeIF[w.WorkoutType]
		if !ok {
			intensity = defaultPlannedIF
			ok = true
		}
	}
	if !ok {
		intensity = defaultPlannedIF
	}

	return closeTSS(w.DurationSeconds, intensity)
}

// plannedPaceIF derives intensity from a target pace against the profile
// threshold, clamped to [0.5, 1.5].
func plannedPaceIF(w PlannedWorkout, p store.Profile) (float64, bool) {
	if w.TargetPaceMinKm == nil || *w.TargetPaceMinKm <= 0 {
		return 0, false
	}

	var threshold float64
	switch w.ActivityKind {
	case "run":
		threshold = p.ThresholdPaceMinKm
	case "swim":
		threshold = p.SwimThresholdPace
	default:
		return 0, false
	}
	if threshold <= 0 {
		return 0, false
	}

	intensity := threshold / *w.TargetPaceMinKm
	if intensity < 0.5 {
		intensity = 0.5
	}
	if intensity > 1.5 {
		intensity = 1.5
	}
	return intensity, true
}

// metValues by activity kind and intensity band, from the Compendium of
// Physical Activities. Bands: light IF < 0.7, moderate 0.7-0.9, vigorous
// above 0.9.
var metValues = map[string][3]float64{
	"cycle":    {6.0, 8.0, 12.0},
	"run":      {8.0, 10.0, 12.5},
	"swim":     {6.0, 8.0, 10.0},
	"strength": {3.5, 5.0, 6.0},
}

var defaultMET = [3]float64{5.0, 6.5, 8.0}

// PredictCalories estimates caloric expenditure for a workout:
// calories = MET x weight (kg) x hours.
func PredictCalories(durationSeconds float64, kind string, intensityFactor, weightKg float64) int {
	if durationSeconds <= 0 || weightKg <= 0 {
		return 0
	}

	mets, ok := metValues[strings.ToLower(kind)]
	if !ok {
		mets = defaultMET
	}

	met := mets[0]
	switch {
	case intensityFactor > 0.9:
		met = mets[2]
	case intensityFactor >= 0.7:
		met = mets[1]
	}

	hours := durationSeconds / 3600
	return int(math.Round(met * weightKg * hours))
}
