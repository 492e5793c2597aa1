package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// EWMA decay factors using the continuous-time exponential form 1 - e^(-1/k)
// with the Coggan/Allen 42-day (chronic) and 7-day (acute) time constants.
var (
	ctlDecay = 1 - math.Exp(-1.0/42)
	atlDecay = 1 - math.Exp(-1.0/7)
)

// ACWRZone classifies the acute:chronic workload ratio for injury risk.
type ACWRZone int

const (
	ZoneUndertrained ACWRZone = iota // < 0.8
	ZoneOptimal                      // 0.8 - 1.3
	ZoneCaution                      // 1.3 - 1.5
	ZoneDanger                       // > 1.5
)

// String returns a display label for the zone.
func (z ACWRZone) String() string {
	switch z {
	case ZoneOptimal:
		return "Optimal"
	case ZoneCaution:
		return "Caution"
	case ZoneDanger:
		return "Danger"
	default:
		return "Undertrained"
	}
}

const (
	// monotonyWindow is the Foster-method window in days.
	monotonyWindow = 7
	// monotonySentinel stands in for mean/stdev when all seven days are
	// identical (stdev 0). An arbitrary but fixed cap.
	monotonySentinel = 10.0
)

// DailyTSS is one day's total training stress, as aggregated per calendar day.
type DailyTSS struct {
	Date time.Time
	TSS  float64
}

// DailyLoadPoint is one computed day of the training load series.
type DailyLoadPoint struct {
	Date     time.Time
	TotalTSS float64
	CTL      float64
	ATL      float64
	TSB      float64
	TSS7Day  float64
	TSS30Day float64
	TSS90Day float64
	ACWR     *float64
	Monotony *float64
	Strain   *float64
}

// BuildLoadSeries folds a sparse set of (date, total TSS) pairs into a
// contiguous daily series of CTL/ATL/TSB and derived risk indicators.
// Days with no entry are filled with TSS 0 before the fold; the EWMA
// recurrence is date-adjacent, and skipping rest days would understate
// decay. Each point depends on the previous point's CTL and ATL, so the
// fold is strictly sequential.
func BuildLoadSeries(daily []DailyTSS, startCTL, startATL float64) []DailyLoadPoint {
	if len(daily) == 0 {
		return nil
	}

	filled := fillDateGaps(daily)

	ctl := startCTL
	atl := startATL
	history := make([]float64, 0, len(filled))
	var sum7, sum30, sum90 float64

	points := make([]DailyLoadPoint, 0, len(filled))
	for _, day := range filled {
		ctl = ctl + (day.TSS-ctl)*ctlDecay
		atl = atl + (day.TSS-atl)*atlDecay

		history = append(history, day.TSS)
		sum7 = slideSum(sum7, history, monotonyWindow)
		sum30 = slideSum(sum30, history, 30)
		sum90 = slideSum(sum90, history, 90)

		acwr, _ := ACWR(atl, ctl)
		monotony, strain := MonotonyStrain(history)

		points = append(points, DailyLoadPoint{
			Date:     day.Date,
			TotalTSS: day.TSS,
			CTL:      round1(ctl),
			ATL:      round1(atl),
			TSB:      round1(ctl - atl),
			TSS7Day:  round1(sum7),
			TSS30Day: round1(sum30),
			TSS90Day: round1(sum90),
			ACWR:     acwr,
			Monotony: monotony,
			Strain:   strain,
		})
	}

	return points
}

// slideSum adds the newest entry and evicts the one leaving the trailing
// window, keeping rolling sums O(1) per day.
func slideSum(sum float64, history []float64, window int) float64 {
	sum += history[len(history)-1]
	if len(history) > window {
		sum -= history[len(history)-1-window]
	}
	return sum
}

// fillDateGaps sorts the input, sums same-day entries, and inserts zero-TSS
// days so the output spans [min date, max date] contiguously.
func fillDateGaps(daily []DailyTSS) []DailyTSS {
	byDay := make(map[string]float64, len(daily))
	var first, last time.Time
	for _, d := range daily {
		day := d.Date.Truncate(24 * time.Hour)
		byDay[day.Format("2006-01-02")] += d.TSS
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}

	var filled []DailyTSS
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		filled = append(filled, DailyTSS{
			Date: d,
			TSS:  byDay[d.Format("2006-01-02")],
		})
	}
	return filled
}

// ACWR returns the acute:chronic workload ratio and its risk zone. The
// ratio is undefined (nil) until chronic load is positive.
func ACWR(atl, ctl float64) (*float64, ACWRZone) {
	if ctl <= 0 {
		return nil, ZoneUndertrained
	}

	ratio := atl / ctl
	zone := ZoneUndertrained
	switch {
	case ratio > 1.5:
		zone = ZoneDanger
	case ratio > 1.3:
		zone = ZoneCaution
	case ratio >= 0.8:
		zone = ZoneOptimal
	}

	rounded := round2(ratio)
	return &rounded, zone
}

// MonotonyStrain computes the Foster monotony and strain indicators over
// the most recent seven days. Both are undefined (nil) until seven
// contiguous daily values exist.
func MonotonyStrain(history []float64) (*float64, *float64) {
	if len(history) < monotonyWindow {
		return nil, nil
	}

	last7 := history[len(history)-monotonyWindow:]
	mean, stdev := stat.MeanStdDev(last7, nil)

	monotony := monotonySentinel
	if stdev != 0 {
		monotony = mean / stdev
	}

	var total float64
	for _, v := range last7 {
		total += v
	}
	strain := math.Round(total * monotony)

	monotony = round2(monotony)
	return &monotony, &strain
}

// FormStatus describes the training stress balance for display.
func FormStatus(tsb float64) string {
	switch {
	case tsb > 25:
		return "Transition"
	case tsb > 5:
		return "Fresh"
	case tsb > -10:
		return "Neutral"
	case tsb > -30:
		return "Tired"
	default:
		return "Exhausted"
	}
}

// ACWRStatus describes the workload ratio for display.
func ACWRStatus(acwr *float64) string {
	switch {
	case acwr == nil:
		return "Unknown"
	case *acwr > 1.5:
		return ZoneDanger.String()
	case *acwr > 1.3:
		return ZoneCaution.String()
	case *acwr >= 0.8:
		return ZoneOptimal.String()
	default:
		return ZoneUndertrained.String()
	}
}

// MonotonyStatus describes day-to-day training sameness for display.
func MonotonyStatus(monotony *float64) string {
	switch {
	case monotony == nil:
		return "Unknown"
	case *monotony > 2.0:
		return "High Risk"
	case *monotony > 1.5:
		return "Elevated"
	default:
		return "Good"
	}
}

// StrainStatus describes combined weekly load for display.
func StrainStatus(strain *float64) string {
	switch {
	case strain == nil:
		return "Unknown"
	case *strain > 6000:
		return "Very High"
	case *strain > 4000:
		return "High"
	case *strain > 2000:
		return "Moderate"
	default:
		return "Low"
	}
}
