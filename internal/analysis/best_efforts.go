package analysis

import "math"

// TracePoint is one sample from a monotonically non-decreasing cumulative
// (distance, time) trace recorded during an activity.
type TracePoint struct {
	DistanceM float64
	TimeS     float64
}

// nearExactTolerance treats a trace that falls just short of a target as
// the target itself. A recorded 2000 m test piece often ends at 1999.3 m;
// the whole trace is the effort.
const nearExactTolerance = 0.01

// Rowing best-effort targets: distances in meters and times in seconds.
var (
	RowingDistanceTargets = []float64{500, 1000, 2000, 5000, 10000}
	RowingTimeTargets     = []float64{60, 240, 600, 1200, 1800, 3600}
)

// BestEffortTime finds the fastest elapsed time to cover targetM meters
// anywhere within the trace, interpolating between the samples that
// bracket the exact crossing. Returns nil when the trace cannot cover the
// target.
//
// The scan is linear: the end index only ever advances across outer
// iterations, never regresses.
func BestEffortTime(trace []TracePoint, targetM float64) *float64 {
	if len(trace) < 2 || targetM <= 0 {
		return nil
	}

	first, last := trace[0], trace[len(trace)-1]
	total := last.DistanceM - first.DistanceM
	if total < targetM {
		if total >= targetM*(1-nearExactTolerance) {
			t := round1(last.TimeS - first.TimeS)
			return &t
		}
		return nil
	}

	best := math.Inf(1)
	end := 1
	for start := 0; start < len(trace)-1; start++ {
		if end <= start {
			end = start + 1
		}
		need := trace[start].DistanceM + targetM
		for end < len(trace) && trace[end].DistanceM < need {
			end++
		}
		if end >= len(trace) {
			break
		}

		prev, cur := trace[end-1], trace[end]
		crossT := cur.TimeS
		if span := cur.DistanceM - prev.DistanceM; span > 0 {
			frac := (need - prev.DistanceM) / span
			crossT = prev.TimeS + frac*(cur.TimeS-prev.TimeS)
		}
		if elapsed := crossT - trace[start].TimeS; elapsed > 0 && elapsed < best {
			best = elapsed
		}
	}

	if math.IsInf(best, 1) {
		return nil
	}
	t := round1(best)
	return &t
}

// BestEffortDistance is the symmetric scan: the furthest distance covered
// within targetS seconds anywhere in the trace. Returns nil when the trace
// is shorter than the target time.
func BestEffortDistance(trace []TracePoint, targetS float64) *float64 {
	if len(trace) < 2 || targetS <= 0 {
		return nil
	}

	first, last := trace[0], trace[len(trace)-1]
	total := last.TimeS - first.TimeS
	if total < targetS {
		if total >= targetS*(1-nearExactTolerance) {
			d := round1(last.DistanceM - first.DistanceM)
			return &d
		}
		return nil
	}

	best := 0.0
	found := false
	end := 1
	for start := 0; start < len(trace)-1; start++ {
		if end <= start {
			end = start + 1
		}
		need := trace[start].TimeS + targetS
		for end < len(trace) && trace[end].TimeS < need {
			end++
		}
		if end >= len(trace) {
			break
		}

		prev, cur := trace[end-1], trace[end]
		crossD := cur.DistanceM
		if span := cur.TimeS - prev.TimeS; span > 0 {
			frac := (need - prev.TimeS) / span
			crossD = prev.DistanceM + frac*(cur.DistanceM-prev.DistanceM)
		}
		if covered := crossD - trace[start].DistanceM; covered > best {
			best = covered
			found = true
		}
	}

	if !found {
		return nil
	}
	d := round1(best)
	return &d
}
