package importer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tormoder/fit"

	"github.com/bart6114/trainy/internal/analysis"
	"github.com/bart6114/trainy/internal/store"
)

// ImportedActivity is the result of decoding one FIT file: the summary
// plus the raw sample arrays the metrics engine consumes.
type ImportedActivity struct {
	Activity     store.Activity
	PowerSamples []store.PowerSample
	TraceSamples []store.TraceSample
}

// HashFile returns the sha256 hex digest of a file, the dedupe key used
// to skip already-imported files without decoding them.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading FIT file: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ParseFile decodes a FIT file into an activity summary and its sample
// traces. Power and distance traces are only collected for cycling and
// rowing; other kinds need only the session summary.
func ParseFile(path string) (*ImportedActivity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading FIT file: %w", err)
	}

	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	activityFile, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("%s: not an activity file: %w", filepath.Base(path), err)
	}
	if len(activityFile.Sessions) == 0 {
		return nil, fmt.Errorf("%s: no session message", filepath.Base(path))
	}

	session := activityFile.Sessions[0]
	kind := mapSport(session.Sport, session.SubSport)

	hash := sha256.Sum256(data)

	startTime := session.StartTime
	if startTime.IsZero() || fit.IsBaseTime(startTime) {
		startTime = firstRecordTime(activityFile.Records)
	}
	if startTime.IsZero() {
		return nil, fmt.Errorf("%s: no start time", filepath.Base(path))
	}

	duration := session.GetTotalElapsedTimeScaled()
	if duration <= 0 || math.IsNaN(duration) {
		duration = session.GetTotalTimerTimeScaled()
	}
	if duration <= 0 || math.IsNaN(duration) {
		duration = 0
	}

	a := store.Activity{
		FitFileHash:     hex.EncodeToString(hash[:]),
		FitFilePath:     path,
		StartTime:       startTime.UTC(),
		Kind:            kind,
		Source:          detectSource(filepath.Base(path)),
		Title:           generateTitle(kind, startTime),
		DurationSeconds: duration,
		DistanceMeters:  positive(session.GetTotalDistanceScaled()),
		AvgSpeedMps:     firstPositive(session.GetEnhancedAvgSpeedScaled(), session.GetAvgSpeedScaled()),
		MaxSpeedMps:     firstPositive(session.GetEnhancedMaxSpeedScaled(), session.GetMaxSpeedScaled()),
		TotalAscentM:    positive(float64(validUint16(session.TotalAscent))),
		TotalDescentM:   positive(float64(validUint16(session.TotalDescent))),
		AvgHR:           positive(float64(validUint8(session.AvgHeartRate))),
		MaxHR:           positive(float64(validUint8(session.MaxHeartRate))),
		AvgPower:        positive(float64(validUint16(session.AvgPower))),
		MaxPower:        positive(float64(validUint16(session.MaxPower))),
		NormalizedPower: positive(float64(validUint16(session.NormalizedPower))),
		SampleIntervalS: 1,
	}

	if cal := validUint16(session.TotalCalories); cal > 0 {
		c := int(cal)
		a.Calories = &c
	}

	imported := &ImportedActivity{Activity: a}

	if kind == "cycle" || kind == "row" {
		imported.PowerSamples, imported.Activity.SampleIntervalS = powerTrace(activityFile.Records)
		imported.TraceSamples = distanceTrace(activityFile.Records)

		// Compute NP from samples when the head unit didn't record it.
		if a.NormalizedPower == nil && a.AvgPower != nil && len(imported.PowerSamples) > 0 {
			watts := make([]float64, len(imported.PowerSamples))
			for i, s := range imported.PowerSamples {
				watts[i] = s.Watts
			}
			imported.Activity.NormalizedPower = analysis.NormalizedPower(watts)
		}
	}

	return imported, nil
}

// powerTrace collects the power-over-time samples and detects the sample
// interval (1 s for most head units, 3 s for some ergometers).
func powerTrace(records []*fit.RecordMsg) ([]store.PowerSample, int) {
	var samples []store.PowerSample
	var start time.Time

	for _, rec := range records {
		if rec == nil || rec.Power == math.MaxUint16 {
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() || fit.IsBaseTime(ts) {
			continue
		}
		if start.IsZero() {
			start = ts
		}
		samples = append(samples, store.PowerSample{
			TimeOffset: int(ts.Sub(start).Seconds()),
			Watts:      float64(rec.Power),
		})
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].TimeOffset < samples[j].TimeOffset
	})

	return samples, detectInterval(samples)
}

// detectInterval returns the most common gap between consecutive samples.
func detectInterval(samples []store.PowerSample) int {
	if len(samples) < 2 {
		return 1
	}

	counts := make(map[int]int)
	for i := 1; i < len(samples); i++ {
		delta := samples[i].TimeOffset - samples[i-1].TimeOffset
		if delta > 0 {
			counts[delta]++
		}
	}

	interval, best := 1, 0
	for delta, n := range counts {
		if n > best {
			interval, best = delta, n
		}
	}
	return interval
}

// distanceTrace collects the cumulative (distance, time) series used by
// the best-effort scans.
func distanceTrace(records []*fit.RecordMsg) []store.TraceSample {
	var samples []store.TraceSample
	var start time.Time

	for _, rec := range records {
		if rec == nil {
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() || fit.IsBaseTime(ts) {
			continue
		}
		dist := rec.GetDistanceScaled()
		if math.IsNaN(dist) || dist < 0 {
			continue
		}
		if start.IsZero() {
			start = ts
		}
		samples = append(samples, store.TraceSample{
			TimeOffset: ts.Sub(start).Seconds(),
			DistanceM:  dist,
		})
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].TimeOffset < samples[j].TimeOffset
	})
	return samples
}

func firstRecordTime(records []*fit.RecordMsg) time.Time {
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if !rec.Timestamp.IsZero() && !fit.IsBaseTime(rec.Timestamp) {
			return rec.Timestamp
		}
	}
	return time.Time{}
}

func positive(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

func firstPositive(vs ...float64) *float64 {
	for _, v := range vs {
		if p := positive(v); p != nil {
			return p
		}
	}
	return nil
}

func validUint8(v uint8) uint8 {
	if v == math.MaxUint8 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}
