package analysis

import (
	"testing"

	"github.com/bart6114/trainy/internal/store"
)

func testProfile() store.Profile {
	return store.Profile{
		FTPWatts:           250,
		LTHR:               165,
		MaxHR:              185,
		RestingHR:          50,
		ThresholdPaceMinKm: 5.0,
		SwimThresholdPace:  2.0,
		WeightKg:           70,
	}
}

func steadyPower(watts float64, seconds int) []float64 {
	p := make([]float64, seconds)
	for i := range p {
		p[i] = watts
	}
	return p
}

func TestComputeActivityMetrics_Cycle(t *testing.T) {
	a := store.Activity{
		ID:              1,
		Kind:            "cycle",
		DurationSeconds: 3600,
		NormalizedPower: floatPtr(250),
		AvgPower:        floatPtr(240),
		AvgHR:           floatPtr(150),
		SampleIntervalS: 1,
	}
	power := steadyPower(250, 3600)

	m := ComputeActivityMetrics(a, testProfile(), power, nil)

	if m.ActivityID != 1 {
		t.Errorf("ActivityID = %d, want 1", m.ActivityID)
	}
	if m.TSS != 100 {
		t.Errorf("TSS = %v, want 100", m.TSS)
	}
	if m.TSSMethod != "power" {
		t.Errorf("TSSMethod = %q, want power", m.TSSMethod)
	}
	if m.EfficiencyFactor == nil || m.VariabilityIndex == nil {
		t.Error("expected efficiency factor and variability index")
	}

	if m.PeakPower5s == nil || *m.PeakPower5s != 250 {
		t.Errorf("PeakPower5s = %v, want 250", m.PeakPower5s)
	}
	if m.PeakPower20Min == nil || *m.PeakPower20Min != 250 {
		t.Errorf("PeakPower20Min = %v, want 250", m.PeakPower20Min)
	}

	// Rowing-only windows and best efforts stay empty for a ride.
	if m.PeakPower4Min != nil || m.PeakPower30Min != nil || m.PeakPower60Min != nil {
		t.Error("rowing peak windows should be nil for a cycle")
	}
	if m.Rowing2kTime != nil {
		t.Error("rowing best efforts should be nil for a cycle")
	}
}

func TestComputeActivityMetrics_Row(t *testing.T) {
	a := store.Activity{
		ID:              2,
		Kind:            "row",
		DurationSeconds: 3600,
		AvgHR:           floatPtr(165),
		SampleIntervalS: 1,
	}
	power := steadyPower(200, 3600)
	trace := constantRateTrace(2.5, 3600)

	m := ComputeActivityMetrics(a, testProfile(), power, trace)

	if m.TSSMethod != "hr" {
		t.Errorf("TSSMethod = %q, want hr (power method is cycling only)", m.TSSMethod)
	}
	if m.PeakPower4Min == nil || *m.PeakPower4Min != 200 {
		t.Errorf("PeakPower4Min = %v, want 200", m.PeakPower4Min)
	}
	if m.PeakPower60Min == nil || *m.PeakPower60Min != 200 {
		t.Errorf("PeakPower60Min = %v, want 200", m.PeakPower60Min)
	}
	if m.Rowing2kTime == nil || *m.Rowing2kTime != 800 {
		t.Errorf("Rowing2kTime = %v, want 800 (2000m at 2.5 m/s)", m.Rowing2kTime)
	}
	if m.Rowing1MinDistance == nil || *m.Rowing1MinDistance != 150 {
		t.Errorf("Rowing1MinDistance = %v, want 150", m.Rowing1MinDistance)
	}
	// Trace covers 9000m; the 10k target is out of reach and beyond the
	// near-exact tolerance.
	if m.Rowing10kTime != nil {
		t.Errorf("Rowing10kTime = %v, want nil", *m.Rowing10kTime)
	}
}

func TestComputeActivityMetrics_RunGetsNoPowerMetrics(t *testing.T) {
	a := store.Activity{
		ID:              3,
		Kind:            "run",
		DurationSeconds: 1800,
		AvgHR:           floatPtr(160),
		SampleIntervalS: 1,
	}

	m := ComputeActivityMetrics(a, testProfile(), steadyPower(300, 1800), constantRateTrace(3, 1800))

	if m.PeakPower5s != nil {
		t.Error("peak power should be nil for a run even when samples exist")
	}
	if m.Rowing500mTime != nil {
		t.Error("best efforts should be nil for a run")
	}
	if m.TSS <= 0 {
		t.Errorf("TSS = %v, want > 0 from the HR method", m.TSS)
	}
}

func TestComputeActivityMetrics_EmptyTraces(t *testing.T) {
	a := store.Activity{
		ID:              4,
		Kind:            "cycle",
		DurationSeconds: 3600,
		AvgPower:        floatPtr(200),
	}

	m := ComputeActivityMetrics(a, testProfile(), nil, nil)

	if m.TSS <= 0 {
		t.Errorf("TSS = %v, want > 0 from summary power", m.TSS)
	}
	if m.PeakPower5s != nil || m.PeakPower1Min != nil {
		t.Error("peak powers should be nil without a power trace")
	}
}
