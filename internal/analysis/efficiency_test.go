package analysis

import (
	"testing"

	"github.com/bart6114/trainy/internal/store"
)

func TestEfficiencyFactor_CyclePrefersNormalizedPower(t *testing.T) {
	a := store.Activity{
		Kind:            "cycle",
		AvgPower:        floatPtr(200),
		NormalizedPower: floatPtr(220),
		AvgHR:           floatPtr(150),
	}

	ef := EfficiencyFactor(a)
	if ef == nil {
		t.Fatal("expected an efficiency factor")
	}
	if *ef != 1.467 {
		t.Errorf("EF = %v, want 1.467 (220/150)", *ef)
	}
}

func TestEfficiencyFactor_CycleAveragePowerFallback(t *testing.T) {
	a := store.Activity{
		Kind:     "cycle",
		AvgPower: floatPtr(180),
		AvgHR:    floatPtr(150),
	}

	ef := EfficiencyFactor(a)
	if ef == nil {
		t.Fatal("expected an efficiency factor")
	}
	if *ef != 1.2 {
		t.Errorf("EF = %v, want 1.2 (180/150)", *ef)
	}
}

func TestEfficiencyFactor_RunUsesSpeed(t *testing.T) {
	// 3 m/s = 180 m/min at HR 150 -> EF 1.2
	a := store.Activity{
		Kind:        "run",
		AvgSpeedMps: floatPtr(3),
		AvgHR:       floatPtr(150),
	}

	ef := EfficiencyFactor(a)
	if ef == nil {
		t.Fatal("expected an efficiency factor")
	}
	if *ef != 1.2 {
		t.Errorf("EF = %v, want 1.2", *ef)
	}
}

func TestEfficiencyFactor_NilCases(t *testing.T) {
	tests := []struct {
		name string
		a    store.Activity
	}{
		{"no HR", store.Activity{Kind: "cycle", AvgPower: floatPtr(200)}},
		{"zero HR", store.Activity{Kind: "cycle", AvgPower: floatPtr(200), AvgHR: floatPtr(0)}},
		{"cycle without power", store.Activity{Kind: "cycle", AvgHR: floatPtr(150)}},
		{"run without speed", store.Activity{Kind: "run", AvgHR: floatPtr(150)}},
		{"unsupported kind", store.Activity{Kind: "strength", AvgHR: floatPtr(150)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ef := EfficiencyFactor(tt.a); ef != nil {
				t.Errorf("EF = %v, want nil", *ef)
			}
		})
	}
}

func TestVariabilityIndex(t *testing.T) {
	a := store.Activity{
		Kind:            "cycle",
		AvgPower:        floatPtr(200),
		NormalizedPower: floatPtr(230),
	}

	vi := VariabilityIndex(a)
	if vi == nil {
		t.Fatal("expected a variability index")
	}
	if *vi != 1.15 {
		t.Errorf("VI = %v, want 1.15", *vi)
	}
}

func TestVariabilityIndex_CyclingOnly(t *testing.T) {
	a := store.Activity{
		Kind:            "run",
		AvgPower:        floatPtr(200),
		NormalizedPower: floatPtr(230),
	}

	if vi := VariabilityIndex(a); vi != nil {
		t.Errorf("VI = %v, want nil for a run", *vi)
	}
}

func TestVariabilityIndex_MissingPower(t *testing.T) {
	a := store.Activity{Kind: "cycle", AvgPower: floatPtr(200)}

	if vi := VariabilityIndex(a); vi != nil {
		t.Errorf("VI = %v, want nil without normalized power", *vi)
	}
}

func TestVariabilityStatus(t *testing.T) {
	tests := []struct {
		name string
		vi   *float64
		want string
	}{
		{"nil", nil, "N/A"},
		{"steady", floatPtr(1.02), "Very Steady"},
		{"steady boundary", floatPtr(1.05), "Very Steady"},
		{"moderate", floatPtr(1.08), "Moderate"},
		{"variable", floatPtr(1.2), "Variable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VariabilityStatus(tt.vi); got != tt.want {
				t.Errorf("VariabilityStatus = %q, want %q", got, tt.want)
			}
		})
	}
}
