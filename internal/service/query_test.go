package service

import (
	"context"
	"testing"
	"time"

	"github.com/bart6114/trainy/internal/analysis"
	"github.com/bart6114/trainy/internal/store"
)

func TestGetPowerCurveFallback(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	id := saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -10), 200)
	// Only a 20-minute peak: too few points for the model fit, so the
	// estimate must fall back to 95% of 20-minute power.
	err = db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID:     id,
		TSS:            100,
		TSSMethod:      "power",
		PeakPower20Min: floatPtr(300),
	})
	if err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}

	q := NewQueryService(db)
	curve, wattsPerKg, err := q.GetPowerCurve(PowerCurveDays)
	if err != nil {
		t.Fatalf("GetPowerCurve: %v", err)
	}

	if curve.Method != analysis.Fit20MinPercent {
		t.Errorf("Method = %v, want %v", curve.Method, analysis.Fit20MinPercent)
	}
	if curve.EFTP == nil {
		t.Fatal("expected eFTP, got nil")
	}
	if *curve.EFTP != 285 {
		t.Errorf("eFTP = %d, want 285", *curve.EFTP)
	}
	if curve.WPrime != nil {
		t.Errorf("WPrime = %v, want nil for fallback", *curve.WPrime)
	}

	// Default profile weight is 70 kg
	if wattsPerKg == nil {
		t.Fatal("expected watts/kg, got nil")
	}
	if delta := *wattsPerKg - 285.0/70.0; delta < -0.001 || delta > 0.001 {
		t.Errorf("watts/kg = %v, want %v", *wattsPerKg, 285.0/70.0)
	}
}

func TestGetPowerCurveTakesBestAcrossActivities(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	id1 := saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -10), 200)
	id2 := saveCycleActivity(t, db, "hash-2", time.Now().AddDate(0, 0, -5), 200)

	if err := db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID: id1, TSS: 100, TSSMethod: "power", PeakPower20Min: floatPtr(280),
	}); err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}
	if err := db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID: id2, TSS: 100, TSSMethod: "power", PeakPower20Min: floatPtr(300),
	}); err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}

	q := NewQueryService(db)
	curve, _, err := q.GetPowerCurve(PowerCurveDays)
	if err != nil {
		t.Fatalf("GetPowerCurve: %v", err)
	}

	if curve.EFTP == nil {
		t.Fatal("expected eFTP, got nil")
	}
	if *curve.EFTP != 285 {
		t.Errorf("eFTP = %d, want 285 (95%% of the better 20-min peak)", *curve.EFTP)
	}
}

func TestGetPowerCurveIgnoresOldActivities(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	id := saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -200), 200)
	if err := db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID: id, TSS: 100, TSSMethod: "power", PeakPower20Min: floatPtr(300),
	}); err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}

	q := NewQueryService(db)
	curve, wattsPerKg, err := q.GetPowerCurve(PowerCurveDays)
	if err != nil {
		t.Fatalf("GetPowerCurve: %v", err)
	}

	if curve.Method != analysis.FitNone {
		t.Errorf("Method = %v, want %v", curve.Method, analysis.FitNone)
	}
	if curve.EFTP != nil {
		t.Errorf("eFTP = %d, want nil outside the lookback window", *curve.EFTP)
	}
	if wattsPerKg != nil {
		t.Errorf("watts/kg = %v, want nil without an estimate", *wattsPerKg)
	}
}

func TestGetDashboardData(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -2), 200)
	saveCycleActivity(t, db, "hash-2", time.Now().AddDate(0, 0, -1), 200)

	svc := NewImportService(db, "")
	if _, err := svc.RecomputeAll(context.Background(), nil); err != nil {
		t.Fatalf("RecomputeAll: %v", err)
	}

	q := NewQueryService(db)
	data, err := q.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData: %v", err)
	}

	if data.Current == nil {
		t.Fatal("expected current daily metric, got nil")
	}
	if data.Current.CTL <= 0 {
		t.Errorf("Current.CTL = %v, want > 0", data.Current.CTL)
	}
	if data.FormDescription == "" {
		t.Error("expected a form description")
	}
	if len(data.LoadHistory) != 2 {
		t.Errorf("LoadHistory has %d days, want 2", len(data.LoadHistory))
	}
	if len(data.RecentActivities) != 2 {
		t.Errorf("RecentActivities has %d entries, want 2", len(data.RecentActivities))
	}
	// Most recent first
	if len(data.RecentActivities) == 2 {
		first := data.RecentActivities[0].Activity.StartTime
		second := data.RecentActivities[1].Activity.StartTime
		if first.Before(second) {
			t.Error("RecentActivities should be ordered newest first")
		}
		if data.RecentActivities[0].Metrics == nil {
			t.Error("expected metrics attached to recent activity")
		}
	}
}

func TestGetDashboardDataPlannedForecast(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -2), 200)
	saveCycleActivity(t, db, "hash-2", time.Now().AddDate(0, 0, -1), 200)

	svc := NewImportService(db, "")
	if _, err := svc.RecomputeAll(context.Background(), nil); err != nil {
		t.Fatalf("RecomputeAll: %v", err)
	}

	q := NewQueryService(db)
	data, err := q.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData: %v", err)
	}

	// Hour-long projections for cycling, the only recent kind, against
	// the default 70 kg profile
	want := []PlannedEstimate{
		{WorkoutType: "recovery", TSS: 36.0, Calories: 420},
		{WorkoutType: "easy", TSS: 36.0, Calories: 420},
		{WorkoutType: "tempo", TSS: 72.2, Calories: 560},
		{WorkoutType: "intervals", TSS: 90.3, Calories: 840},
	}
	if len(data.PlannedForecast) != len(want) {
		t.Fatalf("PlannedForecast has %d entries, want %d", len(data.PlannedForecast), len(want))
	}
	for i, w := range want {
		got := data.PlannedForecast[i]
		if got.WorkoutType != w.WorkoutType {
			t.Errorf("forecast[%d].WorkoutType = %q, want %q", i, got.WorkoutType, w.WorkoutType)
		}
		if got.TSS != w.TSS {
			t.Errorf("forecast[%d] (%s) TSS = %v, want %v", i, w.WorkoutType, got.TSS, w.TSS)
		}
		if got.Calories != w.Calories {
			t.Errorf("forecast[%d] (%s) Calories = %d, want %d", i, w.WorkoutType, got.Calories, w.Calories)
		}
	}
}

func TestGetActivityDetailEstimatesCalories(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	// No device-reported calories on this ride
	id := saveCycleActivity(t, db, "hash-1", time.Now().AddDate(0, 0, -1), 200)
	if err := db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID: id, TSS: 100, TSSMethod: "power", IntensityFactor: 1.0,
	}); err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}

	q := NewQueryService(db)
	detail, err := q.GetActivityDetail(id)
	if err != nil {
		t.Fatalf("GetActivityDetail: %v", err)
	}

	if detail.EstimatedCalories == nil {
		t.Fatal("expected an estimate when the device reported no calories")
	}
	// Vigorous hour of cycling at the default 70 kg: 12 MET x 70 x 1h
	if *detail.EstimatedCalories != 840 {
		t.Errorf("EstimatedCalories = %d, want 840", *detail.EstimatedCalories)
	}
}

func TestGetActivityDetailKeepsReportedCalories(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	calories := 500
	id, err := db.SaveActivity(&store.Activity{
		FitFileHash:     "hash-1",
		StartTime:       time.Now().AddDate(0, 0, -1),
		Kind:            "cycle",
		Title:           "Test Ride",
		DurationSeconds: 3600,
		Calories:        &calories,
		SampleIntervalS: 1,
	})
	if err != nil {
		t.Fatalf("SaveActivity: %v", err)
	}
	if err := db.SaveActivityMetrics(&store.ActivityMetrics{
		ActivityID: id, TSS: 100, TSSMethod: "power", IntensityFactor: 1.0,
	}); err != nil {
		t.Fatalf("SaveActivityMetrics: %v", err)
	}

	q := NewQueryService(db)
	detail, err := q.GetActivityDetail(id)
	if err != nil {
		t.Fatalf("GetActivityDetail: %v", err)
	}

	if detail.EstimatedCalories != nil {
		t.Errorf("EstimatedCalories = %d, want nil when the device reported %d", *detail.EstimatedCalories, calories)
	}
	if detail.Activity.Calories == nil || *detail.Activity.Calories != calories {
		t.Errorf("Calories = %v, want %d", detail.Activity.Calories, calories)
	}
}

func TestGetDashboardDataEmpty(t *testing.T) {
	db, err := store.OpenTest()
	if err != nil {
		t.Fatalf("OpenTest: %v", err)
	}
	defer db.Close()

	q := NewQueryService(db)
	data, err := q.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData: %v", err)
	}

	if data.Current != nil {
		t.Errorf("Current = %+v, want nil for empty store", data.Current)
	}
	if len(data.RecentActivities) != 0 {
		t.Errorf("RecentActivities has %d entries, want 0", len(data.RecentActivities))
	}
	if data.PowerCurve.Method != analysis.FitNone {
		t.Errorf("PowerCurve.Method = %v, want %v", data.PowerCurve.Method, analysis.FitNone)
	}
}
