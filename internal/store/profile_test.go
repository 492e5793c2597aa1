package store

import (
	"testing"
	"time"
)

func TestCurrentProfile_DefaultsWhenEmpty(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}

	want := DefaultProfile()
	if p.FTPWatts != want.FTPWatts || p.LTHR != want.LTHR || p.WeightKg != want.WeightKg {
		t.Errorf("got %+v, want defaults %+v", p, want)
	}
}

func TestSaveProfile_BecomesCurrent(t *testing.T) {
	db := setupTestDB(t)

	p := &Profile{
		FTPWatts:           265,
		LTHR:               170,
		MaxHR:              190,
		RestingHR:          48,
		ThresholdPaceMinKm: 4.5,
		SwimThresholdPace:  1.9,
		WeightKg:           72,
		EffectiveFrom:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	id, err := db.SaveProfile(p)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}

	got, err := db.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if got.FTPWatts != 265 || got.ThresholdPaceMinKm != 4.5 {
		t.Errorf("got %+v, want the saved profile", got)
	}
}

func TestCurrentProfile_NewestVersionWins(t *testing.T) {
	db := setupTestDB(t)

	older := &Profile{FTPWatts: 240, EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &Profile{FTPWatts: 260, EffectiveFrom: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	if _, err := db.SaveProfile(older); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if _, err := db.SaveProfile(newer); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := db.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if got.FTPWatts != 260 {
		t.Errorf("FTPWatts = %d, want the newer version 260", got.FTPWatts)
	}
}

func TestCurrentProfile_IgnoresFutureVersions(t *testing.T) {
	db := setupTestDB(t)

	current := &Profile{FTPWatts: 250, EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	future := &Profile{FTPWatts: 300, EffectiveFrom: time.Now().AddDate(1, 0, 0)}

	if _, err := db.SaveProfile(current); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if _, err := db.SaveProfile(future); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := db.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if got.FTPWatts != 250 {
		t.Errorf("FTPWatts = %d, want 250; future versions must not apply yet", got.FTPWatts)
	}
}
