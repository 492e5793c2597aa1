package store

import (
	"testing"
	"time"
)

func TestSaveActivity_Roundtrip(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)
	a := testActivity("abc123", start)
	a.AvgHR = floatPtr(148)
	a.NormalizedPower = floatPtr(215)

	id, err := db.SaveActivity(a)
	if err != nil {
		t.Fatalf("SaveActivity failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}
	if a.ID != id {
		t.Errorf("activity ID not set on save: %d vs %d", a.ID, id)
	}

	got, err := db.GetActivity(id)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.FitFileHash != "abc123" {
		t.Errorf("FitFileHash = %q, want abc123", got.FitFileHash)
	}
	if !got.StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, start)
	}
	if got.Title != "Morning Ride" {
		t.Errorf("Title = %q, want Morning Ride", got.Title)
	}
	if got.AvgHR == nil || *got.AvgHR != 148 {
		t.Errorf("AvgHR = %v, want 148", got.AvgHR)
	}
	if got.NormalizedPower == nil || *got.NormalizedPower != 215 {
		t.Errorf("NormalizedPower = %v, want 215", got.NormalizedPower)
	}
	if got.MaxPower != nil {
		t.Errorf("MaxPower = %v, want nil", *got.MaxPower)
	}
}

func TestSaveActivity_UpsertsByHash(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)
	a := testActivity("samehash", start)
	id1, err := db.SaveActivity(a)
	if err != nil {
		t.Fatalf("first SaveActivity failed: %v", err)
	}

	a2 := testActivity("samehash", start)
	a2.Title = "Renamed Ride"
	id2, err := db.SaveActivity(a2)
	if err != nil {
		t.Fatalf("second SaveActivity failed: %v", err)
	}

	if id1 != id2 {
		t.Errorf("same hash produced two ids: %d and %d", id1, id2)
	}

	count, err := db.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	got, err := db.GetActivity(id1)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.Title != "Renamed Ride" {
		t.Errorf("Title = %q, want the updated title", got.Title)
	}
}

func TestHasActivityHash(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.SaveActivity(testActivity("known", time.Now().UTC())); err != nil {
		t.Fatalf("SaveActivity failed: %v", err)
	}

	has, err := db.HasActivityHash("known")
	if err != nil {
		t.Fatalf("HasActivityHash failed: %v", err)
	}
	if !has {
		t.Error("expected known hash to be found")
	}

	has, err = db.HasActivityHash("unknown")
	if err != nil {
		t.Fatalf("HasActivityHash failed: %v", err)
	}
	if has {
		t.Error("unknown hash should not be found")
	}
}

func TestGetActivity_NotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetActivity(42); err != ErrActivityNotFound {
		t.Errorf("err = %v, want ErrActivityNotFound", err)
	}
}

func TestGetRecentActivities_NewestFirst(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a := testActivity(string(rune('a'+i)), base.AddDate(0, 0, i))
		if _, err := db.SaveActivity(a); err != nil {
			t.Fatalf("SaveActivity failed: %v", err)
		}
	}

	recent, err := db.GetRecentActivities(3)
	if err != nil {
		t.Fatalf("GetRecentActivities failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d activities, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].StartTime.After(recent[i-1].StartTime) {
			t.Error("recent activities are not newest-first")
		}
	}
	if !recent[0].StartTime.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("first result starts %v, want the newest activity", recent[0].StartTime)
	}
}

func TestGetActivitiesPage(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a := testActivity(string(rune('a'+i)), base.AddDate(0, 0, i))
		if _, err := db.SaveActivity(a); err != nil {
			t.Fatalf("SaveActivity failed: %v", err)
		}
	}

	page, err := db.GetActivitiesPage(2, 2)
	if err != nil {
		t.Fatalf("GetActivitiesPage failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d activities, want 2", len(page))
	}
	// Newest-first, skipping the two most recent days.
	if !page[0].StartTime.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("page starts at %v, want day 2", page[0].StartTime)
	}
}

func TestGetAllActivities_OldestFirst(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 2; i >= 0; i-- {
		a := testActivity(string(rune('a'+i)), base.AddDate(0, 0, i))
		if _, err := db.SaveActivity(a); err != nil {
			t.Fatalf("SaveActivity failed: %v", err)
		}
	}

	all, err := db.GetAllActivities()
	if err != nil {
		t.Fatalf("GetAllActivities failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d activities, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartTime.Before(all[i-1].StartTime) {
			t.Error("activities are not in ascending start-time order")
		}
	}
}
