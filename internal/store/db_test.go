package store

import (
	"testing"
	"time"
)

// setupTestDB creates an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenTest()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func floatPtr(v float64) *float64 { return &v }

// testActivity builds a minimal ride with a unique hash.
func testActivity(hash string, start time.Time) *Activity {
	return &Activity{
		FitFileHash:     hash,
		FitFilePath:     "/exports/" + hash + ".fit",
		StartTime:       start,
		Kind:            "cycle",
		Title:           "Morning Ride",
		DurationSeconds: 3600,
		DistanceMeters:  floatPtr(30000),
		AvgPower:        floatPtr(200),
		SampleIntervalS: 1,
	}
}
