package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tormoder/fit"

	"github.com/bart6114/trainy/internal/store"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fit")
	if err := os.WriteFile(path, []byte("fit data"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}

	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if h1 != h2 {
		t.Error("hashing the same file twice gave different digests")
	}

	if err := os.WriteFile(path, []byte("different data"), 0644); err != nil {
		t.Fatalf("rewriting test file: %v", err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if h1 == h3 {
		t.Error("different contents gave the same digest")
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "nope.fit")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDetectInterval(t *testing.T) {
	at := func(offsets ...int) []store.PowerSample {
		samples := make([]store.PowerSample, len(offsets))
		for i, o := range offsets {
			samples[i] = store.PowerSample{TimeOffset: o, Watts: 200}
		}
		return samples
	}

	tests := []struct {
		name    string
		samples []store.PowerSample
		want    int
	}{
		{"one second", at(0, 1, 2, 3, 4), 1},
		{"erg three seconds", at(0, 3, 6, 9, 12), 3},
		{"mostly one with a dropout", at(0, 1, 2, 10, 11, 12), 1},
		{"single sample", at(0), 1},
		{"empty", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectInterval(tt.samples); got != tt.want {
				t.Errorf("detectInterval = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPowerTrace(t *testing.T) {
	start := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	records := []*fit.RecordMsg{
		{Timestamp: start, Power: 180},
		{Timestamp: start.Add(1 * time.Second), Power: 220},
		{Timestamp: start.Add(2 * time.Second), Power: 65535}, // invalid, dropped
		{Timestamp: start.Add(3 * time.Second), Power: 250},
		{Timestamp: start.Add(4 * time.Second), Power: 240},
		nil,
	}

	samples, interval := powerTrace(records)
	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4 (invalid power dropped)", len(samples))
	}
	if samples[0].TimeOffset != 0 || samples[0].Watts != 180 {
		t.Errorf("first sample = %+v, want offset 0 at 180 W", samples[0])
	}
	if samples[3].TimeOffset != 4 || samples[3].Watts != 240 {
		t.Errorf("last sample = %+v, want offset 4 at 240 W", samples[3])
	}
	if interval != 1 {
		t.Errorf("interval = %d, want 1", interval)
	}
}
