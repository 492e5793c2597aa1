package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.fit", "a.fit", "C.FIT", "notes.txt", "ride.gpx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.fit"), 0755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}

	files, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "C.FIT"),
		filepath.Join(dir, "a.fit"),
		filepath.Join(dir, "b.fit"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListFiles_MissingDirectory(t *testing.T) {
	files, err := ListFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing directory should not error: %v", err)
	}
	if files != nil {
		t.Errorf("got %v, want nil", files)
	}
}
