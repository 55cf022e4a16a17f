package filestore

import (
	"path/filepath"
	"testing"
)

func TestSessionPositionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "session.json")

	s, err := OpenSession(sidecar)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	target := filepath.Join(dir, "file.txt")
	if _, _, ok := s.Position(target); ok {
		t.Fatal("Position should report not found before any SetPosition")
	}

	if err := s.SetPosition(target, 12, 4); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	row, col, ok := s.Position(target)
	if !ok || row != 12 || col != 4 {
		t.Fatalf("Position = (%d, %d, %v), want (12, 4, true)", row, col, ok)
	}

	reopened, err := OpenSession(sidecar)
	if err != nil {
		t.Fatalf("OpenSession (reload): %v", err)
	}
	row, col, ok = reopened.Position(target)
	if !ok || row != 12 || col != 4 {
		t.Fatalf("Position after reload = (%d, %d, %v), want (12, 4, true)", row, col, ok)
	}
}

func TestSessionPositionWithDottedPath(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSession(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	target := filepath.Join(dir, "a.b.c", "main.go")
	if err := s.SetPosition(target, 3, 7); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	row, col, ok := s.Position(target)
	if !ok || row != 3 || col != 7 {
		t.Fatalf("Position = (%d, %d, %v), want (3, 7, true)", row, col, ok)
	}
}

func TestLoadMissingFileIsEmptyBuffer(t *testing.T) {
	dir := t.TempDir()
	buf, err := Load(filepath.Join(dir, "does-not-exist.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", buf.Len())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	if err := Save(path, "hello\nworld\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := buf.Text(); got != "hello\nworld\n" {
		t.Fatalf("Text() = %q, want %q", got, "hello\nworld\n")
	}
}
