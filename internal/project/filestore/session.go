package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Session is a small sidecar file recording the last cursor position
// seen for each path that has been edited, keyed by absolute path
// (SPEC_FULL §3/§4). It is read once at startup and rewritten on every
// position update; there is no watcher, matching the rest of the
// module's "load once" configuration posture.
type Session struct {
	mu   sync.Mutex
	path string
	raw  string
}

// OpenSession loads the sidecar at path, creating an empty one in
// memory if it does not exist yet on disk.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path, raw: "{}"}
	data, err := os.ReadFile(path)
	if err == nil && gjson.Valid(string(data)) {
		s.raw = string(data)
	}
	return s, nil
}

// DefaultSessionPath returns the sidecar path under the user's config
// directory, creating the directory if needed.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "keystorm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Position returns the last recorded (row, col) for path, and false if
// nothing has been recorded for it yet.
func (s *Session) Position(path string) (row, col uint32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := escapeKey(path)
	rowResult := gjson.Get(s.raw, key+".row")
	colResult := gjson.Get(s.raw, key+".col")
	if !rowResult.Exists() || !colResult.Exists() {
		return 0, 0, false
	}
	return uint32(rowResult.Uint()), uint32(colResult.Uint()), true
}

// SetPosition records row/col for path and persists the sidecar to
// disk immediately.
func (s *Session) SetPosition(path string, row, col uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := escapeKey(path)
	next, err := sjson.Set(s.raw, key+".row", row)
	if err != nil {
		return err
	}
	next, err = sjson.Set(next, key+".col", col)
	if err != nil {
		return err
	}
	s.raw = next
	return os.WriteFile(s.path, []byte(s.raw), 0o644)
}

// escapeKey makes an absolute path safe to use as a gjson/sjson path
// segment, where '.' would otherwise be read as nested-object
// navigation.
func escapeKey(path string) string {
	r := strings.NewReplacer(".", "\\.", "*", "\\*", "?", "\\?")
	return r.Replace(path)
}
