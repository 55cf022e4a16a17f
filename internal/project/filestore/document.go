package filestore

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/project"
)

// MaxFileSize bounds Load against accidentally opening something far
// larger than a text editor is meant to hold in memory as a rope.
const MaxFileSize = 64 << 20 // 64 MiB

// Load reads path from disk into a Buffer. A missing file is not an
// error: callers opening a new file by name expect an empty Buffer
// (spec §6).
func Load(path string) (*buffer.Buffer, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return buffer.NewBufferFromString(""), nil
	}
	if err != nil {
		return nil, project.NewPathError("stat", path, err)
	}
	if info.IsDir() {
		return nil, project.NewPathError("open", path, project.ErrIsDirectory)
	}
	if info.Size() > MaxFileSize {
		return nil, project.NewPathError("open", path, project.ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, project.NewPathError("read", path, err)
	}
	if looksBinary(data) {
		return nil, project.NewPathError("open", path, project.ErrBinaryFile)
	}
	return buffer.NewBufferFromString(string(data)), nil
}

// Save writes text to path, creating it if necessary.
func Save(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return project.NewPathError("write", path, err)
	}
	return nil
}

// looksBinary applies the same heuristic as most line-oriented editors:
// a NUL byte in the first few KB means "not text".
func looksBinary(data []byte) bool {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	for _, b := range data[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}
