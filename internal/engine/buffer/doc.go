// Package buffer provides a thread-safe, character-indexed text buffer built
// on top of the rope package. It is the content store for the editor: every
// offset and range the rest of the engine works with (Position, Selection,
// Reactor-derived values) counts Unicode characters, not bytes.
//
// The rope underneath is byte-indexed for storage efficiency; this package
// is the boundary where character coordinates are translated to the byte
// coordinates the rope understands. Conversions walk the affected line(s)
// directly, so they cost time proportional to line length and row distance
// rather than total document size; insert, remove and slice stay sub-linear
// because they delegate straight to the rope.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello\nworld\n")
//	buf.Insert(5, "!") // character offset, not byte offset
//	removed, _ := buf.Remove(buffer.Range{Start: 0, End: 5})
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// write operations acquire an exclusive write lock. Snapshot returns a
// read-only view sharing the underlying rope (ropes are immutable) for
// lock-free concurrent reads.
package buffer
