package buffer

// CharOffset is a 0-based character position counted from the start of the
// buffer. Unlike rope.ByteOffset this counts Unicode code points, matching
// spec's "offsets refer to character positions, not bytes" invariant.
type CharOffset uint64
