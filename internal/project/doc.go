// Package project handles reading and writing the single file a Store
// session edits, plus remembering where the cursor was the last time
// that file was open (spec §6 "Persisted state", SPEC_FULL §4 item 1).
// It has no notion of a workspace, multiple open documents, or a file
// graph; those are out of scope.
package project
