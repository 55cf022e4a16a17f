// Package history implements the editor's undo/redo stacks: snapshots of
// { buffer, cursor, parse tree } pushed before every structural edit, with
// push clearing the redo stack, mirroring original_source's history.rs.
package history
