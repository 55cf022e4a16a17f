// Package state defines the editor's aggregate document: the tagged Mode
// variant, the Movement/Edit/Action vocabularies that drive the dispatcher,
// the State struct itself, and MeasureSelection, the function that
// resolves a position.Selection against the current State into a character
// Range within the Buffer. See spec §3 and §4.2.
package state
