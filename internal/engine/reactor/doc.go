// Package reactor implements the generation-stamped, type-keyed derived
// value cache described in spec §4.3 and §9: a registry of { type ->
// { generation, value, source } } entries, refreshed by LoadState and read
// through the generic Get/GetUpdate helpers. Grounded on original_source's
// compute.rs Compute/ComputeWithReactor traits, adapted to Go generics
// since Go has no associated-type mechanism: each derivable type registers
// a pair of functions (a Source reader and a Compute step) keyed by its own
// reflect.Type.
package reactor
