// Package search computes regex match positions over a Buffer and provides
// wraparound next/prev navigation, grounded on original_source's search.rs
// get_next/get_prev scans.
package search
