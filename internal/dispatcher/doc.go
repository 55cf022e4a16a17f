// Package dispatcher implements the Store, the single-owner action
// interpreter that applies Actions to State (spec §4.4–§4.7, §5). The
// Store exclusively owns State, History, and the Highlighter; it is the
// only writer in the process, consuming one Action per event-loop
// iteration and leaving State, History, and the Highlighter's parse tree
// mutually consistent before the next Action is read from the channel.
package dispatcher
