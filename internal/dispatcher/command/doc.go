// Package command translates a stream of key.Events into Actions the
// dispatcher's Store can apply (spec §4.6). It owns no State of its own
// beyond the keystrokes still pending a complete command (a count
// prefix, an operator waiting on its motion, a staged "g"); the mode the
// translation runs in, and everything it dispatches, is the Store's.
package command
