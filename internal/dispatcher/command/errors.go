package command

import "errors"

// ErrParse is returned for a keystroke the current pending sequence
// cannot extend (spec §7's parse-error row: the sequence resets, the
// keystroke is otherwise discarded).
var ErrParse = errors.New("command: unrecognized key sequence")
