package dispatcher

import "errors"

// Errors returned by Store.Dispatch. None of these are fatal to the event
// loop (spec §7): a failed Action simply leaves State unchanged and the
// caller logs and continues, with one exception: ErrQuit, which the
// caller's event loop treats as the signal to stop reading Actions.
var (
	// ErrNoPath is returned by Save when State.Path is unset. Per spec §9's
	// Open Question decision, this is a no-op for the caller, not a user
	// visible error; Store.Dispatch still reports it so the adapter layer
	// can decide whether to surface a status message.
	ErrNoPath = errors.New("dispatcher: no path set for save")

	// ErrNoSelection is returned when ActionIntoEditMode or ActionYank
	// arrives without the Selection the action requires.
	ErrNoSelection = errors.New("dispatcher: action requires a selection")

	// ErrQuit is returned by ActionQuit. It is not an error condition; the
	// event loop checks for it specifically to end its read loop.
	ErrQuit = errors.New("dispatcher: quit")
)
