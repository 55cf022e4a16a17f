package highlight

import "errors"

// ErrNoLanguage is returned by Update when no grammar has been configured;
// callers treat it the same as an empty span list, never as a fatal error.
var ErrNoLanguage = errors.New("highlight: no language configured")
