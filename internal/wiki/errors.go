package wiki

import "errors"

// ErrInvalidStartURL is returned when the entry point is not an English
// Wikipedia article URL, or names a reserved namespace or media resource.
var ErrInvalidStartURL = errors.New("URL provided is not valid")
