package cache

import "errors"

// errPanicked is handed to waiters when a load function panics.
var errPanicked = errors.New("cache: load panicked")
