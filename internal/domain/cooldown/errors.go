package cooldown

import "errors"

// Sentinel kinds for cooldown errors.
var (
	ErrUnknownPolicy = errors.New("unknown cooldown policy")
)
