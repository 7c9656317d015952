package roster

import "errors"

// Sentinel kinds for roster loading errors.
var (
	ErrLoadTiles  = errors.New("load tile definitions failed")
	ErrLoadRoster = errors.New("load team roster failed")
)
