package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrInvalidCoordinateFormat = errors.New("invalid coordinate format")
	ErrCoordinateOutOfRange    = errors.New("coordinate out of range")
	ErrTileNotFound            = errors.New("tile not found")
	ErrUnknownTileType         = errors.New("unknown tile type")
)
