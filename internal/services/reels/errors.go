package reels

import "errors"

// Repository errors
var (
	ErrReelNotFound    = errors.New("reel not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrVersionConflict = errors.New("version conflict")
)
