package puzzlepack

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// PackError is a pack loading or validation failure.
type PackError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

// Pack error codes.
const (
	ErrCodePackNotFound = "PACK_NOT_FOUND"
	ErrCodePackLoad     = "PACK_LOAD"
	ErrCodePackSchema   = "PACK_SCHEMA"
	ErrCodePackPuzzle   = "PACK_PUZZLE"
)

func (e *PackError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPackError reports whether err is a PackError with the given code.
func IsPackError(err error, code string) bool {
	var pe *PackError
	return errors.As(err, &pe) && pe.Code == code
}
