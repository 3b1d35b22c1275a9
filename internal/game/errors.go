package game

import (
	"errors"
	"fmt"

	"github.com/pencilmark/pencilmark/internal/board"
)

// DispatchError represents an invariant violation detected while
// dispatching an input event.
//
// These are programming errors, not user mistakes: a click event that
// names a cell the board does not have, or a digit outside 1..9
// reaching the transition functions. They abort the offending event
// and are surfaced to the caller, never silently swallowed. Valid
// no-op input (digit with empty selection, erase with nothing
// selected) is not an error.
type DispatchError struct {
	// Code identifies the error category.
	Code DispatchErrorCode

	// Message is a human-readable description.
	Message string

	// Cell identifies the offending cell, when one is involved.
	Cell board.ID
}

// DispatchErrorCode categorizes dispatch errors.
type DispatchErrorCode string

const (
	// ErrCodeUnknownCell indicates an event referenced a cell identity
	// outside the board.
	ErrCodeUnknownCell DispatchErrorCode = "UNKNOWN_CELL"

	// ErrCodeInvalidDigit indicates a digit outside 1..9 reached the
	// dispatcher.
	ErrCodeInvalidDigit DispatchErrorCode = "INVALID_DIGIT"

	// ErrCodeJournal indicates the session journal rejected a record.
	ErrCodeJournal DispatchErrorCode = "JOURNAL_WRITE"
)

// Error implements the error interface.
func (e *DispatchError) Error() string {
	if e.Code == ErrCodeUnknownCell {
		return fmt.Sprintf("%s: %s (cell=%d)", e.Code, e.Message, e.Cell)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownCellError reports whether err is an unknown-cell violation.
// Uses errors.As to handle wrapped errors.
func IsUnknownCellError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de) && de.Code == ErrCodeUnknownCell
}

// IsInvalidDigitError reports whether err is an invalid-digit violation.
func IsInvalidDigitError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de) && de.Code == ErrCodeInvalidDigit
}

// NewUnknownCellError creates a DispatchError for an out-of-board cell.
func NewUnknownCellError(id board.ID) *DispatchError {
	return &DispatchError{
		Code:    ErrCodeUnknownCell,
		Message: "event references a cell absent from the board",
		Cell:    id,
	}
}

// NewInvalidDigitError creates a DispatchError for a digit outside 1..9.
func NewInvalidDigitError(d uint8) *DispatchError {
	return &DispatchError{
		Code:    ErrCodeInvalidDigit,
		Message: fmt.Sprintf("digit %d out of range 1..9", d),
	}
}
