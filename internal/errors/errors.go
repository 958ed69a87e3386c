package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of adventure error.
type ErrorCode string

const (
	ErrValidation          ErrorCode = "VALIDATION"           // bad user input, no state change
	ErrMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"   // story service returned unusable data
	ErrServiceFailure      ErrorCode = "SERVICE_FAILURE"      // transport or provider error
	ErrIllustrationFailure ErrorCode = "ILLUSTRATION_FAILURE" // never surfaced to the player
	ErrBusy                ErrorCode = "BUSY"                 // a request is already in flight
	ErrInvalidTransition   ErrorCode = "INVALID_TRANSITION"   // intent not allowed in the current phase
	ErrMissingCharacter    ErrorCode = "MISSING_CHARACTER"    // playing without a character
	ErrConfig              ErrorCode = "CONFIG"
)

// GameError is a structured error with a code, a message and an optional cause.
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewValidation creates an error for rejected player input.
func NewValidation(msg string) *GameError {
	return &GameError{Code: ErrValidation, Message: msg}
}

// NewMalformedResponse creates an error for a story response that could not be parsed or is missing fields.
func NewMalformedResponse(msg string, cause error) *GameError {
	return &GameError{Code: ErrMalformedResponse, Message: msg, Err: cause}
}

// NewServiceFailure wraps a transport or provider error.
func NewServiceFailure(msg string, cause error) *GameError {
	return &GameError{Code: ErrServiceFailure, Message: msg, Err: cause}
}

// NewIllustrationFailure wraps an image generation error.
func NewIllustrationFailure(msg string, cause error) *GameError {
	return &GameError{Code: ErrIllustrationFailure, Message: msg, Err: cause}
}

// NewBusy creates an error for an intent issued while a request is in flight.
func NewBusy() *GameError {
	return &GameError{Code: ErrBusy, Message: "a story request is already in progress"}
}

// NewInvalidTransition creates an error for an intent issued in the wrong phase.
func NewInvalidTransition(intent, phase string) *GameError {
	return &GameError{
		Code:    ErrInvalidTransition,
		Message: fmt.Sprintf("%s is not allowed in phase %s", intent, phase),
	}
}

// NewMissingCharacter creates an error for a play intent with no character in the session.
func NewMissingCharacter() *GameError {
	return &GameError{Code: ErrMissingCharacter, Message: "no character in session"}
}

// NewConfig creates an error for invalid or incomplete configuration.
func NewConfig(msg string) *GameError {
	return &GameError{Code: ErrConfig, Message: msg}
}

// Is reports whether err, or any error it wraps, is a GameError with the given code.
func Is(err error, code ErrorCode) bool {
	var gErr *GameError
	if stderrors.As(err, &gErr) {
		return gErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first GameError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var gErr *GameError
	if stderrors.As(err, &gErr) {
		return gErr.Code
	}
	return ""
}
