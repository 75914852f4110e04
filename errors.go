package kotodict

import (
	"errors"
	"fmt"
)

// Category sentinels. Every error produced by the compiler matches exactly
// one of these via errors.Is, either by %w wrapping or through the Unwrap
// of a typed error below.
var (
	// ErrStructural indicates a malformed row shape (too few columns).
	ErrStructural = errors.New("structural error")
	// ErrValidation indicates an invalid field value.
	ErrValidation = errors.New("validation error")
	// ErrReference indicates an unresolvable or out-of-range word reference.
	ErrReference = errors.New("reference error")
	// ErrFormat indicates a malformed escape sequence.
	ErrFormat = errors.New("format error")
)

// Field-less failures are plain wrapped sentinels; the messages match the
// lexicon source format documentation.
var (
	ErrEmptyHeadword    = fmt.Errorf("%w: headword is empty", ErrValidation)
	ErrInvalidPOS       = fmt.Errorf("%w: invalid part of speech", ErrValidation)
	ErrInvalidSplitting = fmt.Errorf("%w: invalid splitting", ErrValidation)
	ErrTooManyUnits     = fmt.Errorf("%w: too many units", ErrValidation)
	ErrWordNotFound     = fmt.Errorf("%w: not found such a word", ErrReference)
)

// ErrTooFewColumns indicates a lexicon row with fewer columns than the
// format requires.
type ErrTooFewColumns struct {
	Columns  int
	Required int
}

func (e *ErrTooFewColumns) Error() string {
	return fmt.Sprintf("invalid format: %d columns, at least %d required", e.Columns, e.Required)
}

func (e *ErrTooFewColumns) Unwrap() error { return ErrStructural }

// ErrStringTooLong indicates a field whose UTF-8 encoding exceeds the
// maximum stored string length.
type ErrStringTooLong struct {
	Field  string
	Length int
	Limit  int
}

func (e *ErrStringTooLong) Error() string {
	return fmt.Sprintf("string is too long: %s is %d bytes, limit %d", e.Field, e.Length, e.Limit)
}

func (e *ErrStringTooLong) Unwrap() error { return ErrValidation }

// ErrInvalidNumber indicates a numeric column that failed to parse or does
// not fit its target width.
type ErrInvalidNumber struct {
	Field string
	Value string
}

func (e *ErrInvalidNumber) Error() string {
	return fmt.Sprintf("invalid number: %s %q", e.Field, e.Value)
}

func (e *ErrInvalidNumber) Unwrap() error { return ErrValidation }

// ErrParameterOutOfRange indicates a left or right connection id beyond
// the configured parameter matrix limits.
type ErrParameterOutOfRange struct {
	Kind  string // "left-id" or "right-id"
	Value int16
	Limit int
}

func (e *ErrParameterOutOfRange) Error() string {
	return fmt.Sprintf("%s %d is out of range, limit %d", e.Kind, e.Value, e.Limit)
}

func (e *ErrParameterOutOfRange) Unwrap() error { return ErrValidation }

// ErrWordIDOutOfRange indicates a numeric word reference outside the known
// id range of its origin namespace.
type ErrWordIDOutOfRange struct {
	ID int32
}

func (e *ErrWordIDOutOfRange) Error() string {
	return fmt.Sprintf("word id %d is out of range", e.ID)
}

func (e *ErrWordIDOutOfRange) Unwrap() error { return ErrReference }

// ErrBadEscape indicates a \u escape whose hex payload does not denote a
// valid Unicode code point.
type ErrBadEscape struct {
	Sequence string
}

func (e *ErrBadEscape) Error() string {
	return fmt.Sprintf("malformed escape sequence %q", e.Sequence)
}

func (e *ErrBadEscape) Unwrap() error { return ErrFormat }

// LineError annotates a compile failure with the 1-based source line it
// originated from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
