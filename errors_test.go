package kotodict

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err      error
		category error
	}{
		{&ErrTooFewColumns{Columns: 3, Required: 18}, ErrStructural},
		{&ErrStringTooLong{Field: "headword", Length: 40000, Limit: 32767}, ErrValidation},
		{&ErrInvalidNumber{Field: "cost", Value: "x"}, ErrValidation},
		{&ErrParameterOutOfRange{Kind: "left-id", Value: 9, Limit: 5}, ErrValidation},
		{&ErrWordIDOutOfRange{ID: 99}, ErrReference},
		{&ErrBadEscape{Sequence: "u{}"}, ErrFormat},
		{ErrEmptyHeadword, ErrValidation},
		{ErrInvalidPOS, ErrValidation},
		{ErrInvalidSplitting, ErrValidation},
		{ErrTooManyUnits, ErrValidation},
		{ErrWordNotFound, ErrReference},
	}
	categories := []error{ErrStructural, ErrValidation, ErrReference, ErrFormat}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			for _, c := range categories {
				if c == tt.category {
					require.ErrorIs(t, tt.err, c)
				} else {
					require.NotErrorIs(t, tt.err, c)
				}
			}
		})
	}
}

func TestLineError(t *testing.T) {
	inner := &ErrTooFewColumns{Columns: 2, Required: 18}
	err := &LineError{Line: 7, Err: inner}

	require.EqualError(t, err, "line 7: invalid format: 2 columns, at least 18 required")
	require.ErrorIs(t, err, ErrStructural)

	var cols *ErrTooFewColumns
	require.True(t, errors.As(err, &cols))

	wrapped := fmt.Errorf("source a.csv: %w", err)
	var line *LineError
	require.True(t, errors.As(wrapped, &line))
	require.Equal(t, 7, line.Line)
}
