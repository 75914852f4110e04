package build

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kotodict/kotodict"
)

func TestParameters_Append(t *testing.T) {
	p := NewParameters()
	require.NoError(t, p.Append(1, 2, -100))
	require.NoError(t, p.Append(-1, 0, 0))
	require.Equal(t, 2, p.Count())

	var sink bytes.Buffer
	n, err := p.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(12), n)
	require.Equal(t, []byte{
		1, 0, 2, 0, 0x9c, 0xff, // 1, 2, -100
		0xff, 0xff, 0, 0, 0, 0, // -1, 0, 0
	}, sink.Bytes())
}

func TestParameters_Limits(t *testing.T) {
	p := NewParameters()
	p.SetLimits(5, 3)

	require.NoError(t, p.Append(4, 2, 0))
	require.NoError(t, p.Append(-1, 0, 0)) // not-indexed sentinel

	err := p.Append(5, 0, 0)
	require.ErrorIs(t, err, kotodict.ErrValidation)
	var rng *kotodict.ErrParameterOutOfRange
	require.True(t, errors.As(err, &rng))
	require.Equal(t, "left-id", rng.Kind)

	err = p.Append(0, 3, 0)
	require.ErrorIs(t, err, kotodict.ErrValidation)
	require.True(t, errors.As(err, &rng))
	require.Equal(t, "right-id", rng.Kind)
}
