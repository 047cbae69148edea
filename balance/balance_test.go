// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package balance

import (
	"testing"

	safemath "github.com/luxfi/math"
	"github.com/stretchr/testify/require"
)

func TestMax(t *testing.T) {
	require := require.New(t)

	require.Equal("340282366920938463463374607431768211455", Max().String())
}

func TestAdd(t *testing.T) {
	require := require.New(t)

	sum, err := Add(New64(2), New64(3))
	require.NoError(err)
	require.Equal(New64(5), sum)

	_, err = Add(Max(), New64(1))
	require.ErrorIs(err, safemath.ErrOverflow)
}

func TestSub(t *testing.T) {
	require := require.New(t)

	diff, err := Sub(New64(5), New64(3))
	require.NoError(err)
	require.Equal(New64(2), diff)

	_, err = Sub(New64(3), New64(5))
	require.ErrorIs(err, safemath.ErrUnderflow)
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a    Balance
		b    Balance
		want Balance
		err  error
	}{
		{
			name: "simple",
			a:    New64(10),
			b:    New64(100),
			want: New64(1000),
		},
		{
			name: "zero amount",
			a:    New64(100),
			b:    Zero,
			want: Zero,
		},
		{
			name: "max by one",
			a:    Max(),
			b:    New64(1),
			want: Max(),
		},
		{
			name: "max by two overflows",
			a:    Max(),
			b:    New64(2),
			err:  safemath.ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			got, err := Mul(tt.a, tt.b)
			if tt.err != nil {
				require.ErrorIs(err, tt.err)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, b := range []Balance{Zero, New64(1), New64(1_000_000), Max()} {
		encoded := b.Bytes()
		decoded, err := FromBytes(encoded[:])
		require.NoError(err)
		require.Equal(b, decoded)
	}

	_, err := FromBytes([]byte{1, 2, 3})
	require.ErrorIs(err, ErrBadBalanceLen)
}

func TestFromString(t *testing.T) {
	require := require.New(t)

	b, err := FromString("1000")
	require.NoError(err)
	require.Equal(New64(1000), b)

	// One past the 128-bit range.
	_, err = FromString("340282366920938463463374607431768211456")
	require.ErrorIs(err, ErrOutOfRange)
}

func TestJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	encoded, err := Max().MarshalJSON()
	require.NoError(err)
	require.Equal(`"340282366920938463463374607431768211455"`, string(encoded))

	var decoded Balance
	require.NoError(decoded.UnmarshalJSON(encoded))
	require.Equal(Max(), decoded)
}
