package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

func TestBoundedBuffer(t *testing.T) {
	t.Run("accepts writes up to the limit", func(t *testing.T) {
		b := newBoundedBuffer(10)

		n, err := b.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		n, err = b.Write([]byte("world"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		assert.Equal(t, "helloworld", b.String())
		assert.False(t, b.Overflowed())
	})

	t.Run("rejects the write that would exceed the limit", func(t *testing.T) {
		b := newBoundedBuffer(10)

		_, err := b.Write([]byte("hello"))
		require.NoError(t, err)

		_, err = b.Write([]byte("overflow!"))
		assert.ErrorIs(t, err, quorumerrors.ErrOutputOverflow)
		assert.True(t, b.Overflowed())
	})

	t.Run("refuses all writes after overflow", func(t *testing.T) {
		b := newBoundedBuffer(4)

		_, err := b.Write([]byte("12345"))
		require.ErrorIs(t, err, quorumerrors.ErrOutputOverflow)

		_, err = b.Write([]byte("x"))
		assert.ErrorIs(t, err, quorumerrors.ErrOutputOverflow)
	})

	t.Run("exact fit is not an overflow", func(t *testing.T) {
		b := newBoundedBuffer(5)

		_, err := b.Write([]byte("12345"))
		require.NoError(t, err)
		assert.False(t, b.Overflowed())
	})
}
