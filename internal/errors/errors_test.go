package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

func allSentinels() []error {
	return []error{
		quorumerrors.ErrEmptyInput,
		quorumerrors.ErrInputUnreadable,
		quorumerrors.ErrProviderInvocation,
		quorumerrors.ErrUnknownProvider,
		quorumerrors.ErrSpawnFailed,
		quorumerrors.ErrOutputOverflow,
		quorumerrors.ErrRunnerReused,
		quorumerrors.ErrConfigNil,
		quorumerrors.ErrConfigInvalidProvider,
		quorumerrors.ErrConfigInvalidTimeout,
		quorumerrors.ErrConfigNotFound,
		quorumerrors.ErrEmptyValue,
		quorumerrors.ErrInvalidReport,
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := allSentinels()
	for i, err1 := range sentinels {
		require.Error(t, err1)
		assert.NotEmpty(t, err1.Error())
		for j, err2 := range sentinels {
			if i == j {
				assert.ErrorIs(t, err1, err2, "error should match itself")
			} else {
				assert.NotErrorIs(t, err1, err2, "different errors should not match")
			}
		}
	}
}

func TestWrap(t *testing.T) {
	t.Run("preserves the error chain", func(t *testing.T) {
		wrapped := quorumerrors.Wrap(quorumerrors.ErrSpawnFailed, "starting claude")

		assert.ErrorIs(t, wrapped, quorumerrors.ErrSpawnFailed)
		assert.Contains(t, wrapped.Error(), "starting claude")
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, quorumerrors.Wrap(nil, "context"))
		assert.NoError(t, quorumerrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("wrapf interpolates", func(t *testing.T) {
		wrapped := quorumerrors.Wrapf(quorumerrors.ErrUnknownProvider, "provider %q", "mystery")

		assert.ErrorIs(t, wrapped, quorumerrors.ErrUnknownProvider)
		assert.Contains(t, wrapped.Error(), `"mystery"`)
	})

	t.Run("unwrap recovers the sentinel", func(t *testing.T) {
		wrapped := quorumerrors.Wrap(quorumerrors.ErrOutputOverflow, "stdout capture")

		assert.Equal(t, quorumerrors.ErrOutputOverflow, stderrors.Unwrap(wrapped))
	})
}
