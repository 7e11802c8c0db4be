package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggerWithWriter(t *testing.T) {
	t.Run("default level is info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(&buf, false, false)

		logger.Debug().Msg("hidden")
		logger.Info().Msg("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(&buf, true, false)

		logger.Debug().Msg("debug line")

		assert.Contains(t, buf.String(), "debug line")
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(&buf, false, true)

		logger.Info().Msg("hidden")
		logger.Warn().Msg("warned")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "warned")
	})

	t.Run("secrets are flagged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(&buf, false, false)

		logger.Info().Msg("key is sk-" + "ant-api03-test-only-value")

		assert.Contains(t, buf.String(), "contains_filtered_data")
	})
}
