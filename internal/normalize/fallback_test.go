package normalize

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quorum/internal/clock"
	"github.com/mrz1836/quorum/internal/constants"
)

func TestFallback(t *testing.T) {
	n := New(
		Identity{Tool: "codex", Model: "gpt-5"},
		clock.FixedClock{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	)

	t.Run("produces a complete schema-valid report", func(t *testing.T) {
		report := n.Fallback("process timed out after 20m")

		assert.Equal(t, "codex", report.Tool)
		assert.Equal(t, "gpt-5", report.Model)
		assert.Equal(t, "2026-08-01T12:00:00Z", report.Timestamp)
		assert.Equal(t, "process timed out after 20m", report.Error)
		assert.False(t, report.ExitCriteria.ReadyForPR)
		assert.NotEmpty(t, report.ExitCriteria.Reasons)
		assert.NotNil(t, report.Findings)
		assert.NotNil(t, report.Assumptions)
		assert.NotNil(t, report.Evidence)
		assert.False(t, report.Tests.Executed)
		assert.GreaterOrEqual(t, len(report.Summary), constants.MinSummaryLen)
	})

	t.Run("long diagnostics are capped", func(t *testing.T) {
		report := n.Fallback(strings.Repeat("e", constants.MaxErrorLen*2))

		assert.Len(t, report.Error, constants.MaxErrorLen)
	})

	t.Run("empty diagnostic gets a placeholder", func(t *testing.T) {
		report := n.Fallback("   ")

		assert.NotEmpty(t, report.Error)
	})

	t.Run("unknown identity defaults", func(t *testing.T) {
		report := New(Identity{}, clock.FixedClock{T: time.Now()}).Fallback("boom")

		assert.Equal(t, "unknown", report.Tool)
		assert.Equal(t, "unknown", report.Model)
	})

	t.Run("fallback report survives a normalize round trip", func(t *testing.T) {
		report := n.Fallback("spawn failed")

		encoded, err := json.Marshal(report)
		require.NoError(t, err)
		again, err := n.Normalize(string(encoded))
		require.NoError(t, err)

		assert.Equal(t, report, again)
	})
}
