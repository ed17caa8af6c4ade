package alerts_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := alerts.NewError("Backup failed").WithError(errors.New("disk full"))
	assert.Equal(t, "✗ Backup failed: disk full", a.String())

	assert.Equal(t, "✓ done", alerts.NewSuccess("done").String())
	assert.Equal(t, "! careful", alerts.NewWarning("careful").String())
	assert.Equal(t, "i note", alerts.NewInfo("note").String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "error", alerts.LevelError.String())
	assert.Equal(t, "success", alerts.LevelSuccess.String())
	assert.Equal(t, "unknown(9)", alerts.Level(9).String())
}

func TestFormatWriter(t *testing.T) {
	alert := alerts.NewWarning("Restoration canceled.").WithDetails("save directory kept")

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatTable).WriteAlert(alert))
		assert.Equal(t, "! Restoration canceled.\n   save directory kept\n", buf.String())
	})

	t.Run("plain with color", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatTable).WithColor(true).WriteAlert(alert))
		assert.Contains(t, buf.String(), "\033[33m")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatJSON).WriteAlert(alert))
		assert.JSONEq(t, `{"level":"warning","message":"Restoration canceled.","details":["save directory kept"]}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatYAML).WriteAlert(alert))
		assert.Contains(t, buf.String(), "level: warning")
		assert.Contains(t, buf.String(), "message: Restoration canceled.")
	})

	t.Run("no color overrides detection", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, alerts.NewWriter(&buf, output.FormatWide, true).WriteAlert(alert))
		assert.NotContains(t, buf.String(), "\033[")
		assert.Equal(t, "! Restoration canceled.\n   save directory kept\n", buf.String())
	})
}
