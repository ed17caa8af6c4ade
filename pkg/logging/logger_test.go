package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/saveback/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(logging.New(buf).Level(zerolog.InfoLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Default().Info().Msg("info message")
	log.Error().Msg("error message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, `"time":`)
	assert.NotContains(t, output, "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithOperation(ctx, "backup")
	ctx = logging.WithArchive(ctx, "remote_2024-01-01-00-00.zip")
	ctx = logging.WithSaveDir(ctx, "/saves/remote")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"operation":"backup"`)
	testLogger.AssertContains(t, "remote_2024-01-01-00-00.zip")
	testLogger.AssertContains(t, `"save_dir":"/saves/remote"`)
	testLogger.AssertContains(t, "test message")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.Ctx(context.Background()))
}

func TestWithField(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithField(ctx, "entries", 3)
	ctx = logging.WithField(ctx, "dry_run", true)

	logging.FromContext(ctx).Info().Msg("fields")

	testLogger.AssertContains(t, `"entries":3`)
	testLogger.AssertContains(t, `"dry_run":true`)
}

func TestConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		present []string
		absent  []string
	}{
		{"debug level", "debug", []string{`"level":"debug"`, `"level":"info"`}, nil},
		{"error level only", "error", []string{`"level":"error"`}, []string{`"level":"info"`}},
		{"invalid falls back to info", "loud", []string{`"level":"info"`}, []string{`"level":"debug"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			})
			buf := &bytes.Buffer{}
			logger = logger.Output(buf)

			logger.Debug().Msg("d")
			logger.Info().Msg("i")
			logger.Error().Msg("e")

			for _, s := range tt.present {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestTestLoggerLines(t *testing.T) {
	tl := logging.NewTestLogger(t)
	assert.Empty(t, tl.Lines())

	tl.Info().Msg("one")
	tl.Info().Msg("two")

	lines := tl.Lines()
	assert.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[1], "two"))
	tl.AssertNotContains(t, "three")
}
