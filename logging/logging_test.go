package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-kstructs/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{"trace", logging.LevelTrace, false},
		{"debug", logging.LevelDebug, false},
		{"info", logging.LevelInfo, false},
		{"warn", logging.LevelWarn, false},
		{"warning", logging.LevelWarn, false},
		{"error", logging.LevelError, false},
		{"err", logging.LevelError, false},
		{"DEBUG", logging.LevelDebug, false},
		{"  warn  ", logging.LevelWarn, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "trace", logging.LevelTrace.String())
	assert.Equal(t, "warn", logging.LevelWarn.String())
	assert.Equal(t, "Level(3)", logging.Level(3).String())
	assert.Equal(t, slog.LevelWarn, logging.LevelWarn.ToSlog())
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantBase    logging.Level
		wantComps   map[string]logging.Level
		errContains string
	}{
		{name: "empty", input: "", wantBase: logging.LevelInfo},
		{name: "base only", input: "debug", wantBase: logging.LevelDebug},
		{
			name:      "overrides",
			input:     "warn,collector=debug,pahole=trace",
			wantBase:  logging.LevelWarn,
			wantComps: map[string]logging.Level{"collector": logging.LevelDebug, "pahole": logging.LevelTrace},
		},
		{
			name:      "whitespace",
			input:     " info , report = error ",
			wantBase:  logging.LevelInfo,
			wantComps: map[string]logging.Level{"report": logging.LevelError},
		},
		{
			name:      "override without base",
			input:     "collector=debug",
			wantBase:  logging.LevelInfo,
			wantComps: map[string]logging.Level{"collector": logging.LevelDebug},
		},
		{name: "base not first", input: "collector=debug,warn", errContains: "must be first"},
		{name: "empty component", input: "info,=debug", errContains: "empty component"},
		{name: "bad component level", input: "info,collector=loud", errContains: "invalid level"},
		{name: "bad base", input: "loud", errContains: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := logging.ParseSpec(tt.input)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, spec.Base)
			if tt.wantComps == nil {
				assert.Empty(t, spec.Components)
			} else {
				assert.Equal(t, tt.wantComps, spec.Components)
			}
		})
	}
}

func TestSpec_StringRoundTrip(t *testing.T) {
	spec, err := logging.ParseSpec("warn,report=info,collector=debug")
	require.NoError(t, err)
	assert.Equal(t, "warn,collector=debug,report=info", spec.String())

	again, err := logging.ParseSpec(spec.String())
	require.NoError(t, err)
	assert.Equal(t, spec, again)
}

func TestFilteringHandler(t *testing.T) {
	spec, err := logging.ParseSpec("warn,collector=debug")
	require.NoError(t, err)

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.LevelTrace.ToSlog()})
	logger := slog.New(logging.NewFilteringHandler(inner, spec))
	ctx := context.Background()

	logger.Info("base info")
	assert.Empty(t, buf.String())

	logger.Warn("base warn")
	assert.Contains(t, buf.String(), "base warn")

	buf.Reset()
	collector := logger.With("component", "collector")
	collector.Debug("collector debug")
	assert.Contains(t, buf.String(), "collector debug")
	assert.Contains(t, buf.String(), "component=collector")
	assert.False(t, collector.Handler().Enabled(ctx, logging.LevelTrace.ToSlog()))

	buf.Reset()
	logger.With("component", "report").Info("report info")
	assert.Empty(t, buf.String())

	buf.Reset()
	collector.WithGroup("run").Debug("grouped", "n", 1)
	assert.Contains(t, buf.String(), "run.n=1")
}

func TestNew_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		opts      logging.Options
		wantDebug bool
	}{
		{"default only", logging.Options{DefaultSpec: "warn"}, false},
		{"config beats default", logging.Options{DefaultSpec: "warn", ConfigSpec: "debug"}, true},
		{"env beats config", logging.Options{ConfigSpec: "debug", EnvSpec: "error"}, false},
		{"cli beats env", logging.Options{EnvSpec: "error", CLISpec: "debug"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			logger, err := logging.New(tt.opts)
			require.NoError(t, err)

			logger.Debug("probe")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: logging.FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.With("component", "collector").Info("collected", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "collected", entry["msg"])
	assert.Equal(t, "collector", entry["component"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := logging.New(logging.Options{CLISpec: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log spec")
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatText, f)

	f, err = logging.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatJSON, f)

	_, err = logging.ParseFormat("xml")
	require.Error(t, err)
}
