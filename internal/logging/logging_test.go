package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_PlainOutputHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn", NoColor: true})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("search failed", "seq", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN search failed seq=3")
	assert.NotContains(t, out, "\x1b[", "NoColor output must not carry escape codes")
}

func TestNew_BadLevelStillReturnsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "chatty", NoColor: true})
	require.Error(t, err)
	require.NotNil(t, logger)

	logger.Info("ready")
	assert.True(t, strings.Contains(buf.String(), "INF ready"))
}

func TestOpenFile_CreatesDirectoriesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pawmatch.log")

	for _, line := range []string{"one\n", "two\n"} {
		f, err := OpenFile(path)
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestOpenFile_EmptyPath(t *testing.T) {
	_, err := OpenFile("  ")
	assert.Error(t, err)
}
