package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		level     string
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, "", zerolog.WarnLevel},
		{"info level", 1, "", zerolog.InfoLevel},
		{"debug level", 2, "", zerolog.DebugLevel},
		{"trace level", 3, "", zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, "", zerolog.TraceLevel},
		{"configured level without flags", 0, "INFO", zerolog.InfoLevel},
		{"flags beat configured level", 2, "error", zerolog.DebugLevel},
		{"unknown configured level falls back to warn", 0, "loud", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("TIDYUP_STATE_DIR", tempDir)

			SetupLogger(tt.verbosity, Options{Level: tt.level, Console: &bytes.Buffer{}})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "tidyup.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLogger_FileOptions(t *testing.T) {
	t.Run("custom_file_path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "custom.log")

		SetupLogger(1, Options{FilePath: path, Console: &bytes.Buffer{}})
		log.Info().Msg("hello file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello file")
	})

	t.Run("file_disabled", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("TIDYUP_STATE_DIR", tempDir)

		SetupLogger(1, Options{DisableFile: true, Console: &bytes.Buffer{}})

		_, err := os.Stat(filepath.Join(tempDir, "tidyup.log"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with TIDYUP_STATE_DIR", func(t *testing.T) {
		t.Setenv("TIDYUP_STATE_DIR", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "tidyup.log"), getLogFilePath())
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("TIDYUP_STATE_DIR", "")
		got := getLogFilePath()
		assert.True(t, strings.HasSuffix(got, filepath.Join("tidyup", "tidyup.log")))
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("organizer")
	logger.Info().Msg("component message")

	assert.Contains(t, buf.String(), `"component":"organizer"`)
	assert.Contains(t, buf.String(), "component message")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "organize")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, `"operation":"organize"`)
	assert.Contains(t, output, "duration")
}
