package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"unset", "", false},
		{"one", "1", true},
		{"true", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JT_DEBUG", tt.value)
			assert.Equal(t, tt.expected, DebugEnabled())
		})
	}
}

func TestDebugf_DoesNotPanic(t *testing.T) {
	t.Setenv("JT_DEBUG", "")
	Debugf("hidden %s\n", "message")
	Debugln("hidden")

	t.Setenv("JT_DEBUG", "1")
	Debugf("shown %s\n", "message")
	Debugln("shown")
}

func TestNew(t *testing.T) {
	t.Setenv("JT_DEBUG", "")

	tests := []struct {
		name          string
		opts          Options
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{"defaults", Options{}, logrus.InfoLevel, false},
		{"warn text", Options{Level: "warn", Format: "text"}, logrus.WarnLevel, false},
		{"debug json", Options{Level: "debug", Format: "JSON"}, logrus.DebugLevel, true},
		{"unknown level", Options{Level: "chatty"}, logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			logger := New(tt.opts)

			assert.Equal(t, tt.expectedLevel, logger.GetLevel())

			logger.WithField("entries", 3).Warn("batch stopped")
			if tt.expectJSON {
				var fields map[string]interface{}
				require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
				assert.Equal(t, "batch stopped", fields["msg"])
				assert.Equal(t, float64(3), fields["entries"])
			} else {
				assert.Contains(t, buf.String(), "batch stopped")
				assert.Contains(t, buf.String(), "entries=3")
			}
		})
	}
}

func TestNew_DebugEnvForcesDebugLevel(t *testing.T) {
	t.Setenv("JT_DEBUG", "1")

	logger := New(Options{Level: "error"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Info("nothing to see")
	assert.NotNil(t, logger)
}
