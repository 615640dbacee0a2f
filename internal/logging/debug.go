package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	debugOnce sync.Once
	debugLog  *logrus.Logger
)

// DebugEnabled returns true if debug mode is enabled via JT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("JT_DEBUG") != ""
}

func debugLogger() *logrus.Logger {
	debugOnce.Do(func() {
		debugLog = logrus.New()
		debugLog.SetOutput(os.Stderr)
		debugLog.SetLevel(logrus.DebugLevel)
		debugLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return debugLog
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
}
