package log

import (
	"testing"
)

// NewTestingLogger converts a testing.T into a logging interface to make test
// failures and verbose provide better feedback associated with test failures.
// This logging instance is safe for use from multiple threads, but in general
// it should be used as a single thread.
//
// By default it collects only ERROR messages, or DEBUG messages in verbose
// mode, and relies on the underlying behavior of testing.T.Log().
func NewTestingLogger(t *testing.T) Logger {
	level := LogLevelError
	if testing.Verbose() {
		level = LogLevelDebug
	}

	return NewTestingLoggerWithLevel(t, level)
}

// NewTestingLoggerWithLevel creates a testing logger instance at a specific
// level that wraps the behavior of testing.T.Log().
func NewTestingLoggerWithLevel(t *testing.T, level string) Logger {
	logger, err := NewLogger(LogFormatPlain, level, testingWriter{t})
	if err != nil {
		t.Fatalf("failed to create testing logger: %v", err)
	}

	return logger
}

type testingWriter struct {
	t *testing.T
}

func (tw testingWriter) Write(in []byte) (int, error) {
	tw.t.Log(string(in))
	return len(in), nil
}
