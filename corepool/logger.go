package corepool

import (
	"log"
	"os"
)

// Logger is the diagnostic sink used for rejected configuration,
// overload warnings, and panic isolation. The core never fails a
// diagnostic path loudly; it logs and moves on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type stdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps a stdlib *log.Logger writing to stderr. It is the
// default Logger for every pool policy until overridden with a
// Logger-accepting option.
func NewStdLogger() Logger {
	return &stdLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

func (s *stdLogger) Debugf(format string, args ...interface{}) {
	s.l.Printf("DEBUG "+format, args...)
}

func (s *stdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("ERROR "+format, args...)
}
