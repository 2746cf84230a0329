package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Lines carry a "15:04:05.00" timestamp
// and the application prefix so they stand apart from the report on a
// shared terminal.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          appName,
		Level:           level,
	})
}

// stages times the steps of one command run. Each step is logged at debug
// level with its own duration; done logs the total at info level.
// Not safe for concurrent use.
type stages struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newStages(l *log.Logger) *stages {
	now := time.Now()
	return &stages{logger: l, start: now, last: now}
}

// step records the end of a named step, e.g. "tables loaded".
func (s *stages) step(name string, keyvals ...any) {
	now := time.Now()
	kv := append(keyvals, "took", now.Sub(s.last).Round(time.Millisecond))
	s.logger.Debug(name, kv...)
	s.last = now
}

// done logs msg with the total elapsed time.
func (s *stages) done(msg string, keyvals ...any) {
	kv := append(keyvals, "total", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, kv...)
}
