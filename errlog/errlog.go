package errlog

import "github.com/rs/zerolog"

/* errlog is the process-wide error log: the last line of defense for
 * failures that must never propagate into the host's save path or crash
 * a worker. Every unexpected failure terminates here as a log record
 */

// Logger records unexpected failures with a short title and the error detail
type Logger interface {
	Error(title string, err error)
}

// ZerologLogger writes error records through a zerolog logger,
// the same logger family the HTTP layer uses
type ZerologLogger struct {
	logger zerolog.Logger
}

// New creates a process error log backed by the given zerolog logger
func New(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Error writes one error record with the title and the full error chain
func (l *ZerologLogger) Error(title string, err error) {
	l.logger.Error().Err(err).Msg(title)
}
