// Package remotelog ships leveled diagnostic messages to an external
// evaluation sink. Delivery is best-effort: any failure falls back to
// the local logger and never affects the calling operation.
package remotelog

import "go.uber.org/zap"

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger is the collaborator interface components log through. The tag
// names the originating component ("create", "redirect", "cleanup").
type Logger interface {
	Debug(tag string, text string)
	Info(tag string, text string)
	Warn(tag string, text string)
	Error(tag string, text string)
}

// Local writes diagnostics to the process logger only. It backs tests
// and deployments without a configured remote sink.
type Local struct {
	logger *zap.SugaredLogger
}

func NewLocal(logger *zap.SugaredLogger) *Local {
	return &Local{logger: logger}
}

func (l *Local) Debug(tag string, text string) {
	l.logger.Debugw(text, "source", tag)
}

func (l *Local) Info(tag string, text string) {
	l.logger.Infow(text, "source", tag)
}

func (l *Local) Warn(tag string, text string) {
	l.logger.Warnw(text, "source", tag)
}

func (l *Local) Error(tag string, text string) {
	l.logger.Errorw(text, "source", tag)
}
