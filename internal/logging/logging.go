// Package logging builds the zap loggers the services run on and adapts them
// to the protocol library's logging seam.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/staffbridge/valimq"
)

// New returns a production JSON logger at the given level. An empty level
// means info.
func New(level string) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Adapter exposes a sugared zap logger through valimq.Logger.
type Adapter struct {
	S *zap.SugaredLogger
}

var _ valimq.Logger = Adapter{}

func (a Adapter) Log(args ...any) {
	a.S.Info(args...)
}

func (a Adapter) Logf(format string, args ...any) {
	a.S.Infof(format, args...)
}
