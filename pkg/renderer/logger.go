package renderer

import (
	"github.com/golang/glog"

	"github.com/df07/go-path-tracer/pkg/core"
)

type glogLogger struct{}

// NewGlogLogger returns a core.Logger that writes to glog at INFO level
func NewGlogLogger() core.Logger {
	return glogLogger{}
}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

// Printf does nothing
func (NopLogger) Printf(format string, args ...interface{}) {}
