package core

// Logger is the logging sink library packages write progress and diagnostics to
type Logger interface {
	Printf(format string, args ...interface{})
}
