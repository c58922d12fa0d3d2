// Package logger provides a thin wrapper over charmbracelet/log used by every
// package in fldic so that log lines carry a component prefix without each
// package hand-rolling its own *log.Logger construction.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed logger with timestamps, using the global level in
// effect when New is called; later changes to the global level do not
// affect the returned logger.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a prefixed logger with explicit level/caller/timestamp
// settings, for callers that don't want to inherit the global level.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
