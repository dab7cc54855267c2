// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// EnvLogLevel selects the log level: debug, info, warn or error.
const EnvLogLevel = "ANVIL_LOG"

func newLogger(w io.Writer, getenv func(string) string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "anvil",
		ReportTimestamp: true,
	})

	raw := getenv(EnvLogLevel)
	if raw == "" {
		return logger
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		logger.Warn("ignoring invalid log level", "env", EnvLogLevel, "value", raw)
		return logger
	}
	logger.SetLevel(level)
	return logger
}
