// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env     string
		want    log.Level
		wantLog string
	}{
		{env: "", want: log.InfoLevel},
		{env: "debug", want: log.DebugLevel},
		{env: "WARN", want: log.WarnLevel},
		{env: "error", want: log.ErrorLevel},
		{env: "chatty", want: log.InfoLevel, wantLog: "ignoring invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, func(key string) string {
				if key == EnvLogLevel {
					return tt.env
				}
				return ""
			})
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.wantLog)
			}
			if tt.wantLog == "" && buf.Len() != 0 {
				t.Errorf("output = %q, want nothing", buf.String())
			}
		})
	}
}

func TestNewLogger_Prefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, func(string) string { return "" })
	logger.Info("listening")
	if !strings.Contains(buf.String(), "anvil") || !strings.Contains(buf.String(), "listening") {
		t.Errorf("output = %q, want the anvil prefix and message", buf.String())
	}
}
