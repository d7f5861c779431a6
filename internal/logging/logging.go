// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blinklabs-io/pwcheck/internal/config"
)

var globalLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Configure sets up the global logger from the logging config section
func Configure() error {
	cfg := config.GetConfig()
	logger, err := New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	globalLogger = logger
	slog.SetDefault(logger)
	return nil
}

// New builds a logger writing to w. Logs go to stderr in the CLI so that
// the report on stdout can be piped.
func New(w io.Writer, level string, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("error configuring logger: %w", err)
		}
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
	}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return slog.New(handler).With("component", "pwcheck"), nil
}

func GetLogger() *slog.Logger {
	return globalLogger
}
