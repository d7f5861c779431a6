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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/blinklabs-io/pwcheck/breachfilter"
	_ "github.com/blinklabs-io/pwcheck/input"
	"github.com/blinklabs-io/pwcheck/internal/config"
	"github.com/blinklabs-io/pwcheck/internal/logging"
	"github.com/blinklabs-io/pwcheck/internal/version"
	_ "github.com/blinklabs-io/pwcheck/output"
	"github.com/blinklabs-io/pwcheck/pipeline"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/blinklabs-io/pwcheck/pwned"
	"github.com/inconshreveable/mousetrap"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

// Exit status when --fail-on-match is set and a password was found
const exitCodeBreached = 2

var errBreached = errors.New("breached passwords found")

var (
	programName string = "pwcheck"
	cfg                = config.GetConfig()
	rootCmd            = &cobra.Command{
		Use:          programName,
		Short:        "Check stored passwords against the Pwned Passwords database",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
)

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...))
}

func init() {
	if os.Args != nil && os.Args[0] != programName {
		programName = os.Args[0]
		rootCmd.Use = programName
	}

	// Bail if we were run via double click on Windows, borrowed from ngrok
	if runtime.GOOS == "windows" {
		if mousetrap.StartedByExplorer() {
			fmt.Println("pwcheck is a command line program.")
			fmt.Printf(
				"You need to open cmd.exe and run %s from the command line.\n",
				programName,
			)
			fmt.Printf(
				"Try %s --help to get program usage information.\n",
				programName,
			)
			time.Sleep(30 * time.Second)
			os.Exit(1)
		}
	}

	if err := cfg.BindFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(filterCommand())
}

func listPlugins(pluginType plugin.PluginType) {
	fmt.Printf("Available %s plugins:\n\n", plugin.PluginTypeName(pluginType))
	for _, p := range plugin.GetPlugins(pluginType) {
		fmt.Printf("%- 14s %s\n", p.Name, p.Description)
	}
}

// loadConfig merges the config file, environment and plugin options and
// sets up logging
func loadConfig() (*slog.Logger, error) {
	if err := cfg.Load(cfg.ConfigFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Process config for plugins
	if err := plugin.ProcessConfig(cfg.Plugin); err != nil {
		return nil, fmt.Errorf("failed to process plugin config: %w", err)
	}

	// Process env vars for plugins
	if err := plugin.ProcessEnvVars(); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	// Plugin flags given on the command line win over config and env
	if err := cfg.ReapplyFlags(); err != nil {
		return nil, fmt.Errorf("failed to apply flags: %w", err)
	}

	// Configure logging
	if err := logging.Configure(); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return logging.GetLogger(), nil
}

func newLookup(logger *slog.Logger) (pipeline.Lookup, error) {
	switch cfg.Lookup.Backend {
	case config.LookupBackendFilter:
		return breachfilter.NewStore(
			cfg.Lookup.FilterDir,
			breachfilter.WithStoreLogger(
				logger.With("component", "breachfilter"),
			),
		)
	default:
		userAgent := cfg.Lookup.UserAgent
		if userAgent == "" {
			userAgent = version.UserAgent()
		}
		return pwned.New(
			cfg.Lookup.URL,
			pwned.WithLogger(logger.With("component", "pwned")),
			pwned.WithUserAgent(userAgent),
			pwned.WithTimeout(cfg.Lookup.Timeout),
			pwned.WithPadding(cfg.Lookup.Padding),
			pwned.WithMaxAttempts(cfg.Lookup.MaxAttempts),
			pwned.WithRateLimit(cfg.Lookup.RateLimit),
		)
	}
}

func run(ctx context.Context) error {
	if cfg.Version {
		fmt.Printf("%s %s\n", programName, version.GetVersionString())
		return nil
	}

	if cfg.Input == "list" {
		listPlugins(plugin.PluginTypeInput)
		return nil
	}

	if cfg.Output == "list" {
		listPlugins(plugin.PluginTypeOutput)
		return nil
	}

	logger, err := loadConfig()
	if err != nil {
		return err
	}

	// Configure max processes with our logger wrapper, toss undo func
	_, err = maxprocs.Set(maxprocs.Logger(slogPrintf))
	if err != nil {
		// If we hit this, something really wrong happened
		logger.Error(err.Error())
		return err
	}

	lookup, err := newLookup(logger)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create %s lookup: %s", cfg.Lookup.Backend, err))
		return fmt.Errorf("failed to create lookup: %w", err)
	}

	// Create pipeline
	pipe := pipeline.New(
		lookup,
		pipeline.WithLogger(logger.With("component", "pipeline")),
		pipeline.WithWorkers(cfg.Lookup.Workers),
		pipeline.WithBackend(cfg.Lookup.Backend),
	)

	// Configure input
	input, err := plugin.GetInput(cfg.Input)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	pipe.SetInput(input)

	// Configure output
	output, err := plugin.GetOutput(cfg.Output)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	pipe.AddOutput(output)

	// Stop scanning on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := pipe.Run(ctx)
	if err != nil {
		logger.Error(fmt.Sprintf("scan failed: %s", err))
		return err
	}

	if cfg.FailOnMatch && report.Breached() {
		return errBreached
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, errBreached) {
			os.Exit(exitCodeBreached)
		}
		os.Exit(1)
	}
}
