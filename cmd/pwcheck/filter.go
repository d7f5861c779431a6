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
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/blinklabs-io/pwcheck/breachfilter"
	"github.com/spf13/cobra"
)

func filterCommand() *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage breach filters for the offline lookup backend",
	}
	filterCmd.AddCommand(filterBuildCommand())
	return filterCmd
}

func filterBuildCommand() *cobra.Command {
	var dumpFile string
	buildCmd := &cobra.Command{
		Use:   "build <filter dir>",
		Short: "Build breach filters from a Pwned Passwords SHA-1 dump",
		Long: "Build reads a dump of HASH:COUNT lines sorted by hash and " +
			"writes one binary fuse filter per 3-character hash prefix into " +
			"the filter directory.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilterBuild(cmd.Context(), dumpFile, args[0], cmd.OutOrStdout())
		},
	}
	buildCmd.Flags().StringVar(
		&dumpFile,
		"dump",
		"-",
		"path to the hash dump ('-' for stdin)",
	)
	return buildCmd
}

func runFilterBuild(ctx context.Context, dumpFile string, dir string, out io.Writer) error {
	logger, err := loadConfig()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if dumpFile != "-" {
		f, err := os.Open(dumpFile)
		if err != nil {
			return fmt.Errorf("failed to open dump: %w", err)
		}
		defer f.Close()
		r = f
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder := breachfilter.NewBuilder(
		dir,
		breachfilter.WithBuilderLogger(logger.With("component", "breachfilter")),
	)
	stats, err := builder.Build(ctx, r)
	if err != nil {
		logger.Error(fmt.Sprintf("filter build failed: %s", err))
		return err
	}
	fmt.Fprintf(
		out,
		"wrote %d shards with %d digests to %s\n",
		stats.Shards,
		stats.Digests,
		dir,
	)
	return nil
}
