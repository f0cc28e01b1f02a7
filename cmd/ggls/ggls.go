//  Copyright 2026 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/accounts"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/cfg"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/listing"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/logger"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/render"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// flags holds the command line flags. Listing flags only take precedence over
// the configuration when explicitly set.
type flags struct {
	numeric   bool
	all       bool
	watch     bool
	config    string
	database  string
	colour    string
	verbosity int
}

// newRootCommand generates the root command with the [config] subcommand.
func newRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "ggls [path...]",
		Short:         "List directory contents with a coloured group column.",
		Long:          "List directory contents, painting each entry's group according to whether the current user belongs to it.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initialize(cmd.Context(), f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListing(cmd, f, args)
		},
	}

	root.Flags().BoolVarP(&f.numeric, "numeric", "n", false, "Display numeric group ids instead of names.")
	root.Flags().BoolVarP(&f.all, "all", "a", false, "Do not ignore entries starting with a dot.")
	root.Flags().BoolVar(&f.watch, "watch", false, "Keep running and re-list the directory when it changes.")
	root.Flags().StringVar(&f.database, "database", "", fmt.Sprintf("Identity database, %q or %q.", accounts.KindGetent, accounts.KindFiles))
	root.Flags().StringVar(&f.colour, "colour", "", fmt.Sprintf("When to paint, %q, %q or %q.", theme.ModeAuto, theme.ModeAlways, theme.ModeNever))
	root.PersistentFlags().StringVar(&f.config, "config", "", "Configuration file loaded on top of the default ones.")
	root.PersistentFlags().IntVarP(&f.verbosity, "verbosity", "v", -1, "Log verbosity, overrides the configured one.")

	root.AddCommand(newConfigCommand())
	return root
}

// newConfigCommand returns the command printing the effective configuration.
func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := cfg.ToString()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// loggerReady is set once galog has a backend, errors before that point can
// only be written to stderr directly.
var loggerReady bool

// initialize loads the configuration and initializes the logger.
func initialize(ctx context.Context, f *flags) error {
	var overrides []string
	if f.config != "" {
		if _, err := os.Stat(f.config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		overrides = append(overrides, f.config)
	}

	if err := cfg.Load(nil, overrides...); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	core := cfg.Retrieve().Core
	verbosity := core.LogVerbosity
	if f.verbosity >= 0 {
		verbosity = f.verbosity
	}

	logOpts := logger.Options{
		Ident:       filepath.Base(os.Args[0]),
		LogToStderr: true,
		Level:       core.LogLevel,
		Verbosity:   verbosity,
		LogFile:     core.LogFile,
	}
	if err := logger.Init(ctx, logOpts); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	loggerReady = true
	return nil
}

// lister holds everything needed to list a path.
type lister struct {
	db         accounts.Database
	colours    *theme.Colours
	format     render.UserFormat
	showHidden bool
	workers    int
}

// newLister builds a lister from the loaded configuration and the explicitly
// set flags.
func newLister(cmd *cobra.Command, f *flags) (*lister, error) {
	sections := cfg.Retrieve()
	listingCfg := sections.Listing

	numeric := listingCfg.Numeric
	if cmd.Flags().Changed("numeric") {
		numeric = f.numeric
	}
	showHidden := listingCfg.ShowHidden
	if cmd.Flags().Changed("all") {
		showHidden = f.all
	}
	kind := listingCfg.Database
	if cmd.Flags().Changed("database") {
		kind = f.database
	}
	mode := sections.Colours.Mode
	if cmd.Flags().Changed("colour") {
		mode = f.colour
	}

	if err := theme.SetMode(mode); err != nil {
		return nil, err
	}
	colours, err := theme.FromConfig(sections.Colours)
	if err != nil {
		return nil, fmt.Errorf("failed to load colours: %w", err)
	}

	db, err := accounts.Open(accounts.OpenOptions{
		Kind:       kind,
		GroupFile:  listingCfg.GroupFile,
		PasswdFile: listingCfg.PasswdFile,
		CacheSize:  listingCfg.CacheSize,
	})
	if err != nil {
		return nil, err
	}

	return &lister{
		db:         db,
		colours:    colours,
		format:     render.FormatFor(numeric),
		showHidden: showHidden,
		workers:    listingCfg.Workers,
	}, nil
}

// list writes the listing of path to w.
func (l *lister) list(ctx context.Context, w io.Writer, path string) error {
	entries, err := listing.Read(path, l.showHidden)
	if err != nil {
		return err
	}

	rows, err := listing.Rows[lipgloss.Style](ctx, entries, l.db, l.format, l.colours, l.workers)
	if err != nil {
		return err
	}
	return listing.Print(w, rows, theme.Paint)
}

func runListing(cmd *cobra.Command, f *flags, paths []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	l, err := newLister(cmd, f)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	if f.watch {
		if len(paths) != 1 {
			return fmt.Errorf("--watch takes a single directory, got %d paths", len(paths))
		}
		return watch(ctx, out, l, paths[0])
	}

	for i, path := range paths {
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s:\n", path)
		}
		if err := l.list(ctx, out, path); err != nil {
			return err
		}
	}
	return nil
}

// watch lists dir and lists it again on every change until ctx is done.
func watch(ctx context.Context, out io.Writer, l *lister, dir string) error {
	if err := l.list(ctx, out, dir); err != nil {
		return err
	}

	return listing.Watch(ctx, dir, listing.DefaultDebounce, func() {
		fmt.Fprintln(out)
		if err := l.list(ctx, out, dir); err != nil {
			galog.Errorf("Failed to list %s: %v", dir, err)
		}
	})
}
