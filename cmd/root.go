/*
Copyright © 2025 Liys <liys87x@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package cmd contains the command line interface for lifesrc.
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/telepair/lifesrc/pkg"
	"github.com/telepair/lifesrc/ui"
)

const (
	// DefaultProfilePort is the default profiling server port
	DefaultProfilePort = 6060
	// DefaultProfileInterval is the default interval for profile information output
	DefaultProfileInterval = 5 * time.Second
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default logging format
	DefaultLogFormat = "text"
	// DefaultLogFile is the default log file path (empty means stdout)
	DefaultLogFile = ""
)

var (
	lang            string
	refreshInterval time.Duration
	profile         bool
	profilePort     int
	profileInterval time.Duration
	logFile         string
	logLevel        string
	logFormat       string

	// exitCode carries the process exit status a subcommand decided
	// on, per the CLI's exit-code contract: 0 solution found, 1
	// exhausted, 2 invalid configuration, 3 I/O error. Subcommands
	// never call os.Exit themselves; only main does, after Execute
	// returns.
	exitCode int
)

const (
	exitSolutionFound     = 0
	exitExhausted         = 1
	exitInvalidConfig     = 2
	exitIOError           = 3
	exitCobraUsageFailure = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lifesrc",
	Short: "Search for periodic patterns in two-state outer-totalistic cellular automata",
	Long: `lifesrc searches for patterns that evolve periodically under a
two-state, outer-totalistic cellular automaton rule (Conway's Life and
its relatives), subject to an optional per-period translation and
symmetry constraint, in the spirit of lifesrc/rlifesrc.

  lifesrc new W H P [flags]   start a new search
  lifesrc load FILE [flags]   resume a search saved with --save

Each search can be watched in a terminal UI (--interactive) or polled
over HTTP (--status-addr), and supports the usual logging and
profiling flags below.`,
}

// Execute runs the command tree and returns the process exit code the
// CLI surface promises: 0 solution found, 1 search exhausted, 2
// invalid configuration (including cobra argument/flag errors), 3 I/O
// error. main is the only caller, and the only place that calls
// os.Exit.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return exitCobraUsageFailure
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&lang, "lang", ui.DefaultLang, "Language (en/cn)")
	rootCmd.PersistentFlags().DurationVar(&refreshInterval, "refresh-interval", ui.DefaultRefreshInterval, "Interactive UI refresh interval")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable profiling and runtime monitoring")
	rootCmd.PersistentFlags().IntVar(&profilePort, "profile-port", DefaultProfilePort, "Profiling server port")
	rootCmd.PersistentFlags().DurationVar(&profileInterval, "profile-interval", DefaultProfileInterval, "Profile information output interval")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", DefaultLogFile, "Log file path (empty logs to stdout)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", DefaultLogLevel, "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", DefaultLogFormat, "Log format (text/json)")
}

// InitLog initializes the logging system from the persistent flags.
func InitLog() {
	if err := pkg.InitLog(logLevel, logFormat, logFile); err != nil {
		slog.Error("failed to initialize logging", "error", err)
	}
}

// InitProfile starts the profiling server and watchdog if --profile
// was set.
func InitProfile(ctx context.Context) {
	if profile {
		go pkg.StartProfile(ctx, profilePort)
		go pkg.StartWatchdog(ctx, profileInterval)
	}
}
