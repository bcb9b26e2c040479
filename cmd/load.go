package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/telepair/lifesrc/engine/search"
	"github.com/telepair/lifesrc/rulestring"
)

var loadRuleString string
var loadInteractive bool
var loadStatusAddr string
var loadSave string

var loadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Resume a search previously saved with --save",
	Long: `load restores a Searcher from a state file written by "new --save"
and resumes stepping it to completion. The rule is not itself stored
in the save file (only its identity is, to guard against loading
against a different rule by mistake), so --rule must name the same
rule the search was started with.

Exit codes: 0 a solution was found, 1 the search space was exhausted
without one, 2 the save file's configuration no longer validates, 3 an
I/O error occurred opening the file or writing the state back out (to
--save when given, otherwise to FILE itself).`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadRuleString, "rule", "r", "B3/S23", "Rule string the search was started with")
	loadCmd.Flags().StringVar(&loadSave, "save", "", "Save the search state back to this file on exit (defaults to overwriting FILE)")
	loadCmd.Flags().BoolVar(&loadInteractive, "interactive", false, "Watch the search in a terminal UI instead of running headlessly")
	loadCmd.Flags().StringVar(&loadStatusAddr, "status-addr", "", "Serve search progress over HTTP at this address (e.g. :8080) while running headlessly")
}

func runLoad(_ *cobra.Command, args []string) error {
	InitLog()
	ctx := context.Background()
	InitProfile(ctx)

	path := args[0]
	r, err := rulestring.Parse(loadRuleString)
	if err != nil {
		slog.Error("invalid rule", "error", err)
		exitCode = exitInvalidConfig
		return nil
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		slog.Error("failed to open save file", "error", err)
		exitCode = exitIOError
		return nil
	}
	defer f.Close()

	s, err := search.LoadState(f, r, slog.Default())
	if err != nil {
		var serdeErr *search.SerdeError
		var cfgErr *search.ConfigError
		switch {
		case errors.As(err, &serdeErr):
			slog.Error("save file could not be decoded", "error", err)
			exitCode = exitIOError
		case errors.As(err, &cfgErr):
			slog.Error("save file configuration no longer valid", "error", err)
			exitCode = exitInvalidConfig
		default:
			slog.Error("failed to load save file", "error", err)
			exitCode = exitIOError
		}
		return nil
	}

	savePath := loadSave
	if savePath == "" {
		savePath = path
	}

	exitCode = runSearcher(s, runOptions{
		interactive: loadInteractive,
		statusAddr:  loadStatusAddr,
		savePath:    savePath,
	})
	return nil
}
