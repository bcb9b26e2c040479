package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telepair/lifesrc/engine/search"
)

var errNeedsThreeArgs = errors.New("expected exactly three arguments: W H P")

var newFlags searchFlags
var newConfigFile string
var newInteractive bool
var newStatusAddr string

var newCmd = &cobra.Command{
	Use:   "new W H P",
	Short: "Start a new pattern search over a W x H x P space-time box",
	Long: `new constructs a search.Config from W, H, P and the flags below
(or entirely from --config, a YAML file), builds a Searcher, and steps
it to completion, printing every phase of the resulting pattern.

Exit codes: 0 a solution was found, 1 the search space was exhausted
without one, 2 the configuration was invalid, 3 an I/O error occurred
(reading --config or writing --save).`,
	Args: cobra.MaximumNArgs(3),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVarP(&newFlags.ruleString, "rule", "r", "B3/S23", "Rule string, e.g. B3/S23")
	newCmd.Flags().IntVarP(&newFlags.dx, "dx", "x", 0, "Per-period horizontal translation")
	newCmd.Flags().IntVarP(&newFlags.dy, "dy", "y", 0, "Per-period vertical translation")
	newCmd.Flags().StringVarP(&newFlags.symmetry, "symmetry", "s", "C1", "Symmetry class (C1/C2/C4/D2-/D2|/D2\\/D2//D4+/D4X/D8)")
	newCmd.Flags().IntVarP(&newFlags.maxPopulation, "max", "m", -1, "Maximum front-layer population (-1 for unlimited)")
	newCmd.Flags().StringVarP(&newFlags.strategy, "strategy", "n", "alive-first", "New-cell strategy (alive-first/dead-first/random)")
	newCmd.Flags().Uint64Var(&newFlags.seed, "seed", 0, "RNG seed, used when --strategy=random")
	newCmd.Flags().StringVar(&newFlags.save, "save", "", "Save the search state to this file on exit")
	newCmd.Flags().IntVar(&newFlags.diagonal, "diagonal-width", 0, "Restrict the search to a band within this many columns of the main diagonal (0 disables)")
	newCmd.Flags().BoolVar(&newFlags.reduceMax, "reduce-max", false, "Tighten the population ceiling after every solution found, to converge on the minimum")
	newCmd.Flags().StringVar(&newFlags.searchOrder, "search-order", "xyt", "Lattice axis iteration order, a permutation of x, y, t")
	newCmd.Flags().BoolVar(&newFlags.reverseOrder, "reverse-order", false, "Reverse the search order within each axis")
	newCmd.Flags().BoolVar(&newFlags.allowEmpty, "allow-empty", false, "Accept an all-Dead completion as a solution")
	newCmd.Flags().StringVar(&newConfigFile, "config", "", "Load the full search configuration from a YAML file instead of W H P and the flags above")
	newCmd.Flags().BoolVar(&newInteractive, "interactive", false, "Watch the search in a terminal UI instead of running headlessly")
	newCmd.Flags().StringVar(&newStatusAddr, "status-addr", "", "Serve search progress over HTTP at this address (e.g. :8080) while running headlessly")
}

func runNew(_ *cobra.Command, args []string) error {
	InitLog()
	ctx := context.Background()
	InitProfile(ctx)

	var cfg search.Config
	if newConfigFile != "" {
		fileCfg, _, err := loadFileConfig(newConfigFile)
		if err != nil {
			slog.Error("failed to load config file", "error", err)
			exitCode = exitIOError
			return nil
		}
		cfg = fileCfg
	} else {
		width, height, period, err := parseDimensions(args)
		if err != nil {
			slog.Error("invalid dimensions", "error", err)
			exitCode = exitInvalidConfig
			return nil
		}
		cfg, err = buildConfig(width, height, period, newFlags)
		if err != nil {
			slog.Error("invalid configuration", "error", err)
			exitCode = exitInvalidConfig
			return nil
		}
	}

	s, err := search.NewSearcher(cfg, slog.Default())
	if err != nil {
		slog.Error("search configuration rejected", "error", err)
		exitCode = exitInvalidConfig
		return nil
	}

	exitCode = runSearcher(s, runOptions{
		interactive: newInteractive,
		statusAddr:  newStatusAddr,
		savePath:    newFlags.save,
	})
	return nil
}

func parseDimensions(args []string) (width, height, period int, err error) {
	if len(args) != 3 {
		return 0, 0, 0, errNeedsThreeArgs
	}
	width, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	height, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	period, err = strconv.Atoi(args[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return width, height, period, nil
}
