package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
	"github.com/telepair/lifesrc/engine/search"
	"github.com/telepair/lifesrc/rulestring"
)

// searchFlags holds the new subcommand's flag values, resolved into a
// search.Config by buildConfig. A --config file bypasses this struct
// entirely and is resolved by loadFileConfig instead.
type searchFlags struct {
	ruleString    string
	dx, dy        int
	symmetry      string
	maxPopulation int
	strategy      string
	seed          uint64
	save          string
	diagonal      int
	reduceMax     bool
	searchOrder   string
	reverseOrder  bool
	allowEmpty    bool
}

// fileConfig is the shape of a --config YAML file, mirroring
// search.Config's fields under lowercase, hyphenless keys.
type fileConfig struct {
	Width         int    `mapstructure:"width"`
	Height        int    `mapstructure:"height"`
	Period        int    `mapstructure:"period"`
	DX            int    `mapstructure:"dx"`
	DY            int    `mapstructure:"dy"`
	DiagonalWidth int    `mapstructure:"diagonal_width"`
	Symmetry      string `mapstructure:"symmetry"`
	Rule          string `mapstructure:"rule"`
	MaxPopulation *int   `mapstructure:"max_population"`
	ReduceMax     bool   `mapstructure:"reduce_max"`
	SearchOrder   string `mapstructure:"search_order"`
	ReverseOrder  bool   `mapstructure:"reverse_order"`
	NewState      string `mapstructure:"new_state"`
	Seed          uint64 `mapstructure:"seed"`
	AllowEmpty    bool   `mapstructure:"allow_empty"`
	KnownCells    []struct {
		X     int    `mapstructure:"x"`
		Y     int    `mapstructure:"y"`
		T     int    `mapstructure:"t"`
		State string `mapstructure:"state"`
	} `mapstructure:"known_cells"`
}

// loadFileConfig reads a YAML search configuration from path with
// viper, the way niceyeti-tabular's reinforcement package loads
// simulation hyperparameters.
func loadFileConfig(path string) (search.Config, *rule.Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return search.Config{}, nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return search.Config{}, nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	r, err := rulestring.Parse(fc.Rule)
	if err != nil {
		return search.Config{}, nil, fmt.Errorf("config file rule: %w", err)
	}

	sym, err := coord.ParseClass(fc.Symmetry)
	if err != nil {
		return search.Config{}, nil, fmt.Errorf("config file symmetry: %w", err)
	}

	newState := search.AliveFirst
	if fc.NewState != "" {
		if newState, err = search.ParseNewStateStrategy(fc.NewState); err != nil {
			return search.Config{}, nil, fmt.Errorf("config file new_state: %w", err)
		}
	}

	cfg := search.Config{
		Width: fc.Width, Height: fc.Height, Period: fc.Period,
		DX: fc.DX, DY: fc.DY, DiagonalWidth: fc.DiagonalWidth,
		Symmetry: sym, Rule: r,
		MaxPopulation:   fc.MaxPopulation,
		ReduceMax:       fc.ReduceMax,
		SearchOrderAxes: fc.SearchOrder,
		ReverseOrder:    fc.ReverseOrder,
		NewState:        newState,
		RNGSeed:         fc.Seed,
		AllowEmpty:      fc.AllowEmpty,
	}
	for _, kc := range fc.KnownCells {
		state, err := parseCellState(kc.State)
		if err != nil {
			return search.Config{}, nil, fmt.Errorf("config file known_cells: %w", err)
		}
		cfg.KnownCells = append(cfg.KnownCells, search.KnownCell{
			Coord: coord.Coord{X: kc.X, Y: kc.Y, T: kc.T},
			State: state,
		})
	}
	return cfg, r, nil
}

func parseCellState(s string) (rule.CellState, error) {
	switch s {
	case "Dead", "dead":
		return rule.Dead, nil
	case "Alive", "alive":
		return rule.Alive, nil
	default:
		return 0, fmt.Errorf("unrecognized cell state %q", s)
	}
}

// buildConfig resolves width/height/period positional args plus sf
// into a search.Config and its Rule, parsing the rule string and
// symmetry name.
func buildConfig(width, height, period int, sf searchFlags) (search.Config, error) {
	r, err := rulestring.Parse(sf.ruleString)
	if err != nil {
		return search.Config{}, fmt.Errorf("rule: %w", err)
	}
	sym, err := coord.ParseClass(sf.symmetry)
	if err != nil {
		return search.Config{}, fmt.Errorf("symmetry: %w", err)
	}
	strategy, err := search.ParseNewStateStrategy(sf.strategy)
	if err != nil {
		return search.Config{}, fmt.Errorf("strategy: %w", err)
	}

	cfg := search.Config{
		Width: width, Height: height, Period: period,
		DX: sf.dx, DY: sf.dy, DiagonalWidth: sf.diagonal,
		Symmetry: sym, Rule: r,
		ReduceMax:       sf.reduceMax,
		SearchOrderAxes: sf.searchOrder,
		ReverseOrder:    sf.reverseOrder,
		NewState:        strategy,
		RNGSeed:         sf.seed,
		AllowEmpty:      sf.allowEmpty,
	}
	if sf.maxPopulation >= 0 {
		m := sf.maxPopulation
		cfg.MaxPopulation = &m
	}
	return cfg, nil
}
