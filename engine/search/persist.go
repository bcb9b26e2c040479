package search

import (
	"encoding/gob"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

// saveFormatVersion is bumped whenever the encoded layout changes
// incompatibly; LoadState refuses anything else.
const saveFormatVersion = 1

// savedConfig mirrors Config but omits the Rule pointer, which is not
// itself serialized: a save file records only the rule's Identity, and
// LoadState requires the caller to supply the matching *rule.Rule, the
// same way a Golly pattern file names its rule without embedding its
// transition table.
type savedConfig struct {
	Width, Height   int
	Period          int
	DX, DY          int
	DiagonalWidth   int
	Symmetry        coord.Class
	HasMaxPopulation bool
	MaxPopulation   int
	ReduceMax       bool
	SearchOrderAxes string
	ReverseOrder    bool
	NewState        NewStateStrategy
	RNGSeed         uint64
	KnownCells      []KnownCell
	AllowEmpty      bool
}

func toSavedConfig(cfg Config) savedConfig {
	sc := savedConfig{
		Width: cfg.Width, Height: cfg.Height, Period: cfg.Period,
		DX: cfg.DX, DY: cfg.DY, DiagonalWidth: cfg.DiagonalWidth,
		Symmetry: cfg.Symmetry, ReduceMax: cfg.ReduceMax,
		SearchOrderAxes: cfg.SearchOrderAxes, ReverseOrder: cfg.ReverseOrder,
		NewState: cfg.NewState, RNGSeed: cfg.RNGSeed,
		KnownCells: cfg.KnownCells, AllowEmpty: cfg.AllowEmpty,
	}
	if cfg.MaxPopulation != nil {
		sc.HasMaxPopulation = true
		sc.MaxPopulation = *cfg.MaxPopulation
	}
	return sc
}

func (sc savedConfig) toConfig(r *rule.Rule) Config {
	cfg := Config{
		Width: sc.Width, Height: sc.Height, Period: sc.Period,
		DX: sc.DX, DY: sc.DY, DiagonalWidth: sc.DiagonalWidth,
		Symmetry: sc.Symmetry, Rule: r, ReduceMax: sc.ReduceMax,
		SearchOrderAxes: sc.SearchOrderAxes, ReverseOrder: sc.ReverseOrder,
		NewState: sc.NewState, RNGSeed: sc.RNGSeed,
		KnownCells: sc.KnownCells, AllowEmpty: sc.AllowEmpty,
	}
	if sc.HasMaxPopulation {
		m := sc.MaxPopulation
		cfg.MaxPopulation = &m
	}
	return cfg
}

type savedStackEntry struct {
	Cell   int
	Value  rule.CellState
	Kind   reasonKind
	From   int
	Tried  bool
}

type saveFile struct {
	Version             int
	RuleIdentity        string
	Config              savedConfig
	Stack               []savedStackEntry
	Ceiling             int
	LastFoundPopulation int
	Status              Status
	Stats               Stats
	RNGState            []byte
}

// SaveState encodes the searcher's full state — configuration, the
// decision stack, the population ceiling, and the RNG stream — so
// LoadState can resume the identical search later. The propagation
// queue is always empty between Step calls, so it carries nothing to
// save.
func (s *Searcher) SaveState(w io.Writer) error {
	rngState, err := s.pcg.MarshalBinary()
	if err != nil {
		return &SerdeError{Reason: "marshal RNG state", Err: err}
	}

	sf := saveFile{
		Version:             saveFormatVersion,
		RuleIdentity:        s.world.r.Identity(),
		Config:              toSavedConfig(s.world.cfg),
		Ceiling:             s.ceiling,
		LastFoundPopulation: s.lastFoundPopulation,
		Status:              s.status,
		Stats:               s.stats,
		RNGState:            rngState,
	}
	for _, e := range s.stack {
		sf.Stack = append(sf.Stack, savedStackEntry{
			Cell: e.cell, Value: e.value, Kind: e.reason.kind, From: e.reason.from, Tried: e.tried,
		})
	}

	if err := gob.NewEncoder(w).Encode(sf); err != nil {
		return &SerdeError{Reason: "encode search state", Err: err}
	}
	return nil
}

// LoadState decodes a search previously written by SaveState. r must
// be the rule the search was configured with; a mismatched identity is
// reported as a SerdeError rather than silently producing a Searcher
// whose implication table doesn't match its saved decisions.
func LoadState(reader io.Reader, r *rule.Rule, log *slog.Logger) (*Searcher, error) {
	var sf saveFile
	if err := gob.NewDecoder(reader).Decode(&sf); err != nil {
		return nil, &SerdeError{Reason: "decode search state", Err: err}
	}
	if sf.Version != saveFormatVersion {
		return nil, serdeErrorf("unsupported save format version %d (want %d)", sf.Version, saveFormatVersion)
	}
	if r == nil || r.Identity() != sf.RuleIdentity {
		return nil, serdeErrorf("save file was written with rule %q, got %q", sf.RuleIdentity, ruleIdentityOf(r))
	}

	cfg := sf.Config.toConfig(r)
	if err := cfg.Validate(); err != nil {
		return nil, wrapConfigError("saved configuration no longer validates", err)
	}
	if log == nil {
		log = slog.Default()
	}

	w := newWorld(cfg)
	pcg := new(rand.PCG)
	if err := pcg.UnmarshalBinary(sf.RNGState); err != nil {
		return nil, &SerdeError{Reason: "unmarshal RNG state", Err: err}
	}

	s := &Searcher{
		world:               w,
		log:                 log,
		ceiling:             sf.Ceiling,
		lastFoundPopulation: sf.LastFoundPopulation,
		pcg:                 pcg,
		rng:                 rand.New(pcg),
		status:              sf.Status,
		stats:               sf.Stats,
	}

	if err := s.applyBaseline(cfg); err != nil {
		return nil, wrapConfigError("saved known cells or diagonal band are no longer consistent", err)
	}

	for _, se := range sf.Stack {
		entry := stackEntry{
			cell:   se.Cell,
			value:  se.Value,
			reason: reason{kind: se.Kind, from: se.From},
			tried:  se.Tried,
		}
		s.applyEntryRaw(entry)
		s.stack = append(s.stack, entry)
	}

	return s, nil
}

func ruleIdentityOf(r *rule.Rule) string {
	if r == nil {
		return "<nil>"
	}
	return r.Identity()
}

// applyEntryRaw replays a previously-recorded assignment directly,
// without re-running peer forcing or implication checks: the saved
// stack is already the complete, flattened sequence of every
// assignment that succeeded, peers and deductions included.
func (s *Searcher) applyEntryRaw(e stackEntry) {
	c := &s.world.cells[e.cell]
	c.state = e.value
	if c.isFrontWing && e.value == rule.Alive {
		s.population++
	}
	for _, n := range c.neighbors {
		if n == boundary {
			continue
		}
		nc := &s.world.cells[n]
		nc.desc.unknown--
		if e.value == rule.Alive {
			nc.desc.alive++
		} else {
			nc.desc.dead++
		}
	}
}
