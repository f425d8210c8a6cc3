// Command exumbris generates a galaxy, populates it with agents, and runs the
// turn simulation, optionally recording the session to SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/config"
	"github.com/talgya/ex-umbris/internal/engine"
	"github.com/talgya/ex-umbris/internal/entropy"
	"github.com/talgya/ex-umbris/internal/persistence"
	"github.com/talgya/ex-umbris/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML session config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("bad configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	slog.Info("Ex Umbris", "seed", cfg.Seed, "hubs", cfg.Hubs, "agents", cfg.Agents)

	// ── Catalogs ──────────────────────────────────────────────────────
	names, traits, err := loadCatalogs(ctx, cfg)
	if err != nil {
		return err
	}

	// ── Galaxy ────────────────────────────────────────────────────────
	rng := entropy.New(cfg.Seed)
	g, err := world.Generate(rng, cfg.Hubs, names, world.DefaultGenConfig())
	if err != nil {
		return fmt.Errorf("generate galaxy: %w", err)
	}
	for kind, n := range world.KindCounts(g) {
		slog.Debug("location kind", "kind", kind.String(), "count", n)
	}
	slog.Info("galaxy ready", "locations", humanize.Comma(int64(g.Len())), "hubs", len(g.Hubs()))

	// ── Roster ────────────────────────────────────────────────────────
	roster, err := agents.NewSpawner(names, traits).Spawn(rng, cfg.Agents, g)
	if err != nil {
		return fmt.Errorf("spawn agents: %w", err)
	}
	slog.Info("roster ready", "agents", humanize.Comma(int64(len(roster))))

	simCfg := engine.DefaultSimConfig()
	simCfg.RouteChance = cfg.RouteChance
	sim := engine.NewSimulation(g, roster, simCfg)

	// ── Recorder ──────────────────────────────────────────────────────
	var rec *recorder
	if cfg.RecordPath != "" {
		rec, err = openRecorder(cfg, g, roster)
		if err != nil {
			return err
		}
		defer rec.close(sim)
	}

	// ── Turn loop ─────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.MaxTurns = cfg.Turns
	eng.Interval = cfg.TurnInterval
	eng.EpochLength = cfg.EpochLength

	sim.Observer = eventObserver(ctx, rec, cfg.EpochLength)
	eng.OnTurn = func(turn uint64) {
		sim.TickTurn(turn, rng)
		if rec != nil {
			rec.flush()
		}
	}
	eng.OnEpoch = func(turn uint64) {
		reportEpoch(sim, turn, cfg.EpochLength)
	}

	fmt.Printf("\n%s agents drift between %s locations. (Ctrl+C to stop)\n",
		humanize.Comma(int64(len(roster))), humanize.Comma(int64(g.Len())))

	err = eng.Run(ctx)
	slog.Info("session ended",
		"turns", humanize.Comma(int64(eng.Turn)),
		"moves", humanize.Comma(int64(sim.Stats.Moves)),
		"arrivals", humanize.Comma(int64(sim.Stats.Arrivals)),
	)
	return err
}

// loadCatalogs reads both catalogs in parallel. A missing or broken catalog
// degrades to placeholders; only cancellation is returned as an error.
func loadCatalogs(ctx context.Context, cfg config.Config) (*catalog.Names, []*catalog.Trait, error) {
	var (
		names  *catalog.Names
		traits []*catalog.Trait
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := catalog.LoadNames(gctx, cfg.NamesPath)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			slog.Error("name catalog unavailable, using placeholder names", "path", cfg.NamesPath, "error", err)
			n = catalog.NewNames(nil)
		}
		names = n
		return nil
	})
	g.Go(func() error {
		t, err := catalog.LoadTraits(gctx, cfg.TraitsPath)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			// Agents simply carry no traits.
			slog.Error("trait catalog unavailable", "path", cfg.TraitsPath, "error", err)
		}
		traits = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return names, traits, nil
}

func reportEpoch(sim *engine.Simulation, turn, epochLength uint64) {
	busiest, crowd := "", 0
	for _, l := range sim.Galaxy.Locations {
		if n := l.Population(); n > crowd {
			busiest, crowd = l.Name, n
		}
	}
	slog.Info("epoch report",
		"at", engine.TurnLabel(turn, epochLength),
		"travelling", sim.Stats.Travelling,
		"idle", sim.Stats.Idle,
		"routes", humanize.Comma(int64(sim.Stats.RoutesChosen)),
		"moves", humanize.Comma(int64(sim.Stats.Moves)),
		"busiest", busiest,
		"busiest_population", crowd,
	)
}

// eventObserver sees every event as it happens, ahead of the simulation's
// in-memory trimming, and feeds the debug log and the recorder.
func eventObserver(ctx context.Context, rec *recorder, epochLength uint64) func(engine.Event) {
	debug := slog.Default().Enabled(ctx, slog.LevelDebug)
	return func(e engine.Event) {
		if debug {
			slog.Debug(e.Description, "turn", engine.TurnLabel(e.Turn, epochLength), "category", e.Category)
		}
		if rec != nil {
			rec.observe(e)
		}
	}
}

// recorder pushes session state into the run database as the loop advances.
// Events are buffered as they are observed and written in batches by flush.
type recorder struct {
	db      *persistence.DB
	run     persistence.RunID
	pending []engine.Event
}

func openRecorder(cfg config.Config, g *world.Galaxy, roster []*agents.Agent) (*recorder, error) {
	if dir := filepath.Dir(cfg.RecordPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create record dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.RecordPath)
	if err != nil {
		return nil, err
	}
	run, err := db.BeginRun(cfg.Seed, cfg.Hubs, cfg.Agents)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := db.RecordGalaxy(run, g); err != nil {
		db.Close()
		return nil, fmt.Errorf("record galaxy: %w", err)
	}
	if err := db.RecordRoster(run, roster); err != nil {
		db.Close()
		return nil, fmt.Errorf("record roster: %w", err)
	}
	slog.Info("recording session", "path", cfg.RecordPath, "run", run)
	return &recorder{db: db, run: run}, nil
}

func (r *recorder) observe(e engine.Event) {
	r.pending = append(r.pending, e)
}

// flush writes buffered events. On failure they stay buffered for the next
// flush.
func (r *recorder) flush() {
	if len(r.pending) == 0 {
		return
	}
	if err := r.db.RecordEvents(r.run, r.pending); err != nil {
		slog.Error("record events failed", "run", r.run, "pending", len(r.pending), "error", err)
		return
	}
	r.pending = r.pending[:0]
}

func (r *recorder) close(sim *engine.Simulation) {
	r.flush()
	if err := r.db.RecordRoster(r.run, sim.Agents); err != nil {
		slog.Error("final roster save failed", "error", err)
	}
	if s, err := r.db.RunSummary(r.run); err == nil {
		slog.Info("run recorded",
			"run", s.RunID,
			"locations", s.Locations,
			"events", humanize.Comma(int64(s.Events)),
			"last_turn", s.LastTurn,
		)
	}
	r.db.Close()
}
