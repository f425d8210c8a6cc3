package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/config"
	"github.com/talgya/ex-umbris/internal/engine"
	"github.com/talgya/ex-umbris/internal/entropy"
	"github.com/talgya/ex-umbris/internal/world"
)

func TestLoadCatalogs_Shipped(t *testing.T) {
	cfg := config.Default()
	cfg.NamesPath = "../../data/names.yaml"
	cfg.TraitsPath = "../../data/traits.yaml"

	names, traits, err := loadCatalogs(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, names.Has(catalog.NameSystem))
	assert.NotEmpty(t, traits)
}

func TestLoadCatalogs_MissingFilesDegrade(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.NamesPath = filepath.Join(dir, "names.yaml")
	cfg.TraitsPath = filepath.Join(dir, "traits.yaml")

	names, traits, err := loadCatalogs(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, names)
	assert.Len(t, names.Missing(), catalog.NumNameKinds)
	assert.Empty(t, traits)
}

func TestLoadCatalogs_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.NamesPath = "../../data/names.yaml"
	cfg.TraitsPath = "../../data/traits.yaml"

	_, _, err := loadCatalogs(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorder_KeepsEventsBeyondRetention(t *testing.T) {
	g := world.NewGalaxy()
	for i := 0; i < 3; i++ {
		g.AddLocation(world.KindJumpStation, "Stop", world.Coord{X: float64(i)})
	}
	g.Connect(1, 2)
	g.Connect(2, 3)

	const crowd = 1500
	roster := make([]*agents.Agent, 0, crowd)
	for i := 1; i <= crowd; i++ {
		a := &agents.Agent{ID: agents.AgentID(i), Name: "Traveller"}
		agents.Place(a, g, 1)
		agents.SetRoute(a, []world.LocationID{1, 2, 3})
		roster = append(roster, a)
	}

	simCfg := engine.DefaultSimConfig()
	require.Less(t, simCfg.MaxEvents, crowd)
	sim := engine.NewSimulation(g, roster, simCfg)

	cfg := config.Default()
	cfg.Agents = crowd
	cfg.RecordPath = filepath.Join(t.TempDir(), "runs.db")
	rec, err := openRecorder(cfg, g, roster)
	require.NoError(t, err)
	defer rec.db.Close()

	sim.Observer = eventObserver(context.Background(), rec, cfg.EpochLength)
	sim.TickTurn(1, &entropy.Script{})
	rec.flush()

	assert.Len(t, sim.Events, simCfg.MaxEvents)
	assert.Empty(t, rec.pending)

	s, err := rec.db.RunSummary(rec.run)
	require.NoError(t, err)
	assert.Equal(t, crowd, s.Events)
	assert.Equal(t, uint64(1), s.LastTurn)

	sim.TickTurn(2, &entropy.Script{})
	rec.flush()

	s, err = rec.db.RunSummary(rec.run)
	require.NoError(t, err)
	assert.Equal(t, 3*crowd, s.Events, "second turn adds a move and an arrival per agent")
}
