// Agent spawning: creates the initial roster with gender, name, starting
// location, and traits.
package agents

import (
	"fmt"
	"log/slog"

	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/entropy"
	"github.com/talgya/ex-umbris/internal/world"
)

// Spawner creates agents for the simulation.
type Spawner struct {
	names  *catalog.Names
	traits []*catalog.Trait
	nextID AgentID
	warned map[catalog.NameKind]bool
}

// NewSpawner creates an agent spawner drawing from the given catalogs.
// A nil or empty trait list is allowed: agents then receive no traits.
func NewSpawner(names *catalog.Names, traits []*catalog.Trait) *Spawner {
	if len(traits) == 0 {
		slog.Error("trait catalog is empty, agents will have no traits")
	}
	return &Spawner{
		names:  names,
		traits: traits,
		nextID: 1,
		warned: make(map[catalog.NameKind]bool),
	}
}

// Spawn creates count agents placed uniformly at random across g.
func (s *Spawner) Spawn(rng entropy.Source, count int, g *world.Galaxy) ([]*Agent, error) {
	if count <= 0 {
		return nil, fmt.Errorf("agent count %d: %w", count, ErrInvalidArgument)
	}
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("spawn into empty galaxy: %w", ErrInvalidArgument)
	}

	roster := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		roster = append(roster, s.spawnOne(rng, g))
	}

	slog.Info("agents spawned", "count", len(roster), "traits_available", len(s.traits))
	return roster, nil
}

func (s *Spawner) spawnOne(rng entropy.Source, g *world.Galaxy) *Agent {
	id := s.nextID
	s.nextID++

	gender := GenderMale
	if entropy.Roll(rng, 1, 2) == 2 {
		gender = GenderFemale
	}

	a := &Agent{
		ID:        id,
		Gender:    gender,
		Name:      s.generateName(rng, gender),
		Modifiers: make(map[catalog.AttributeKind]float64),
	}

	loc := g.Locations[rng.Intn(g.Len())]
	Place(a, g, loc.ID)

	for _, t := range AssignTraits(rng, s.traits) {
		a.AddTrait(t)
	}
	return a
}

func (s *Spawner) generateName(rng entropy.Source, gender Gender) string {
	firstKind := catalog.NameActorMale
	if gender == GenderFemale {
		firstKind = catalog.NameActorFemale
	}

	first, err := s.names.Pick(rng, firstKind)
	if err != nil {
		s.warnMissing(firstKind, err)
		return UnknownActor
	}
	last, err := s.names.Pick(rng, catalog.NameActorLastName)
	if err != nil {
		s.warnMissing(catalog.NameActorLastName, err)
		return first
	}
	return first + " " + last
}

func (s *Spawner) warnMissing(kind catalog.NameKind, err error) {
	if s.warned[kind] {
		return
	}
	s.warned[kind] = true
	slog.Error("name lookup failed, using fallback", "category", kind.String(), "error", err)
}
