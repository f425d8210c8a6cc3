// Simulation ties the galaxy and the agent roster together and advances them
// one turn at a time.
//
// A Simulation is single-threaded: one turn must complete before the next
// begins, and callers must not read agent or location state mid-turn.
package engine

import (
	"fmt"

	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/entropy"
	"github.com/talgya/ex-umbris/internal/world"
)

// SimConfig holds turn simulation parameters.
type SimConfig struct {
	RouteChance float64 // Per-turn chance an idle agent picks a new destination
	MaxEvents   int     // Recent events retained in memory
}

// DefaultSimConfig returns the standard simulation parameters.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		RouteChance: 0.1,
		MaxEvents:   1000,
	}
}

// Simulation holds the complete world state.
type Simulation struct {
	Galaxy     *world.Galaxy
	Agents     []*agents.Agent
	AgentIndex map[agents.AgentID]*agents.Agent
	Turn       uint64  // Most recent turn processed
	Events     []Event // Recent events, oldest first

	// Observer, if set, is called synchronously for every event.
	Observer func(Event)

	Stats SimStats
	cfg   SimConfig
}

// SimStats tracks aggregate roster statistics.
type SimStats struct {
	Agents       int    `json:"agents"`
	Travelling   int    `json:"travelling"`
	Idle         int    `json:"idle"`
	Unplaced     int    `json:"unplaced"`
	RoutesChosen uint64 `json:"routes_chosen"`
	Moves        uint64 `json:"moves"`
	Arrivals     uint64 `json:"arrivals"`
}

// NewSimulation creates a Simulation from a generated galaxy and roster.
func NewSimulation(g *world.Galaxy, roster []*agents.Agent, cfg SimConfig) *Simulation {
	index := make(map[agents.AgentID]*agents.Agent, len(roster))
	for _, a := range roster {
		index[a.ID] = a
	}
	sim := &Simulation{
		Galaxy:     g,
		Agents:     roster,
		AgentIndex: index,
		cfg:        cfg,
	}
	sim.updateStats()
	return sim
}

// Run advances the simulation by the given number of turns.
func (s *Simulation) Run(rng entropy.Source, turns int) {
	for i := 0; i < turns; i++ {
		s.TickTurn(s.Turn+1, rng)
	}
}

// TickTurn processes every agent once, in roster order. Idle agents may pick
// a new destination; any agent with an active route then moves one hop.
func (s *Simulation) TickTurn(turn uint64, rng entropy.Source) {
	s.Turn = turn
	for _, a := range s.Agents {
		if a.Location == 0 {
			continue
		}

		if a.IsIdle() && rng.Float64() < s.cfg.RouteChance {
			if route := s.chooseRoute(rng, a); route != nil {
				agents.SetRoute(a, route)
				s.Stats.RoutesChosen++
				s.emit(Event{
					Turn:     turn,
					Category: CategoryRoute,
					AgentID:  a.ID,
					From:     route[0],
					To:       route[len(route)-1],
					Description: fmt.Sprintf("%s plots a course to %s (%d jumps)",
						a.Name, s.Galaxy.Get(route[len(route)-1]).Name, len(route)-1),
				})
			}
		}

		from, to, moved := agents.Advance(a, s.Galaxy)
		if !moved {
			continue
		}
		s.Stats.Moves++
		s.emit(Event{
			Turn:        turn,
			Category:    CategoryMove,
			AgentID:     a.ID,
			From:        from,
			To:          to,
			Description: fmt.Sprintf("%s travels to %s", a.Name, s.Galaxy.Get(to).Name),
		})
		if a.IsIdle() {
			s.Stats.Arrivals++
			s.emit(Event{
				Turn:        turn,
				Category:    CategoryArrival,
				AgentID:     a.ID,
				From:        from,
				To:          to,
				Description: fmt.Sprintf("%s arrives at %s", a.Name, s.Galaxy.Get(to).Name),
			})
		}
	}
	s.trimEvents()
	s.updateStats()
}

// chooseRoute picks a destination among every other reachable location,
// weighted by the total cost of the route there. Costlier routes are more
// likely to be picked. Returns nil if nothing is reachable.
func (s *Simulation) chooseRoute(rng entropy.Source, a *agents.Agent) []world.LocationID {
	var routes [][]world.LocationID
	var weights []float64
	for _, loc := range s.Galaxy.Locations {
		if loc.ID == a.Location {
			continue
		}
		route := s.Galaxy.ShortestRoute(a.Location, loc.ID)
		if len(route) == 0 {
			continue
		}
		routes = append(routes, route)
		weights = append(weights, s.Galaxy.RouteCost(route))
	}

	idx := entropy.PickWeighted(rng, weights)
	if idx < 0 {
		return nil
	}
	return routes[idx]
}

func (s *Simulation) emit(e Event) {
	s.Events = append(s.Events, e)
	if s.Observer != nil {
		s.Observer(e)
	}
}

func (s *Simulation) trimEvents() {
	if s.cfg.MaxEvents > 0 && len(s.Events) > s.cfg.MaxEvents {
		s.Events = append([]Event(nil), s.Events[len(s.Events)-s.cfg.MaxEvents:]...)
	}
}

func (s *Simulation) updateStats() {
	s.Stats.Agents = len(s.Agents)
	s.Stats.Travelling, s.Stats.Idle, s.Stats.Unplaced = 0, 0, 0
	for _, a := range s.Agents {
		switch {
		case a.Location == 0:
			s.Stats.Unplaced++
		case a.IsIdle():
			s.Stats.Idle++
		default:
			s.Stats.Travelling++
		}
	}
}
