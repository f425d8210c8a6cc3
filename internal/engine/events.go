package engine

import (
	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/world"
)

// Event categories.
const (
	CategoryRoute   = "route"   // Agent committed to a new destination
	CategoryMove    = "move"    // Agent moved one hop
	CategoryArrival = "arrival" // Agent reached the end of its route
)

// Event is a notable occurrence in the simulation.
type Event struct {
	Turn        uint64           `json:"turn" db:"turn"`
	Category    string           `json:"category" db:"category"`
	AgentID     agents.AgentID   `json:"agent_id" db:"agent_id"`
	From        world.LocationID `json:"from" db:"from_location"`
	To          world.LocationID `json:"to" db:"to_location"`
	Description string           `json:"description" db:"description"`
}

// EventsSince returns retained events from turns after the given one.
func (s *Simulation) EventsSince(turn uint64) []Event {
	for i, e := range s.Events {
		if e.Turn > turn {
			return append([]Event(nil), s.Events[i:]...)
		}
	}
	return nil
}

// CountByCategory tallies events per category.
func CountByCategory(events []Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Category]++
	}
	return counts
}
