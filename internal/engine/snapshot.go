package engine

import (
	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/world"
)

// AgentView is a read-only copy of one agent's state.
type AgentView struct {
	ID        agents.AgentID                    `json:"id"`
	Name      string                            `json:"name"`
	Gender    agents.Gender                     `json:"gender"`
	Location  world.LocationID                  `json:"location"`
	Route     []world.LocationID                `json:"route,omitempty"`
	Traits    []string                          `json:"traits"`
	Modifiers map[catalog.AttributeKind]float64 `json:"modifiers"`
}

// Snapshot is a copy of the roster at the end of a turn. Hosts diff
// successive snapshots instead of subscribing to state changes.
type Snapshot struct {
	Turn   uint64      `json:"turn"`
	Agents []AgentView `json:"agents"`
}

// Snapshot copies the current roster state.
func (s *Simulation) Snapshot() Snapshot {
	views := make([]AgentView, 0, len(s.Agents))
	for _, a := range s.Agents {
		v := AgentView{
			ID:        a.ID,
			Name:      a.Name,
			Gender:    a.Gender,
			Location:  a.Location,
			Traits:    make([]string, 0, len(a.Traits)),
			Modifiers: make(map[catalog.AttributeKind]float64, len(a.Modifiers)),
		}
		if len(a.Route) > 0 {
			v.Route = append([]world.LocationID(nil), a.Route...)
		}
		for _, t := range a.Traits {
			v.Traits = append(v.Traits, t.Name)
		}
		for k, m := range a.Modifiers {
			v.Modifiers[k] = m
		}
		views = append(views, v)
	}
	return Snapshot{Turn: s.Turn, Agents: views}
}

// Moved returns the IDs of agents whose location differs between two
// snapshots of the same roster.
func Moved(before, after Snapshot) []agents.AgentID {
	prev := make(map[agents.AgentID]world.LocationID, len(before.Agents))
	for _, v := range before.Agents {
		prev[v.ID] = v.Location
	}
	var moved []agents.AgentID
	for _, v := range after.Agents {
		if loc, ok := prev[v.ID]; ok && loc != v.Location {
			moved = append(moved, v.ID)
		}
	}
	return moved
}
