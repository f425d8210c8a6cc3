package agents

import "github.com/talgya/ex-umbris/internal/world"

// Place moves an agent to dst, updating both presence sets in one step so the
// agent is never observable in zero or two locations. A dst of 0 unplaces it.
func Place(a *Agent, g *world.Galaxy, dst world.LocationID) {
	if a.Location == dst {
		return
	}
	id := uint64(a.ID)
	if from := g.Get(a.Location); from != nil {
		from.Depart(id)
	}
	a.Location = 0
	if to := g.Get(dst); to != nil {
		to.Arrive(id)
		a.Location = dst
	}
}

// SetRoute assigns a planned path. Routes shorter than two locations leave
// the agent idle.
func SetRoute(a *Agent, route []world.LocationID) {
	if len(route) < 2 {
		a.Route = nil
		return
	}
	a.Route = append([]world.LocationID(nil), route...)
}

// Advance moves the agent one hop along its route and returns the location it
// left and the one it reached. ok is false when the agent has no active route.
// A route of exactly two locations is consumed entirely on arrival.
func Advance(a *Agent, g *world.Galaxy) (from, to world.LocationID, ok bool) {
	if len(a.Route) < 2 {
		return 0, 0, false
	}
	from, to = a.Location, a.Route[1]
	Place(a, g, to)
	if len(a.Route) == 2 {
		a.Route = nil
	} else {
		a.Route = a.Route[1:]
	}
	return from, to, true
}
