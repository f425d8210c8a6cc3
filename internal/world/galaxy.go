package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Galaxy is the arena of all locations, indexed by ID-1.
// Connections are frozen once generation completes; only presence sets change
// afterwards. A Galaxy is not safe for concurrent use.
type Galaxy struct {
	Locations []*Location `json:"locations"`
}

// NewGalaxy creates an empty galaxy.
func NewGalaxy() *Galaxy {
	return &Galaxy{}
}

// AddLocation appends a location with the next sequential ID.
func (g *Galaxy) AddLocation(kind LocationKind, name string, coord Coord) *Location {
	loc := &Location{
		ID:      LocationID(len(g.Locations) + 1),
		Kind:    kind,
		Name:    name,
		Coord:   coord,
		present: mapset.New[uint64](),
	}
	g.Locations = append(g.Locations, loc)
	return loc
}

// Get returns the location with the given ID, or nil if it does not exist.
func (g *Galaxy) Get(id LocationID) *Location {
	if id == 0 || int(id) > len(g.Locations) {
		return nil
	}
	return g.Locations[id-1]
}

// Len returns the number of locations.
func (g *Galaxy) Len() int {
	return len(g.Locations)
}

// Connect adds an undirected edge between a and b. Self-loops and duplicate
// edges are ignored.
func (g *Galaxy) Connect(a, b LocationID) {
	la, lb := g.Get(a), g.Get(b)
	if la == nil || lb == nil || a == b || la.IsConnected(b) {
		return
	}
	la.Connections = append(la.Connections, b)
	lb.Connections = append(lb.Connections, a)
}

// Hubs returns all jump stations in ID order.
func (g *Galaxy) Hubs() []*Location {
	var hubs []*Location
	for _, l := range g.Locations {
		if l.Kind == KindJumpStation {
			hubs = append(hubs, l)
		}
	}
	return hubs
}

// EdgeCost returns the squared distance between two locations.
func (g *Galaxy) EdgeCost(a, b LocationID) float64 {
	return g.Get(a).Coord.SquareDistance(g.Get(b).Coord)
}

// KindCounts returns a summary of location kind distribution.
func KindCounts(g *Galaxy) map[LocationKind]int {
	counts := make(map[LocationKind]int)
	for _, l := range g.Locations {
		counts[l.Kind]++
	}
	return counts
}

// String returns a summary of the galaxy.
func (g *Galaxy) String() string {
	edges := 0
	for _, l := range g.Locations {
		edges += len(l.Connections)
	}
	return fmt.Sprintf("Galaxy(locations=%d, edges=%d)", g.Len(), edges/2)
}
