package world

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// LocationID identifies a location. IDs start at 1 and are never reused;
// the zero value means "no location".
type LocationID uint32

// LocationKind tags what a location is.
type LocationKind uint8

const (
	KindJumpStation        LocationKind = iota // Hub connecting clusters
	KindPlanetaryHub                           // Planet orbiting a hub
	KindCommercial                             // Trade and markets
	KindResourceExtraction                     // Mines, gas harvesting
	KindFarming                                // Agriculture
	KindGovernmental                           // Administration
	KindIndustrial                             // Factories, shipyards
	KindResidential                            // Habitats
	KindTourism                                // Resorts
	KindWilderness                             // Untamed surface
)

// NumLocationKinds is the total number of location kinds.
const NumLocationKinds = 10

var kindNames = [NumLocationKinds]string{
	"Jump Station",
	"Planetary Hub",
	"Commercial",
	"Resource Extraction",
	"Farming",
	"Governmental",
	"Industrial",
	"Residential",
	"Tourism",
	"Wilderness",
}

// String returns a human-readable name for the kind.
func (k LocationKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("LocationKind(%d)", uint8(k))
}

// Site is a named facility on a planetary hub. Sites are descriptive only and
// are not part of the route graph.
type Site struct {
	Kind LocationKind `json:"kind"`
	Name string       `json:"name"`
}

// Location is a node of the galaxy graph.
type Location struct {
	ID    LocationID   `json:"id"`
	Kind  LocationKind `json:"kind"`
	Name  string       `json:"name"`
	Body  string       `json:"body"` // System or planet name the display name was built from
	Coord Coord        `json:"coord"`

	// Connections holds neighbour IDs in insertion order. Always symmetric.
	Connections []LocationID `json:"connections"`

	// Hub is the owning jump station for subordinate locations, 0 for hubs.
	Hub LocationID `json:"hub,omitempty"`

	Sites []Site `json:"sites,omitempty"`

	present mapset.Set[uint64]
}

// IsConnected reports whether other is a neighbour.
func (l *Location) IsConnected(other LocationID) bool {
	for _, c := range l.Connections {
		if c == other {
			return true
		}
	}
	return false
}

// Arrive adds an agent to the presence set.
func (l *Location) Arrive(agentID uint64) {
	l.present.Put(agentID)
}

// Depart removes an agent from the presence set.
func (l *Location) Depart(agentID uint64) {
	l.present.Remove(agentID)
}

// IsPresent reports whether the agent is at this location.
func (l *Location) IsPresent(agentID uint64) bool {
	return l.present.Has(agentID)
}

// Population returns the number of agents present.
func (l *Location) Population() int {
	return l.present.Size()
}

// Occupants returns the IDs of agents present, sorted ascending.
func (l *Location) Occupants() []uint64 {
	ids := make([]uint64, 0, l.present.Size())
	l.present.Each(func(id uint64) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
