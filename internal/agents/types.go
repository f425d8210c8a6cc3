// Package agents provides the agent data model, trait assignment, spawning,
// and movement between locations.
package agents

import (
	"errors"

	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/world"
)

// ErrInvalidArgument is returned for non-positive requested counts or an
// empty galaxy.
var ErrInvalidArgument = errors.New("invalid argument")

// UnknownActor is the display name used when name categories are missing.
const UnknownActor = "Unknown Actor"

// AgentID is a unique identifier for an agent.
type AgentID uint64

// Gender selects which first-name category an agent draws from.
type Gender uint8

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// String returns a human-readable name for the gender.
func (g Gender) String() string {
	if g == GenderFemale {
		return "Female"
	}
	return "Male"
}

// Agent is a simulated actor travelling the galaxy.
type Agent struct {
	ID     AgentID `json:"id"`
	Name   string  `json:"name"`
	Gender Gender  `json:"gender"`

	// Traits are fixed after creation; Modifiers is derived from them.
	Traits    []*catalog.Trait                  `json:"traits"`
	Modifiers map[catalog.AttributeKind]float64 `json:"modifiers"`

	// Location is a back-reference into the galaxy arena; 0 means unplaced.
	Location world.LocationID `json:"location"`

	// Route is the remaining planned path. When non-empty its head is the
	// agent's current location.
	Route []world.LocationID `json:"route,omitempty"`
}

// AddTrait attaches a trait and recomputes aggregated modifiers.
func (a *Agent) AddTrait(t *catalog.Trait) {
	a.Traits = append(a.Traits, t)
	a.recomputeModifiers()
}

// Modifier returns the aggregated delta for an attribute, 0 if untouched.
func (a *Agent) Modifier(kind catalog.AttributeKind) float64 {
	return a.Modifiers[kind]
}

// HasTrait reports whether the agent carries a trait with the given name.
func (a *Agent) HasTrait(name string) bool {
	for _, t := range a.Traits {
		if t.Name == name {
			return true
		}
	}
	return false
}

// IsIdle reports whether the agent has no active route.
func (a *Agent) IsIdle() bool {
	return len(a.Route) < 2
}

func (a *Agent) recomputeModifiers() {
	mods := make(map[catalog.AttributeKind]float64)
	for _, t := range a.Traits {
		for _, m := range t.Modifiers {
			mods[m.Attribute] += m.Delta
		}
	}
	a.Modifiers = mods
}
