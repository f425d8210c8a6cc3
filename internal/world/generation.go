// Galaxy generation: rejection-sampled jump stations, proximity links between
// them, and a cluster of planets around each station.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/entropy"
)

// ErrInvalidArgument is returned for non-positive requested counts and
// unusable hub spacing.
var ErrInvalidArgument = errors.New("invalid argument")

// Fallback names used when a catalog category is missing.
const (
	unknownSystem = "Unknown System"
	unknownPlanet = "Unknown Planet"
)

// GenConfig holds galaxy generation parameters.
type GenConfig struct {
	MinHubSpacing        float64 // No two hubs closer than this
	MaxHubSpacing        float64 // Link range; every new hub must be within it of an existing one
	MaxPlacementAttempts int     // Rejection-sampling cap per hub

	PlanetRolls       int     // Planets per hub = PlanetRolls × d(PlanetDieSides)
	PlanetDieSides    int
	MinPlanetDistance float64 // Orbit radius band around the hub
	MaxPlanetDistance float64

	MaxSitesPerPlanet int // 0 disables site generation
}

// DefaultGenConfig returns the standard generation parameters.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		MinHubSpacing:        0.25,
		MaxHubSpacing:        0.5,
		MaxPlacementAttempts: 10_000,
		PlanetRolls:          3,
		PlanetDieSides:       3,
		MinPlanetDistance:    0.03,
		MaxPlanetDistance:    0.11,
		MaxSitesPerPlanet:    3,
	}
}

// MaxHubCount is the packing limit for hubs in the [-1,1]² plane: three
// quarters of the area divided by the square of the mid spacing. It is 0 when
// the spacing band has no positive midpoint.
func MaxHubCount(cfg GenConfig) int {
	mid := (cfg.MinHubSpacing + cfg.MaxHubSpacing) / 2
	if !(mid > 0) {
		return 0
	}
	return int(math.Ceil((4.0 * 0.75) / (mid * mid)))
}

type generator struct {
	rng    entropy.Source
	names  *catalog.Names
	cfg    GenConfig
	galaxy *Galaxy
	warned map[catalog.NameKind]bool
}

// Generate builds a galaxy of hubCount jump stations and their planets.
// Requests above MaxHubCount are clamped. If a hub cannot be placed within the
// attempt cap, generation continues with the hubs placed so far.
func Generate(rng entropy.Source, hubCount int, names *catalog.Names, cfg GenConfig) (*Galaxy, error) {
	if hubCount <= 0 {
		return nil, fmt.Errorf("hub count %d: %w", hubCount, ErrInvalidArgument)
	}
	if !(cfg.MinHubSpacing >= 0) || !(cfg.MaxHubSpacing > 0) {
		return nil, fmt.Errorf("hub spacing [%v, %v]: %w", cfg.MinHubSpacing, cfg.MaxHubSpacing, ErrInvalidArgument)
	}
	if limit := MaxHubCount(cfg); hubCount > limit {
		slog.Warn("requested hub count exceeds packing limit, reducing", "requested", hubCount, "max", limit)
		hubCount = limit
	}

	gen := &generator{
		rng:    rng,
		names:  names,
		cfg:    cfg,
		galaxy: NewGalaxy(),
		warned: make(map[catalog.NameKind]bool),
	}

	hubs := gen.placeHubs(hubCount)
	gen.connectHubs(hubs)
	for _, hub := range hubs {
		gen.populateHub(hub)
	}
	if cfg.MaxSitesPerPlanet > 0 {
		gen.placeSites()
	}

	slog.Info("galaxy generated",
		"hubs", len(hubs),
		"requested", hubCount,
		"locations", gen.galaxy.Len(),
	)
	return gen.galaxy, nil
}

// placeHubs puts the first hub at the origin and rejection-samples the rest.
func (gen *generator) placeHubs(count int) []*Location {
	hubs := make([]*Location, 0, count)
	hubs = append(hubs, gen.addHub(Coord{}))

	for i := 1; i < count; i++ {
		coord, ok := gen.sampleHubCoord(hubs)
		if !ok {
			slog.Warn("failed to place hub, stopping early",
				"index", i,
				"attempts", gen.cfg.MaxPlacementAttempts,
				"placed", len(hubs),
			)
			break
		}
		hubs = append(hubs, gen.addHub(coord))
	}
	return hubs
}

// sampleHubCoord draws candidates until one is far enough from every hub and
// close enough to at least one.
func (gen *generator) sampleHubCoord(hubs []*Location) (Coord, bool) {
	minSq := gen.cfg.MinHubSpacing * gen.cfg.MinHubSpacing
	maxSq := gen.cfg.MaxHubSpacing * gen.cfg.MaxHubSpacing

	for attempt := 0; attempt < gen.cfg.MaxPlacementAttempts; attempt++ {
		c := Coord{
			X: gen.rng.Float64()*2 - 1,
			Y: gen.rng.Float64()*2 - 1,
		}
		farEnough, closeEnough := true, false
		for _, h := range hubs {
			d := c.SquareDistance(h.Coord)
			if d < minSq {
				farEnough = false
				break
			}
			if d <= maxSq {
				closeEnough = true
			}
		}
		if farEnough && closeEnough {
			return c, true
		}
	}
	return Coord{}, false
}

// connectHubs links every hub pair within link range.
func (gen *generator) connectHubs(hubs []*Location) {
	maxSq := gen.cfg.MaxHubSpacing * gen.cfg.MaxHubSpacing
	for i := 0; i < len(hubs); i++ {
		for j := i + 1; j < len(hubs); j++ {
			if hubs[i].Coord.SquareDistance(hubs[j].Coord) <= maxSq {
				gen.galaxy.Connect(hubs[i].ID, hubs[j].ID)
			}
		}
	}
}

func (gen *generator) addHub(c Coord) *Location {
	system := gen.pickOr(catalog.NameSystem, unknownSystem)
	name := gen.fillOr(catalog.NameLocationJumpStation, catalog.SystemPlaceholder, system, system)

	loc := gen.galaxy.AddLocation(KindJumpStation, name, c)
	loc.Body = system
	return loc
}

func (gen *generator) addPlanet(hub *Location, c Coord) *Location {
	planet := gen.pickOr(catalog.NamePlanet, unknownPlanet)
	name := gen.fillOr(catalog.NameLocationPlanetaryHub, catalog.PlanetPlaceholder, planet, planet)

	loc := gen.galaxy.AddLocation(KindPlanetaryHub, name, c)
	loc.Body = planet
	loc.Hub = hub.ID
	gen.galaxy.Connect(hub.ID, loc.ID)
	return loc
}

// pickOr draws a name from kind, falling back when the category is missing.
func (gen *generator) pickOr(kind catalog.NameKind, fallback string) string {
	name, err := gen.names.Pick(gen.rng, kind)
	if err != nil {
		gen.warnMissing(kind, err)
		return fallback
	}
	return name
}

// fillOr draws a template from kind and substitutes value for placeholder.
func (gen *generator) fillOr(kind catalog.NameKind, placeholder, value, fallback string) string {
	name, err := gen.names.Fill(gen.rng, kind, placeholder, value)
	if err != nil {
		gen.warnMissing(kind, err)
		return fallback
	}
	return name
}

// warnMissing logs a missing category once per generation pass.
func (gen *generator) warnMissing(kind catalog.NameKind, err error) {
	if gen.warned[kind] {
		return
	}
	gen.warned[kind] = true
	slog.Error("name lookup failed, using fallback", "category", kind.String(), "error", err)
}
