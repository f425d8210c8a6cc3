// Site placement: each planetary hub is dressed with a handful of surface
// facilities whose kinds follow two smooth noise fields across the galaxy, so
// that neighbouring planets tend to share an economic character.
package world

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/ex-umbris/internal/catalog"
)

const (
	siteFrequency  = 1.6  // Noise cycles across the [-1,1] plane
	siteIndexShift = 0.37 // Sample offset between successive sites on one planet
)

// siteField samples development and habitability over the galaxy plane.
type siteField struct {
	development  opensimplex.Noise
	habitability opensimplex.Noise
}

func newSiteField(seed int64) *siteField {
	return &siteField{
		development:  opensimplex.NewNormalized(seed),
		habitability: opensimplex.NewNormalized(seed + 1),
	}
}

// kindAt returns the site kind for the index-th site at c.
func (f *siteField) kindAt(c Coord, index int) LocationKind {
	x := c.X + float64(index)*siteIndexShift
	y := c.Y - float64(index)*siteIndexShift
	dev := octaveNoise(f.development, x, y, 3, siteFrequency, 0.5)
	hab := octaveNoise(f.habitability, x, y, 3, siteFrequency, 0.5)
	return deriveSiteKind(dev, hab)
}

// deriveSiteKind maps the two field values (0.0-1.0) to a site kind.
func deriveSiteKind(dev, hab float64) LocationKind {
	switch {
	case dev > 0.62:
		if hab > 0.5 {
			return KindCommercial
		}
		return KindIndustrial
	case dev > 0.52:
		if hab > 0.55 {
			return KindResidential
		}
		return KindGovernmental
	case dev < 0.38:
		if hab > 0.5 {
			return KindWilderness
		}
		return KindResourceExtraction
	case hab > 0.55:
		return KindFarming
	case hab < 0.42:
		return KindResourceExtraction
	default:
		return KindTourism
	}
}

// placeSites seeds the noise fields from the shared source, then gives every
// planetary hub between 1 and MaxSitesPerPlanet sites.
func (gen *generator) placeSites() {
	field := newSiteField(gen.rng.Int63())

	for _, loc := range gen.galaxy.Locations {
		if loc.Kind != KindPlanetaryHub {
			continue
		}
		n := 1 + gen.rng.Intn(gen.cfg.MaxSitesPerPlanet)
		for i := 0; i < n; i++ {
			kind := field.kindAt(loc.Coord, i)
			fallback := fmt.Sprintf("%s %s", loc.Body, kind)
			name := gen.fillOr(siteNameKind(kind), catalog.PlanetPlaceholder, loc.Body, fallback)
			loc.Sites = append(loc.Sites, Site{Kind: kind, Name: name})
		}
	}
}

// siteNameKind maps a surface location kind to its name template category.
func siteNameKind(kind LocationKind) catalog.NameKind {
	switch kind {
	case KindCommercial:
		return catalog.NameLocationCommercial
	case KindResourceExtraction:
		return catalog.NameLocationResourceExtraction
	case KindFarming:
		return catalog.NameLocationFarming
	case KindGovernmental:
		return catalog.NameLocationGovernmental
	case KindIndustrial:
		return catalog.NameLocationIndustrial
	case KindResidential:
		return catalog.NameLocationResidential
	case KindTourism:
		return catalog.NameLocationTourism
	case KindWilderness:
		return catalog.NameLocationWilderness
	case KindPlanetaryHub:
		return catalog.NameLocationPlanetaryHub
	default:
		return catalog.NameLocationJumpStation
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
