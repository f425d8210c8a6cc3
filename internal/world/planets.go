// Planet placement: spreads each hub's planets into the angular gaps between
// its existing links so that planets do not sit on top of jump lanes.
package world

import (
	"math"
	"sort"

	"github.com/talgya/ex-umbris/internal/entropy"
)

// gap is an angular slice [start, end) around a hub holding count planets.
type gap struct {
	start, end float64
	count      int
}

// populateHub rolls the planet count for a hub and places its planets.
func (gen *generator) populateHub(hub *Location) []*Location {
	count := entropy.Roll(gen.rng, gen.cfg.PlanetRolls, gen.cfg.PlanetDieSides)

	angles := make([]float64, 0, len(hub.Connections))
	for _, id := range hub.Connections {
		angles = append(angles, hub.Coord.AngleTo(gen.galaxy.Get(id).Coord))
	}

	band := gen.cfg.MaxPlanetDistance - gen.cfg.MinPlanetDistance
	var planets []*Location
	for _, g := range angularGaps(angles, count) {
		for i := 0; i < g.count; i++ {
			angle := g.start + (g.end-g.start)*float64(i+1)/float64(g.count+1)
			dist := gen.cfg.MinPlanetDistance + gen.rng.Float64()*band
			planets = append(planets, gen.addPlanet(hub, hub.Coord.Offset(angle, dist)))
		}
	}
	return planets
}

// angularGaps splits the circle around a hub at the given link headings and
// apportions count planets across the gaps. With no links the circle is cut
// into count equal slices of one planet each.
func angularGaps(angles []float64, count int) []gap {
	if len(angles) == 0 {
		gaps := make([]gap, 0, count)
		for i := 0; i < count; i++ {
			gaps = append(gaps, gap{
				start: 2 * math.Pi * float64(i) / float64(count),
				end:   2 * math.Pi * float64(i+1) / float64(count),
				count: 1,
			})
		}
		return gaps
	}

	sorted := append([]float64(nil), angles...)
	sort.Float64s(sorted)

	gaps := make([]gap, len(sorted))
	widths := make([]float64, len(sorted))
	for i := range sorted {
		start := sorted[i]
		var end float64
		if i == len(sorted)-1 {
			end = sorted[0] + 2*math.Pi // wrap-around gap
		} else {
			end = sorted[i+1]
		}
		gaps[i] = gap{start: start, end: end}
		widths[i] = end - start
	}

	for i, c := range ApportionGaps(widths, count) {
		gaps[i].count = c
	}
	return gaps
}

// ApportionGaps divides count items across gaps proportionally to their
// widths, rounding down, then hands the leftovers one each to the widest gaps.
// Equal widths keep their original order. The result always sums to count.
func ApportionGaps(widths []float64, count int) []int {
	counts := make([]int, len(widths))
	if len(widths) == 0 || count <= 0 {
		return counts
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}

	assigned := 0
	if total > 0 {
		for i, w := range widths {
			c := int(math.Floor(w / total * float64(count)))
			counts[i] = c
			assigned += c
		}
	}

	order := make([]int, len(widths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return widths[order[a]] > widths[order[b]]
	})

	for i := 0; i < count-assigned; i++ {
		counts[order[i%len(order)]]++
	}
	return counts
}
