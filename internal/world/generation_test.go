package world

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/entropy"
)

func testNames() *catalog.Names {
	return catalog.NewNames(map[catalog.NameKind][]string{
		catalog.NameSystem:                     {"Sol", "Vega", "Rigel", "Deneb"},
		catalog.NamePlanet:                     {"Terra", "Ares", "Kronos"},
		catalog.NameLocationJumpStation:        {"{System} Gate", "{System} Relay"},
		catalog.NameLocationPlanetaryHub:       {"{Planet} Prime", "{Planet} Landing"},
		catalog.NameLocationCommercial:         {"{Planet} Exchange"},
		catalog.NameLocationResourceExtraction: {"{Planet} Deep Mine"},
		catalog.NameLocationFarming:            {"{Planet} Fields"},
		catalog.NameLocationGovernmental:       {"{Planet} Assembly"},
		catalog.NameLocationIndustrial:         {"{Planet} Foundry"},
		catalog.NameLocationResidential:        {"{Planet} Habitat"},
		catalog.NameLocationTourism:            {"{Planet} Resort"},
		catalog.NameLocationWilderness:         {"{Planet} Badlands"},
	})
}

func TestGenerate_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := Generate(entropy.New(1), n, testNames(), DefaultGenConfig())
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestMaxHubCount(t *testing.T) {
	assert.Equal(t, 22, MaxHubCount(DefaultGenConfig()))
	assert.Equal(t, 0, MaxHubCount(GenConfig{}))
}

func TestGenerate_InvalidSpacing(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"zero band", 0, 0},
		{"negative max", 0.25, -0.5},
		{"negative min", -0.5, 0.5},
		{"nan max", 0.25, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGenConfig()
			cfg.MinHubSpacing, cfg.MaxHubSpacing = tt.min, tt.max
			g, err := Generate(entropy.New(1), 3, testNames(), cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, g)
		})
	}
}

func TestGenerate_ClampsHubCount(t *testing.T) {
	g, err := Generate(entropy.New(5), 1000, testNames(), DefaultGenConfig())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(g.Hubs()), MaxHubCount(DefaultGenConfig()))
	assert.NotEmpty(t, g.Hubs())
}

func TestGenerate_SingleHubScripted(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.MaxSitesPerPlanet = 0
	names := catalog.NewNames(map[catalog.NameKind][]string{
		catalog.NameSystem:               {"Sol"},
		catalog.NamePlanet:               {"Terra"},
		catalog.NameLocationJumpStation:  {"{System} Gate"},
		catalog.NameLocationPlanetaryHub: {"{Planet} Prime"},
	})
	// Every draw is zero: each die shows 1, so 3d3 rolls exactly 3 planets,
	// all at the minimum orbit radius.
	s := &entropy.Script{}

	g, err := Generate(s, 1, names, cfg)
	require.NoError(t, err)
	require.Equal(t, 4, g.Len())

	hub := g.Get(1)
	assert.Equal(t, KindJumpStation, hub.Kind)
	assert.Equal(t, "Sol Gate", hub.Name)
	assert.Equal(t, Coord{}, hub.Coord)
	assert.Equal(t, []LocationID{2, 3, 4}, hub.Connections)

	wantAngles := []float64{math.Pi / 3, math.Pi, 5 * math.Pi / 3}
	for i, id := range []LocationID{2, 3, 4} {
		p := g.Get(id)
		assert.Equal(t, KindPlanetaryHub, p.Kind)
		assert.Equal(t, "Terra Prime", p.Name)
		assert.Equal(t, "Terra", p.Body)
		assert.Equal(t, LocationID(1), p.Hub)
		assert.Equal(t, []LocationID{1}, p.Connections, "planet links only to its hub")
		assert.InDelta(t, 0.03*math.Cos(wantAngles[i]), p.Coord.X, 1e-12)
		assert.InDelta(t, 0.03*math.Sin(wantAngles[i]), p.Coord.Y, 1e-12)
	}

	// Hub name (2) + three dice + three planets × (planet name + template).
	assert.Equal(t, 11, s.IntDraws)
	assert.Equal(t, 3, s.FloatDraws)
	assert.Equal(t, 0, s.Int63Draws)
}

func TestGenerate_Symmetric(t *testing.T) {
	g, err := Generate(entropy.New(11), 15, testNames(), DefaultGenConfig())
	require.NoError(t, err)

	for _, a := range g.Locations {
		for _, b := range a.Connections {
			assert.True(t, g.Get(b).IsConnected(a.ID), "%d→%d has no reverse edge", a.ID, b)
		}
	}
}

func TestGenerate_HubSpacing(t *testing.T) {
	cfg := DefaultGenConfig()
	minSq := cfg.MinHubSpacing * cfg.MinHubSpacing
	maxSq := cfg.MaxHubSpacing * cfg.MaxHubSpacing

	for seed := int64(1); seed <= 10; seed++ {
		g, err := Generate(entropy.New(seed), 12, testNames(), cfg)
		require.NoError(t, err)
		hubs := g.Hubs()

		for i, a := range hubs {
			assert.LessOrEqual(t, math.Abs(a.Coord.X), 1.0)
			assert.LessOrEqual(t, math.Abs(a.Coord.Y), 1.0)

			linked := len(hubs) == 1
			for j, b := range hubs {
				if i == j {
					continue
				}
				d := a.Coord.SquareDistance(b.Coord)
				assert.GreaterOrEqual(t, d, minSq)
				if d <= maxSq {
					linked = true
					assert.True(t, a.IsConnected(b.ID))
				} else {
					assert.False(t, a.IsConnected(b.ID))
				}
			}
			assert.True(t, linked, "seed %d hub %d is out of range of every other hub", seed, a.ID)
		}
	}
}

func TestGenerate_GraphConnected(t *testing.T) {
	g, err := Generate(entropy.New(3), 10, testNames(), DefaultGenConfig())
	require.NoError(t, err)
	for _, l := range g.Locations {
		assert.NotEmpty(t, g.ShortestRoute(1, l.ID), "location %d unreachable", l.ID)
	}
}

func TestGenerate_Planets(t *testing.T) {
	cfg := DefaultGenConfig()
	g, err := Generate(entropy.New(21), 8, testNames(), cfg)
	require.NoError(t, err)

	perHub := make(map[LocationID]int)
	for _, l := range g.Locations {
		if l.Kind != KindPlanetaryHub {
			continue
		}
		perHub[l.Hub]++
		require.Equal(t, []LocationID{l.Hub}, l.Connections)

		hub := g.Get(l.Hub)
		r := math.Sqrt(l.Coord.SquareDistance(hub.Coord))
		assert.GreaterOrEqual(t, r, cfg.MinPlanetDistance-1e-12)
		assert.LessOrEqual(t, r, cfg.MaxPlanetDistance+1e-12)
		assert.True(t, strings.HasPrefix(l.Name, l.Body))
	}
	for _, hub := range g.Hubs() {
		n := perHub[hub.ID]
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 9)
		assert.Len(t, hub.Connections, n+countHubLinks(g, hub))
	}
}

func countHubLinks(g *Galaxy, hub *Location) int {
	n := 0
	for _, id := range hub.Connections {
		if g.Get(id).Kind == KindJumpStation {
			n++
		}
	}
	return n
}

func TestGenerate_PlacementExhaustion(t *testing.T) {
	cfg := DefaultGenConfig()
	// Minimum spacing above the link range: no candidate can ever qualify.
	cfg.MinHubSpacing = 0.5
	cfg.MaxHubSpacing = 0.4
	cfg.MaxPlacementAttempts = 50

	g, err := Generate(entropy.New(8), 5, testNames(), cfg)
	require.NoError(t, err)
	assert.Len(t, g.Hubs(), 1)
	assert.Greater(t, g.Len(), 1, "surviving hub still gets planets")
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(entropy.New(77), 14, testNames(), DefaultGenConfig())
	require.NoError(t, err)
	b, err := Generate(entropy.New(77), 14, testNames(), DefaultGenConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Locations, b.Locations)
}

func TestGenerate_MissingCategoriesFallBack(t *testing.T) {
	g, err := Generate(entropy.New(2), 3, catalog.NewNames(nil), DefaultGenConfig())
	require.NoError(t, err)

	for _, l := range g.Locations {
		switch l.Kind {
		case KindJumpStation:
			assert.Equal(t, unknownSystem, l.Name)
		case KindPlanetaryHub:
			assert.Equal(t, unknownPlanet, l.Name)
		}
	}
}

func TestGenerate_Sites(t *testing.T) {
	cfg := DefaultGenConfig()
	g, err := Generate(entropy.New(9), 6, testNames(), cfg)
	require.NoError(t, err)

	for _, l := range g.Locations {
		if l.Kind == KindJumpStation {
			assert.Empty(t, l.Sites)
			continue
		}
		require.NotEmpty(t, l.Sites)
		assert.LessOrEqual(t, len(l.Sites), cfg.MaxSitesPerPlanet)
		for _, s := range l.Sites {
			assert.GreaterOrEqual(t, s.Kind, KindCommercial)
			assert.True(t, strings.HasPrefix(s.Name, l.Body+" "), s.Name)
		}
	}
}

func TestDeriveSiteKind(t *testing.T) {
	cases := []struct {
		dev, hab float64
		want     LocationKind
	}{
		{0.7, 0.6, KindCommercial},
		{0.7, 0.3, KindIndustrial},
		{0.55, 0.6, KindResidential},
		{0.55, 0.4, KindGovernmental},
		{0.3, 0.6, KindWilderness},
		{0.3, 0.4, KindResourceExtraction},
		{0.45, 0.6, KindFarming},
		{0.45, 0.3, KindResourceExtraction},
		{0.45, 0.5, KindTourism},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveSiteKind(tc.dev, tc.hab), "dev=%v hab=%v", tc.dev, tc.hab)
	}
}

func TestApportionGaps(t *testing.T) {
	cases := []struct {
		widths []float64
		count  int
		want   []int
	}{
		{[]float64{1, 1, 1}, 2, []int{1, 1, 0}},
		{[]float64{3, 1}, 3, []int{3, 0}},
		{[]float64{1, 3}, 3, []int{0, 3}},
		{[]float64{2 * math.Pi}, 7, []int{7}},
		{[]float64{1, 2, 1}, 5, []int{1, 3, 1}},
		{[]float64{0, 0}, 3, []int{2, 1}},
		{[]float64{1, 1}, 0, []int{0, 0}},
		{nil, 4, []int{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ApportionGaps(tc.widths, tc.count), "widths=%v count=%d", tc.widths, tc.count)
	}
}

func TestApportionGaps_SumsExactly(t *testing.T) {
	rng := entropy.New(13)
	for i := 0; i < 2000; i++ {
		widths := make([]float64, 1+rng.Intn(8))
		for j := range widths {
			widths[j] = rng.Float64() * math.Pi
		}
		count := entropy.Roll(rng, 3, 3)

		sum := 0
		for _, c := range ApportionGaps(widths, count) {
			assert.GreaterOrEqual(t, c, 0)
			sum += c
		}
		assert.Equal(t, count, sum)
	}
}

func TestAngularGaps(t *testing.T) {
	even := angularGaps(nil, 3)
	require.Len(t, even, 3)
	for i, g := range even {
		assert.Equal(t, 1, g.count)
		assert.InDelta(t, 2*math.Pi/3, g.end-g.start, 1e-12, "gap %d", i)
	}

	single := angularGaps([]float64{0.5}, 4)
	require.Len(t, single, 1)
	assert.Equal(t, 4, single[0].count)
	assert.InDelta(t, 2*math.Pi, single[0].end-single[0].start, 1e-12)

	pair := angularGaps([]float64{math.Pi / 2, -math.Pi / 2}, 5)
	require.Len(t, pair, 2)
	assert.InDelta(t, -math.Pi/2, pair[0].start, 1e-12)
	assert.Equal(t, 5, pair[0].count+pair[1].count)
}
