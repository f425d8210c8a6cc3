// Package catalog holds the pre-loaded lookup tables the generator draws from:
// display names keyed by category, and the trait catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/ex-umbris/internal/entropy"
)

// ErrCategoryNotFound is returned when a name category has no candidates.
var ErrCategoryNotFound = errors.New("category not found")

// NameKind identifies a name category.
type NameKind uint8

const (
	NameSystem NameKind = iota
	NamePlanet
	NameActorMale
	NameActorFemale
	NameActorLastName
	NameLocationJumpStation
	NameLocationPlanetaryHub
	NameLocationCommercial
	NameLocationResourceExtraction
	NameLocationFarming
	NameLocationGovernmental
	NameLocationIndustrial
	NameLocationResidential
	NameLocationTourism
	NameLocationWilderness
)

// NumNameKinds is the number of name categories.
const NumNameKinds = 15

var nameKindKeys = [NumNameKinds]string{
	"System",
	"Planet",
	"ActorMale",
	"ActorFemale",
	"ActorLastName",
	"LocationJumpStation",
	"LocationPlanetaryHub",
	"LocationCommercial",
	"LocationResourceExtraction",
	"LocationFarming",
	"LocationGovernmental",
	"LocationIndustrial",
	"LocationResidential",
	"LocationTourism",
	"LocationWilderness",
}

// Template placeholders substituted with the owning system or planet name.
const (
	SystemPlaceholder = "{System}"
	PlanetPlaceholder = "{Planet}"
)

// String returns the catalog key for the category.
func (k NameKind) String() string {
	if int(k) < len(nameKindKeys) {
		return nameKindKeys[k]
	}
	return fmt.Sprintf("NameKind(%d)", uint8(k))
}

// ParseNameKind maps a catalog key back to its category.
func ParseNameKind(key string) (NameKind, bool) {
	for i, k := range nameKindKeys {
		if k == key {
			return NameKind(i), true
		}
	}
	return 0, false
}

// Names is a read-only name catalog.
type Names struct {
	byKind map[NameKind][]string
}

// NewNames builds a catalog from in-memory lists. Empty strings are dropped.
func NewNames(lists map[NameKind][]string) *Names {
	n := &Names{byKind: make(map[NameKind][]string, len(lists))}
	for kind, list := range lists {
		kept := make([]string, 0, len(list))
		for _, s := range list {
			if s != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			n.byKind[kind] = kept
		}
	}
	return n
}

// Has reports whether the category has at least one candidate.
func (n *Names) Has(kind NameKind) bool {
	return n != nil && len(n.byKind[kind]) > 0
}

// Len returns the number of candidates in a category.
func (n *Names) Len(kind NameKind) int {
	if n == nil {
		return 0
	}
	return len(n.byKind[kind])
}

// Pick draws one candidate uniformly. A missing category fails with
// ErrCategoryNotFound before any randomness is consumed.
func (n *Names) Pick(rng entropy.Source, kind NameKind) (string, error) {
	if !n.Has(kind) {
		return "", fmt.Errorf("name %s: %w", kind, ErrCategoryNotFound)
	}
	list := n.byKind[kind]
	return list[rng.Intn(len(list))], nil
}

// Fill picks a template from kind and substitutes placeholder with value.
func (n *Names) Fill(rng entropy.Source, kind NameKind, placeholder, value string) (string, error) {
	tmpl, err := n.Pick(rng, kind)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(tmpl, placeholder, value), nil
}

// Missing returns the categories with no candidates, in declaration order.
func (n *Names) Missing() []NameKind {
	var missing []NameKind
	for k := NameKind(0); k < NumNameKinds; k++ {
		if !n.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// ParseNames decodes a YAML mapping of category key to candidate list.
// Unknown keys are logged and skipped; missing categories are logged as
// warnings since lookups only fail if actually invoked.
func ParseNames(data []byte) (*Names, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse names: %w", err)
	}

	lists := make(map[NameKind][]string, len(raw))
	for key, list := range raw {
		kind, ok := ParseNameKind(key)
		if !ok {
			slog.Error("unknown name category", "category", key)
			continue
		}
		lists[kind] = list
	}

	names := NewNames(lists)
	for _, kind := range names.Missing() {
		slog.Warn("name category missing", "category", kind.String())
	}
	return names, nil
}

// LoadNames reads and parses a name catalog file.
func LoadNames(ctx context.Context, path string) (*Names, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseNames(data)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
