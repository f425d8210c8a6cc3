package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a trait catalog holds no usable traits.
var ErrEmptyCatalog = errors.New("empty trait catalog")

// AttributeKind tags the attribute a modifier applies to. The set of kinds is
// owned by the catalog data; the core only sums them.
type AttributeKind string

// AttributeModifier is a signed adjustment to one attribute.
type AttributeModifier struct {
	Attribute AttributeKind `yaml:"attribute" json:"attribute"`
	Delta     float64       `yaml:"delta" json:"delta"`
}

// Trait is a named modifier bundle assigned to agents by weighted draw.
type Trait struct {
	Name        string              `yaml:"name" json:"name"`
	Description string              `yaml:"description" json:"description"`
	Modifiers   []AttributeModifier `yaml:"modifiers" json:"modifiers"`
	Frequency   float64             `yaml:"frequency" json:"frequency"` // Selection weight, >= 0
}

// ParseTraits decodes a YAML list of traits. Traits with a negative frequency
// are dropped with a warning. An empty result is reported as ErrEmptyCatalog.
func ParseTraits(data []byte) ([]*Trait, error) {
	var raw []*Trait
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse traits: %w", err)
	}

	traits := make([]*Trait, 0, len(raw))
	for _, t := range raw {
		if t == nil {
			continue
		}
		if t.Frequency < 0 {
			slog.Warn("dropping trait with negative frequency", "trait", t.Name, "frequency", t.Frequency)
			continue
		}
		traits = append(traits, t)
	}
	if len(traits) == 0 {
		return nil, ErrEmptyCatalog
	}
	return traits, nil
}

// LoadTraits reads and parses a trait catalog file.
func LoadTraits(ctx context.Context, path string) ([]*Trait, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseTraits(data)
}
