package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const traitsYAML = `
- name: Brave
  description: Does not flinch.
  frequency: 2
  modifiers:
    - {attribute: Courage, delta: 1.5}
- name: Cursed
  description: Nobody knows why.
  frequency: -1
- name: Greedy
  description: Wants more.
  frequency: 0.5
  modifiers:
    - {attribute: Charisma, delta: -1}
    - {attribute: Cunning, delta: 2}
`

func TestParseTraits(t *testing.T) {
	traits, err := ParseTraits([]byte(traitsYAML))
	require.NoError(t, err)
	require.Len(t, traits, 2, "negative frequency is dropped")

	assert.Equal(t, "Brave", traits[0].Name)
	assert.Equal(t, 2.0, traits[0].Frequency)
	assert.Equal(t, []AttributeModifier{{Attribute: "Courage", Delta: 1.5}}, traits[0].Modifiers)

	assert.Equal(t, "Greedy", traits[1].Name)
	assert.Len(t, traits[1].Modifiers, 2)
}

func TestParseTraits_Empty(t *testing.T) {
	_, err := ParseTraits([]byte("[]"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestParseTraits_Unparseable(t *testing.T) {
	_, err := ParseTraits([]byte("name: [not a list"))
	assert.Error(t, err)
}

func TestLoadTraits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(traitsYAML), 0o644))

	traits, err := LoadTraits(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, traits, 2)
}
