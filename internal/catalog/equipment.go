package catalog

import (
	_ "embed"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Equipment tags every user owns implicitly.
const (
	EquipmentBodyweight = "bodyweight"
	EquipmentNone       = "none"
)

//go:embed equipment_aliases.yaml
var equipmentAliasesYAML []byte

var defaultEquipmentAliases = mustParseEquipmentAliases(equipmentAliasesYAML) //nolint:gochecknoglobals // embedded table

// EquipmentNormalizer maps the spellings found in catalogs and user input to canonical equipment tags.
type EquipmentNormalizer struct {
	aliases map[string]string
}

// NewEquipmentNormalizer returns a normalizer with the built-in alias table extended by extra, which maps an
// alias to its canonical tag. Entries in extra win over built-in ones.
func NewEquipmentNormalizer(extra map[string]string) *EquipmentNormalizer {
	aliases := maps.Clone(defaultEquipmentAliases)
	for alias, canonical := range extra {
		aliases[clean(alias)] = clean(canonical)
	}
	return &EquipmentNormalizer{aliases: aliases}
}

// ParseEquipmentAliases decodes a YAML document mapping canonical tags to lists of aliases into an alias to
// canonical tag map.
func ParseEquipmentAliases(data []byte) (map[string]string, error) {
	var byCanonical map[string][]string
	if err := yaml.Unmarshal(data, &byCanonical); err != nil {
		return nil, fmt.Errorf("decode equipment aliases: %w", err)
	}
	aliases := make(map[string]string)
	for canonical, names := range byCanonical {
		canonical = clean(canonical)
		if canonical == "" {
			return nil, fmt.Errorf("decode equipment aliases: empty canonical tag for %v", names)
		}
		for _, name := range names {
			aliases[clean(name)] = canonical
		}
	}
	return aliases, nil
}

func mustParseEquipmentAliases(data []byte) map[string]string {
	aliases, err := ParseEquipmentAliases(data)
	if err != nil {
		panic(err)
	}
	return aliases
}

// Normalize returns the canonical tag for name. Unknown names are returned lowercased and trimmed.
func (n *EquipmentNormalizer) Normalize(name string) string {
	name = clean(name)
	aliases := defaultEquipmentAliases
	if n != nil {
		aliases = n.aliases
	}
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Set normalizes every name and returns them as a set. Empty names are dropped.
func (n *EquipmentNormalizer) Set(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if v := n.Normalize(name); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
