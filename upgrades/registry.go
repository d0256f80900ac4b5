package upgrades

import (
	"fmt"
	"strings"
)

// Category groups upgrades for display and policy decisions.
type Category uint8

const (
	Basic Category = iota
	Survival
	Auxiliary
	Combat
	Energy
)

func (c Category) String() string {
	switch c {
	case Basic:
		return "basic"
	case Survival:
		return "survival"
	case Auxiliary:
		return "auxiliary"
	case Combat:
		return "combat"
	case Energy:
		return "energy"
	}
	return "unknown"
}

// DefaultMaxLevel is reported for ids without a definition.
const DefaultMaxLevel = 5

// generatorMarkers classify ids as energy producers by name.
var generatorMarkers = []string{"GENERATOR", "CHARGER", "VOID_ENERGY", "ENERGY_GEN"}

// Definition describes one upgrade module.
type Definition struct {
	ID          ID
	DisplayName string
	Category    Category
	MaxLevel    uint32
	Aliases     []string // Legacy spellings accepted on read
}

// Registry holds upgrade definitions and the alias table.
// It is built at startup and read-only afterwards.
type Registry struct {
	defs    []Definition
	byID    map[ID]int
	aliases map[string]ID   // normalized alias -> canonical
	legacy  map[ID][]string // canonical -> raw alias spellings
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[ID]int),
		aliases: make(map[string]ID),
		legacy:  make(map[ID][]string),
	}
}

// NewDefaultRegistry returns a registry holding the full upgrade catalog.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.registerDefaults()
	return r
}

// Register adds a definition and its aliases.
// Duplicate ids, or an id already used as an alias, panic.
func (r *Registry) Register(def Definition) {
	if def.ID.IsZero() {
		panic("upgrades: Register with empty id")
	}
	if _, dup := r.byID[def.ID]; dup {
		panic(fmt.Sprintf("upgrades: duplicate registration of %s", def.ID))
	}
	if target, ok := r.aliases[def.ID.String()]; ok {
		panic(fmt.Sprintf("upgrades: %s is already an alias of %s", def.ID, target))
	}
	if def.MaxLevel == 0 {
		def.MaxLevel = DefaultMaxLevel
	}
	aliases := def.Aliases
	def.Aliases = nil

	r.byID[def.ID] = len(r.defs)
	r.defs = append(r.defs, def)

	for _, a := range aliases {
		r.Alias(a, def.ID)
	}
}

// Alias maps an alternate spelling onto a registered canonical id.
// A spelling that normalizes to the canonical id itself is recorded for
// write-through only. Aliases never point at other aliases.
func (r *Registry) Alias(alias string, canonical ID) {
	idx, ok := r.byID[canonical]
	if !ok {
		panic(fmt.Sprintf("upgrades: alias %q targets unregistered %s", alias, canonical))
	}
	n := Normalize(alias)
	if n == "" {
		panic("upgrades: empty alias")
	}

	if n != canonical.String() {
		if _, isCanon := r.byID[Parse(n)]; isCanon {
			panic(fmt.Sprintf("upgrades: alias %q shadows a registered id", alias))
		}
		if prev, exists := r.aliases[n]; exists && prev != canonical {
			panic(fmt.Sprintf("upgrades: alias %q already maps to %s", alias, prev))
		}
		r.aliases[n] = canonical
	}

	raw := strings.TrimSpace(alias)
	for _, s := range r.legacy[canonical] {
		if s == raw {
			return
		}
	}
	r.legacy[canonical] = append(r.legacy[canonical], raw)
	r.defs[idx].Aliases = append(r.defs[idx].Aliases, raw)
}

// Canonicalize resolves any accepted spelling to its canonical id.
// Unregistered spellings come back as unknown ids carrying the normalized text.
func (r *Registry) Canonicalize(s string) ID {
	n := Normalize(s)
	if id, ok := r.aliases[n]; ok {
		return id
	}
	return Parse(n)
}

// Known reports whether id has a definition.
func (r *Registry) Known(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Info returns the definition for id.
func (r *Registry) Info(id ID) (Definition, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[idx], true
}

// MaxLevel returns the definition's max level, or DefaultMaxLevel.
func (r *Registry) MaxLevel(id ID) uint32 {
	if def, ok := r.Info(id); ok {
		return def.MaxLevel
	}
	return DefaultMaxLevel
}

// DisplayName returns the display name for id.
// Falls back to the id itself if not found.
func (r *Registry) DisplayName(id ID) string {
	if def, ok := r.Info(id); ok && def.DisplayName != "" {
		return def.DisplayName
	}
	return id.String()
}

// Spellings returns every spelling a level should be written under:
// the canonical id, its lowercase form, and each alias as registered plus lowercase.
func (r *Registry) Spellings(id ID) []string {
	canon := id.String()
	out := []string{canon}
	seen := map[string]bool{canon: true}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(strings.ToLower(canon))
	for _, a := range r.legacy[id] {
		add(a)
		add(strings.ToUpper(a))
		add(strings.ToLower(a))
	}
	return out
}

// IsGenerator reports whether id produces energy: any Energy category
// definition, or an id whose name marks it as a generator.
func (r *Registry) IsGenerator(id ID) bool {
	if def, ok := r.Info(id); ok && def.Category == Energy {
		return true
	}
	name := id.String()
	for _, m := range generatorMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// All returns all definitions in registration order.
func (r *Registry) All() []Definition {
	return r.defs
}

// IDs returns all canonical ids in registration order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.defs))
	for i, d := range r.defs {
		ids[i] = d.ID
	}
	return ids
}

// ByCategory returns definitions filtered by category.
func (r *Registry) ByCategory(c Category) []Definition {
	var result []Definition
	for _, d := range r.defs {
		if d.Category == c {
			result = append(result, d)
		}
	}
	return result
}
