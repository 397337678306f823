package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry holds all known ability and archetype definitions keyed by ID.
type Registry struct {
	abilities  map[string]*AbilityDef
	archetypes map[string]*ArchetypeDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		abilities:  make(map[string]*AbilityDef),
		archetypes: make(map[string]*ArchetypeDef),
	}
}

// RegisterAbility validates def and adds it.
//
// Precondition: def must not be nil.
// Postcondition: Returns an error on validation failure or duplicate ID; the registry is unchanged then.
func (r *Registry) RegisterAbility(def *AbilityDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, ok := r.abilities[def.ID]; ok {
		return fmt.Errorf("ability %q registered twice", def.ID)
	}
	r.abilities[def.ID] = def
	return nil
}

// RegisterArchetype validates def and adds it.
//
// Precondition: def must not be nil.
// Postcondition: Returns an error on validation failure or duplicate ID; the registry is unchanged then.
func (r *Registry) RegisterArchetype(def *ArchetypeDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, ok := r.archetypes[def.ID]; ok {
		return fmt.Errorf("archetype %q registered twice", def.ID)
	}
	r.archetypes[def.ID] = def
	return nil
}

// Ability returns the AbilityDef for id.
func (r *Registry) Ability(id string) (*AbilityDef, bool) {
	d, ok := r.abilities[id]
	return d, ok
}

// Archetype returns the ArchetypeDef for id.
func (r *Registry) Archetype(id string) (*ArchetypeDef, bool) {
	d, ok := r.archetypes[id]
	return d, ok
}

// Abilities returns all ability definitions ordered by ID.
func (r *Registry) Abilities() []*AbilityDef {
	out := make([]*AbilityDef, 0, len(r.abilities))
	for _, d := range r.abilities {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Archetypes returns all archetype definitions ordered by ID.
func (r *Registry) Archetypes() []*ArchetypeDef {
	out := make([]*ArchetypeDef, 0, len(r.archetypes))
	for _, d := range r.archetypes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Check verifies every archetype's ability references and that no archetype owns two
// abilities with the same display name.
//
// Postcondition: Returns nil iff every archetype can be built.
func (r *Registry) Check() error {
	var errs []error
	for _, a := range r.Archetypes() {
		names := make(map[string]string, len(a.Abilities))
		for _, id := range a.Abilities {
			def, ok := r.abilities[id]
			if !ok {
				errs = append(errs, fmt.Errorf("archetype %q: %w %q", a.ID, ErrUnknownAbility, id))
				continue
			}
			if other, dup := names[def.Name]; dup {
				errs = append(errs, fmt.Errorf("archetype %q: abilities %q and %q share the name %q", a.ID, other, id, def.Name))
				continue
			}
			names[def.Name] = id
		}
	}
	return errors.Join(errs...)
}

// LoadDirectory reads every *.yaml file in abilitiesDir and archetypesDir, registers
// each document, and checks cross references. A file may hold several documents
// separated by "---".
//
// Precondition: both directories must be readable.
// Postcondition: Returns a fully checked Registry, or an error naming the first bad file.
func LoadDirectory(abilitiesDir, archetypesDir string) (*Registry, error) {
	reg := NewRegistry()
	if err := loadEach(abilitiesDir, func(dec *yaml.Decoder) error {
		var def AbilityDef
		if err := dec.Decode(&def); err != nil {
			return err
		}
		return reg.RegisterAbility(&def)
	}); err != nil {
		return nil, err
	}
	if err := loadEach(archetypesDir, func(dec *yaml.Decoder) error {
		var def ArchetypeDef
		if err := dec.Decode(&def); err != nil {
			return err
		}
		return reg.RegisterArchetype(&def)
	}); err != nil {
		return nil, err
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	return reg, nil
}

// loadEach calls decode once per YAML document in each *.yaml file of dir, in name order.
// decode must return io.EOF unchanged when the stream is exhausted.
func loadEach(dir string, decode func(*yaml.Decoder) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading content dir %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !(strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		for {
			err := decode(dec)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("loading %q: %w", path, err)
			}
		}
	}
	return nil
}
