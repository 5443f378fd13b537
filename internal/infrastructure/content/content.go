// Package content loads authored traits, facts, dialogue options and
// exploration actions from a directory of YAML, JSON and CSV files.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// Definitions is the merged content of one or more files.
type Definitions struct {
	Traits             []entities.Trait             `json:"traits,omitempty" yaml:"traits,omitempty"`
	Facts              []entities.Fact              `json:"facts,omitempty" yaml:"facts,omitempty"`
	DialogueOptions    []entities.DialogueOption    `json:"dialogue_options,omitempty" yaml:"dialogue_options,omitempty"`
	ExplorationActions []entities.ExplorationAction `json:"exploration_actions,omitempty" yaml:"exploration_actions,omitempty"`
}

// Load reads every supported file under dir, merges them in lexical path
// order and validates the result.
func Load(dir string) (*Definitions, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && ForFile(path) != nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content directory: %w", err)
	}
	slices.Sort(files)

	defs := &Definitions{}
	origins := newOrigins()
	var errs []error
	for _, path := range files {
		part, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rel, _ := filepath.Rel(dir, path)
		errs = append(errs, origins.merge(defs, part, rel)...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadFile decodes a single content file without cross-file validation.
func LoadFile(path string) (*Definitions, error) {
	dec := ForFile(path)
	if dec == nil {
		return nil, fmt.Errorf("%s: unsupported content format", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	defs, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Option returns the dialogue option with the given name.
func (d *Definitions) Option(name string) (*entities.DialogueOption, bool) {
	for i := range d.DialogueOptions {
		if d.DialogueOptions[i].Name == name {
			return &d.DialogueOptions[i], true
		}
	}
	return nil, false
}

// Options returns the named dialogue options in the order given.
// Unknown names are skipped.
func (d *Definitions) Options(names []string) []entities.DialogueOption {
	out := make([]entities.DialogueOption, 0, len(names))
	for _, name := range names {
		if opt, ok := d.Option(name); ok {
			out = append(out, *opt)
		}
	}
	return out
}

// EntryOptions returns the options that can open a conversation: those no
// result lists as a follow-up. When every option is a follow-up, all are returned.
func (d *Definitions) EntryOptions() []entities.DialogueOption {
	followUps := make(map[string]bool)
	for _, opt := range d.DialogueOptions {
		for _, r := range opt.Results {
			for _, next := range r.NextDialogueOptionNames {
				if next != opt.Name {
					followUps[next] = true
				}
			}
		}
	}

	var out []entities.DialogueOption
	for _, opt := range d.DialogueOptions {
		if !followUps[opt.Name] {
			out = append(out, opt)
		}
	}
	if len(out) == 0 {
		return d.DialogueOptions
	}
	return out
}

// Action returns the exploration action with the given label.
func (d *Definitions) Action(label string) (*entities.ExplorationAction, bool) {
	for i := range d.ExplorationActions {
		if d.ExplorationActions[i].Label == label {
			return &d.ExplorationActions[i], true
		}
	}
	return nil, false
}

// ActionsAt returns the exploration actions available in a room.
func (d *Definitions) ActionsAt(location, room string) []entities.ExplorationAction {
	var out []entities.ExplorationAction
	for _, a := range d.ExplorationActions {
		if a.LocationName == location && a.RoomName == room {
			out = append(out, a)
		}
	}
	return out
}

// Fact returns the fact with the given id.
func (d *Definitions) Fact(id string) (entities.Fact, bool) {
	for _, f := range d.Facts {
		if f.ID == id {
			return f, true
		}
	}
	return entities.Fact{}, false
}

// origins remembers which file first defined each named item.
type origins struct {
	traits  map[string]string
	facts   map[string]string
	options map[string]string
	actions map[string]string
}

func newOrigins() *origins {
	return &origins{
		traits:  make(map[string]string),
		facts:   make(map[string]string),
		options: make(map[string]string),
		actions: make(map[string]string),
	}
}

// merge appends part to defs, reporting names already defined elsewhere.
func (o *origins) merge(defs, part *Definitions, file string) []error {
	var errs []error
	claim := func(seen map[string]string, kind, name string) bool {
		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate %s %q (first defined in %s)", file, kind, name, prev))
			return false
		}
		seen[name] = file
		return true
	}

	for _, t := range part.Traits {
		if claim(o.traits, "trait", t.ID) {
			defs.Traits = append(defs.Traits, t)
		}
	}
	for _, f := range part.Facts {
		if claim(o.facts, "fact", f.ID) {
			defs.Facts = append(defs.Facts, f)
		}
	}
	for _, opt := range part.DialogueOptions {
		if claim(o.options, "dialogue option", opt.Name) {
			defs.DialogueOptions = append(defs.DialogueOptions, opt)
		}
	}
	for _, a := range part.ExplorationActions {
		if claim(o.actions, "exploration action", a.Label) {
			defs.ExplorationActions = append(defs.ExplorationActions, a)
		}
	}
	return errs
}
