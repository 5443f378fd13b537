package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// ValidationError describes one problem in a content tree.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Message
}

// Validate checks the merged definitions for authoring mistakes. All
// problems are reported together via errors.Join.
func (d *Definitions) Validate() error {
	v := &validator{
		traits:  make(map[string]bool, len(d.Traits)),
		facts:   make(map[string]bool, len(d.Facts)),
		options: make(map[string]bool, len(d.DialogueOptions)),
	}

	for i, t := range d.Traits {
		p := fmt.Sprintf("traits[%d]", i)
		v.requireID(p, t.ID)
		v.unique(p, "trait", t.ID, v.traits)
	}
	for i, f := range d.Facts {
		p := fmt.Sprintf("facts[%d]", i)
		v.requireID(p, f.ID)
		v.unique(p, "fact", f.ID, v.facts)
	}
	for i, opt := range d.DialogueOptions {
		p := fmt.Sprintf("dialogue_options[%d]", i)
		v.requireID(p, opt.Name)
		v.unique(p, "dialogue option", opt.Name, v.options)
	}

	for _, opt := range d.DialogueOptions {
		v.option(&opt)
	}

	labels := make(map[string]bool, len(d.ExplorationActions))
	for i, a := range d.ExplorationActions {
		p := fmt.Sprintf("exploration_actions[%d]", i)
		v.requireID(p, a.Label)
		v.unique(p, "exploration action", a.Label, labels)
		v.action(&a)
	}

	return v.err()
}

// CheckSpecials reports special conditions and actions referenced by the
// content that are not in the given label sets.
func (d *Definitions) CheckSpecials(conditionLabels, actionLabels []string) error {
	knownCond := toSet(conditionLabels)
	knownAction := toSet(actionLabels)
	var errs []error

	visit := func(path string, conds []entities.Condition) {
		for i, c := range conds {
			if s := c.ActorTargetSpecialCondition; s != nil && !knownCond[s.Label] {
				errs = append(errs, &ValidationError{
					Path:    fmt.Sprintf("%s.conditions[%d]", path, i),
					Message: fmt.Sprintf("unknown special condition %q", s.Label),
				})
			}
		}
	}

	for _, opt := range d.DialogueOptions {
		walkOption(&opt, visit)
		for i, r := range opt.Results {
			if r.ActorTargetSpecialAction != "" && !knownAction[r.ActorTargetSpecialAction] {
				errs = append(errs, &ValidationError{
					Path:    fmt.Sprintf("dialogue_options[%s].results[%d]", opt.Name, i),
					Message: fmt.Sprintf("unknown special action %q", r.ActorTargetSpecialAction),
				})
			}
		}
	}
	for _, a := range d.ExplorationActions {
		walkAction(&a, visit)
	}

	return errors.Join(errs...)
}

type validator struct {
	traits  map[string]bool
	facts   map[string]bool
	options map[string]bool
	errs    []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func (v *validator) requireID(path, id string) {
	if strings.TrimSpace(id) == "" {
		v.fail(path, "missing name")
	}
}

func (v *validator) unique(path, kind, id string, seen map[string]bool) {
	if id == "" {
		return
	}
	if seen[id] {
		v.fail(path, "duplicate %s %q", kind, id)
		return
	}
	seen[id] = true
}

func (v *validator) option(opt *entities.DialogueOption) {
	base := fmt.Sprintf("dialogue_options[%s]", opt.Name)
	walkOption(opt, v.conditions)

	for i, r := range opt.Results {
		p := fmt.Sprintf("%s.results[%d]", base, i)
		for _, next := range r.NextDialogueOptionNames {
			if !v.options[next] {
				v.fail(p, "next dialogue option %q is not defined", next)
			}
		}
		if r.ActorLearnFact != "" && !v.facts[r.ActorLearnFact] {
			v.fail(p, "learned fact %q is not defined", r.ActorLearnFact)
		}
		if r.EndsDialogue && len(r.NextDialogueOptionNames) > 0 {
			v.fail(p, "ends_dialogue cannot be combined with next dialogue options")
		}
	}
}

func (v *validator) action(a *entities.ExplorationAction) {
	base := fmt.Sprintf("exploration_actions[%s]", a.Label)
	if a.NeededMinutes < 0 {
		v.fail(base, "needed_minutes must not be negative, got %d", a.NeededMinutes)
	}
	walkAction(a, v.conditions)
}

// conditions checks that each condition sets exactly one valid variant and
// that trait and fact references resolve.
func (v *validator) conditions(path string, conds []entities.Condition) {
	for i, c := range conds {
		p := fmt.Sprintf("%s.conditions[%d]", path, i)
		switch c.Kind() {
		case entities.ConditionNone:
			v.fail(p, "condition sets no variant")
		case entities.ConditionAmbiguous:
			v.fail(p, "condition sets more than one variant")
		case entities.ConditionActorHasTrait:
			if !v.traits[c.ActorHasTrait] {
				v.fail(p, "trait %q is not defined", c.ActorHasTrait)
			}
		case entities.ConditionActorHasntLearnedFact:
			if !v.facts[c.ActorHasntLearnedFact] {
				v.fail(p, "fact %q is not defined", c.ActorHasntLearnedFact)
			}
		case entities.ConditionActorTargetSpecial:
			if c.ActorTargetSpecialCondition.Label == "" {
				v.fail(p, "special condition has no label")
			}
		case entities.ConditionActorRelationshipValue:
			v.operator(p, c.ActorRelationshipValue.Operator)
		case entities.ConditionTargetRelationshipValue:
			v.operator(p, c.TargetRelationshipValue.Operator)
		case entities.ConditionActorEnergy:
			v.operator(p, c.ActorEnergy.Operator)
		}
	}
}

func (v *validator) operator(path string, op entities.ComparisonOperator) {
	if !op.IsValid() {
		v.fail(path, "unknown operator %q", op)
	}
}

// walkOption calls visit for every condition list inside a dialogue option.
func walkOption(opt *entities.DialogueOption, visit func(path string, conds []entities.Condition)) {
	base := fmt.Sprintf("dialogue_options[%s]", opt.Name)
	visit(base, opt.Conditions)
	walkTexts(base+".spoken_texts", opt.SpokenTexts, visit)
	for i, r := range opt.Results {
		p := fmt.Sprintf("%s.results[%d]", base, i)
		visit(p, r.Conditions)
		walkTexts(p+".result_spoken_texts", r.ResultSpokenTexts, visit)
		walkTexts(p+".result_narrations", r.ResultNarrations, visit)
	}
}

// walkAction calls visit for every condition list inside an exploration action.
func walkAction(a *entities.ExplorationAction, visit func(path string, conds []entities.Condition)) {
	base := fmt.Sprintf("exploration_actions[%s]", a.Label)
	for i, r := range a.Results {
		p := fmt.Sprintf("%s.results[%d]", base, i)
		visit(p, r.Conditions)
		walkTexts(p+".result_narrations", r.ResultNarrations, visit)
	}
}

func walkTexts(path string, texts []entities.GatedText, visit func(path string, conds []entities.Condition)) {
	for i, t := range texts {
		visit(fmt.Sprintf("%s[%d]", path, i), t.Conditions)
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
