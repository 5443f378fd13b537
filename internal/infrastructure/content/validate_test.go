package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeYAML(t *testing.T, body string) *Definitions {
	t.Helper()
	defs, err := YAMLDecoder{}.Decode(strings.NewReader(body))
	require.NoError(t, err)
	return defs
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid",
			body: `
traits: [{id: shy, name: Shy}]
facts: [{id: secret, name: Secret}]
dialogue_options:
  - name: greet
    label: Hi
    conditions:
      - actor_has_trait: shy
      - actor_hasnt_learned_fact: secret
      - actor_energy: {operator: ">", value: 10}
    results:
      - actor_learn_fact: secret
        next_dialogue_option_names: [greet]
`,
		},
		{
			name: "duplicate option",
			body: `
dialogue_options:
  - {name: greet, label: A}
  - {name: greet, label: B}
`,
			wantErr: `duplicate dialogue option "greet"`,
		},
		{
			name: "empty condition",
			body: `
dialogue_options:
  - name: greet
    label: A
    conditions: [{}]
`,
			wantErr: "dialogue_options[greet].conditions[0]: condition sets no variant",
		},
		{
			name: "ambiguous condition",
			body: `
traits: [{id: shy, name: Shy}]
dialogue_options:
  - name: greet
    label: A
    spoken_texts:
      - text: hi
        conditions:
          - actor_has_trait: shy
            actor_energy: {operator: ">", value: 1}
`,
			wantErr: "dialogue_options[greet].spoken_texts[0].conditions[0]: condition sets more than one variant",
		},
		{
			name: "unknown operator",
			body: `
dialogue_options:
  - name: greet
    label: A
    results:
      - conditions:
          - target_relationship_value: {operator: "=>", value: 1}
`,
			wantErr: `unknown operator "=>"`,
		},
		{
			name: "dangling next option",
			body: `
dialogue_options:
  - name: greet
    label: A
    results:
      - next_dialogue_option_names: [farewell]
`,
			wantErr: `next dialogue option "farewell" is not defined`,
		},
		{
			name: "undefined trait",
			body: `
exploration_actions:
  - label: jog
    results:
      - result_narrations:
          - text: ok
            conditions: [{actor_has_trait: athletic}]
`,
			wantErr: `exploration_actions[jog].results[0].result_narrations[0].conditions[0]: trait "athletic" is not defined`,
		},
		{
			name: "undefined learned fact",
			body: `
dialogue_options:
  - name: greet
    label: A
    results: [{actor_learn_fact: nope}]
`,
			wantErr: `learned fact "nope" is not defined`,
		},
		{
			name: "ends and continues",
			body: `
dialogue_options:
  - name: greet
    label: A
    results: [{ends_dialogue: true, next_dialogue_option_names: [greet]}]
`,
			wantErr: "ends_dialogue cannot be combined",
		},
		{
			name: "negative minutes",
			body: `
exploration_actions:
  - {label: nap, needed_minutes: -5}
`,
			wantErr: "needed_minutes must not be negative, got -5",
		},
		{
			name: "missing name",
			body: `
facts: [{name: Anonymous}]
`,
			wantErr: "facts[0]: missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeYAML(t, tt.body).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	defs := decodeYAML(t, `
dialogue_options:
  - name: greet
    label: A
    conditions: [{}]
    results: [{next_dialogue_option_names: [nope]}]
exploration_actions:
  - {label: nap, needed_minutes: -1}
`)
	err := defs.Validate()
	require.Error(t, err)
	assert.Len(t, strings.Split(err.Error(), "\n"), 3)
}

func TestCheckSpecials(t *testing.T) {
	defs := decodeYAML(t, `
dialogue_options:
  - name: flirt
    label: Flirt
    conditions:
      - actor_target_special_condition: {label: target_is_adult}
      - actor_target_special_condition: {label: target_is_wizard, negate: true}
    results:
      - actor_target_special_action: start_dating
      - actor_target_special_action: elope
`)

	err := defs.CheckSpecials([]string{"target_is_adult"}, []string{"start_dating"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dialogue_options[flirt].conditions[1]: unknown special condition "target_is_wizard"`)
	assert.Contains(t, err.Error(), `dialogue_options[flirt].results[1]: unknown special action "elope"`)

	assert.NoError(t, defs.CheckSpecials(
		[]string{"target_is_adult", "target_is_wizard"},
		[]string{"start_dating", "elope"},
	))
}
