package configloader

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty document", content: ""},
		{name: "comments only", content: "# nothing here\n"},
		{
			name: "full config",
			content: "extensions: [.expr, .calc]\n" +
				"ignore:\n  - \"**/vendor/**\"\n" +
				"severity: warning\n" +
				"markdown:\n  enabled: true\n  languages: [expr]\n" +
				"golden:\n  enabled: false\n  suffix: .tree\n",
		},
		{name: "unknown key", content: "colour: red\n", wantErr: "schema violation"},
		{name: "bad severity", content: "severity: loud\n", wantErr: "schema violation"},
		{name: "number where boolean expected", content: "golden:\n  enabled: 1\n", wantErr: "/golden/enabled"},
		{name: "extension without dot", content: "extensions: [expr]\n", wantErr: "/extensions/0"},
		{name: "not a mapping", content: "- a\n- b\n", wantErr: "schema violation"},
		{name: "invalid YAML", content: "severity: [\n", wantErr: "parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateDocument([]byte(tt.content))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaIsValidJSON(t *testing.T) {
	t.Parallel()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(Schema()), &doc))
	assert.Equal(t, "exprcst configuration", doc["title"])

	_, err := compiledSchema()
	require.NoError(t, err)
}
