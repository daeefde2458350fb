package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONField(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		field string
		want  string
	}{
		{"wrapped raw", `{"raw": "fee varies | weekends higher"}`, "raw", "fee varies | weekends higher"},
		{"wrapped policy", `{"policy": "Dogs only. Max 2."}`, "policy", "Dogs only. Max 2."},
		{"plain text passthrough", "just text", "raw", "just text"},
		{"malformed json falls back", `{"raw": broken`, "raw", `{"raw": broken`},
		{"missing field falls back", `{"other": "x"}`, "raw", `{"other": "x"}`},
		{"non-string value falls back", `{"raw": 42}`, "raw", `{"raw": 42}`},
		{"empty", "", "raw", ""},
		{"nil", nil, "raw", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONField(tt.raw, tt.field))
		})
	}
}

func TestSplitFreeText(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"pipes", "a | b | c", []string{"a", "b", "c"}},
		{"semicolons and newlines", "one;two\nthree", []string{"one", "two", "three"}},
		{"wrapped", `{"raw": "x | y"}`, []string{"x", "y"}},
		{"blank items dropped", " | | a", []string{"a"}},
		{"empty", "", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitFreeText(tt.raw))
		})
	}
}

func TestSplitPolicy(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{
			"period space splits, price survives",
			"Fee is $75.00 per stay. Dogs must be leashed",
			[]string{"Fee is $75.00 per stay", "Dogs must be leashed"},
		},
		{
			"bullets and semicolons",
			"Max two pets;• No puppies under 6 months",
			[]string{"Max two pets", "No puppies under 6 months"},
		},
		{"short fragments dropped", "Yes. ok. Dogs allowed on leash", []string{"Dogs allowed on leash"}},
		{"wrapped", `{"policy": "Dogs welcome everywhere. Cats too please"}`, []string{"Dogs welcome everywhere", "Cats too please"}},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPolicy(tt.raw))
		})
	}
}
