package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawstays/petpolicy-cli/internal/model"
)

func TestAttributeUpsertTextValue(t *testing.T) {
	b := true
	n := int64(2)
	f := 75.5
	w := 50.0
	s := "per-night"

	tests := []struct {
		name string
		up   AttributeUpsert
		want *string
	}{
		{"bool true", AttributeUpsert{Kind: model.KindBool, ValueBool: &b}, strPtr("True")},
		{"int", AttributeUpsert{Kind: model.KindInt, ValueInt: &n}, strPtr("2")},
		{"float", AttributeUpsert{Kind: model.KindFloat, ValueNum: &f}, strPtr("75.5")},
		{"float whole keeps decimal", AttributeUpsert{Kind: model.KindFloat, ValueNum: &w}, strPtr("50.0")},
		{"string mirrors primary", AttributeUpsert{Kind: model.KindString, ValueStr: &s}, strPtr("per-night")},
		{"tag list has no mirror", AttributeUpsert{Kind: model.KindTagList, ValueArr: []string{"PET_TYPE_DOG"}}, nil},
		{"invalid row has no mirror", AttributeUpsert{Kind: model.KindBool, IsInvalid: true}, nil},
		{"null row has no mirror", AttributeUpsert{Kind: model.KindInt, IsNull: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.up.TextValue()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestAttributeUpsertDerived(t *testing.T) {
	valid := AttributeUpsert{Kind: model.KindBool}
	assert.Equal(t, ExtractorConfidence, valid.Confidence())
	assert.True(t, valid.Enabled())

	invalid := AttributeUpsert{Kind: model.KindBool, IsInvalid: true}
	assert.Equal(t, 0.0, invalid.Confidence())
	assert.False(t, invalid.Enabled())

	// A null-sentinel row is still a trusted extraction.
	null := AttributeUpsert{Kind: model.KindInt, IsNull: true}
	assert.Equal(t, ExtractorConfidence, null.Confidence())
	assert.True(t, null.Enabled())
}

func strPtr(s string) *string { return &s }
