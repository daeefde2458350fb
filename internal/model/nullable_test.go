package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStatus ExtractionStatus
		wantValue  *float64
		wantErr    bool
	}{
		{
			"present with value",
			`{"status": "present", "value": 75.5}`,
			StatusPresent, ptr(75.5), false,
		},
		{
			"explicit none drops stray value",
			`{"status": "explicit_none", "value": 10}`,
			StatusExplicitNone, nil, false,
		},
		{
			"not mentioned drops stray value",
			`{"status": "not_mentioned", "value": 3}`,
			StatusNotMentioned, nil, false,
		},
		{
			"present without value degrades",
			`{"status": "present"}`,
			StatusNotMentioned, nil, false,
		},
		{
			"unknown status rejected",
			`{"status": "maybe", "value": 1}`,
			"", nil, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Nullable[float64]
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, n.Status)
			if tt.wantValue == nil {
				assert.Nil(t, n.Value)
			} else {
				require.NotNil(t, n.Value)
				assert.InDelta(t, *tt.wantValue, *n.Value, 1e-9)
			}
		})
	}
}

func TestNullableGet(t *testing.T) {
	v, ok := Present(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = ExplicitNone[int]().Get()
	assert.False(t, ok)

	_, ok = NotMentioned[int]().Get()
	assert.False(t, ok)
}

func TestPetPolicyResultUnmarshal(t *testing.T) {
	payload := `{
		"pet_information": {
			"is_pet_friendly": {"status": "present", "value": true},
			"max_pets_allowed": {"status": "explicit_none"},
			"breed_restrictions": {"status": "present", "value": ["BREED_PIT_BULL"]},
			"pet_fee_amount": {"status": "not_mentioned"}
		},
		"confidence_scores": {"is_pet_friendly": 1.4, "pet_fee_amount": -0.2}
	}`

	var res PetPolicyResult
	require.NoError(t, json.Unmarshal([]byte(payload), &res))

	friendly, ok := res.PetInformation.IsPetFriendly.Get()
	assert.True(t, ok)
	assert.True(t, friendly)

	assert.Equal(t, StatusExplicitNone, res.PetInformation.MaxPetsAllowed.Status)

	breeds, ok := res.PetInformation.BreedRestrictions.Get()
	assert.True(t, ok)
	assert.Equal(t, []string{"BREED_PIT_BULL"}, breeds)

	// Fields absent from the payload default to the zero status and report
	// no value.
	_, ok = res.PetInformation.MinimumPetAge.Get()
	assert.False(t, ok)

	res.ConfidenceScores.Clamp()
	assert.Equal(t, 1.0, res.ConfidenceScores["is_pet_friendly"])
	assert.Equal(t, 0.0, res.ConfidenceScores["pet_fee_amount"])
}

func ptr[T any](v T) *T { return &v }
