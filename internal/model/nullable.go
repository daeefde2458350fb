package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ExtractionStatus classifies what the source text said about a field.
// explicit_none ("no restrictions", "not applicable") and not_mentioned
// (silence) are distinct and must never be conflated.
type ExtractionStatus string

const (
	StatusPresent      ExtractionStatus = "present"
	StatusExplicitNone ExtractionStatus = "explicit_none"
	StatusNotMentioned ExtractionStatus = "not_mentioned"
)

// Valid reports whether s is one of the three known statuses.
func (s ExtractionStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusExplicitNone, StatusNotMentioned:
		return true
	}
	return false
}

// Nullable is the tri-state extraction result for one field. Value is
// populated only when Status is present; the unmarshal boundary drops any
// value carried by the other two statuses rather than trusting the model.
type Nullable[T any] struct {
	Status ExtractionStatus `json:"status"`
	Value  *T               `json:"value,omitempty"`
}

// Present builds a Nullable carrying a value.
func Present[T any](v T) Nullable[T] {
	return Nullable[T]{Status: StatusPresent, Value: &v}
}

// ExplicitNone builds a Nullable for "explicitly stated as none".
func ExplicitNone[T any]() Nullable[T] {
	return Nullable[T]{Status: StatusExplicitNone}
}

// NotMentioned builds a Nullable for a field the source is silent about.
func NotMentioned[T any]() Nullable[T] {
	return Nullable[T]{Status: StatusNotMentioned}
}

// Get returns the value and whether the field was present.
func (n Nullable[T]) Get() (T, bool) {
	if n.Status == StatusPresent && n.Value != nil {
		return *n.Value, true
	}
	var zero T
	return zero, false
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	var a struct {
		Status ExtractionStatus `json:"status"`
		Value  *T               `json:"value"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return eris.Wrap(err, "model: unmarshal nullable")
	}
	if !a.Status.Valid() {
		return eris.Errorf("model: unknown extraction status %q", a.Status)
	}
	// A value accompanying explicit_none or not_mentioned is dropped at the
	// boundary. Present with no value degrades to not_mentioned.
	if a.Status != StatusPresent {
		a.Value = nil
	} else if a.Value == nil {
		a.Status = StatusNotMentioned
	}
	n.Status = a.Status
	n.Value = a.Value
	return nil
}

// PetPolicyExtraction is the LLM-facing schema for full-context extraction:
// every field is tri-state so silence and explicit absence stay distinct.
type PetPolicyExtraction struct {
	IsPetFriendly          Nullable[bool]     `json:"is_pet_friendly"`
	AllowedSpecies         Nullable[[]string] `json:"allowed_species"`
	HasPetDeposit          Nullable[bool]     `json:"has_pet_deposit"`
	PetDepositAmount       Nullable[float64]  `json:"pet_deposit_amount"`
	IsDepositRefundable    Nullable[bool]     `json:"is_deposit_refundable"`
	PetFeeAmount           Nullable[float64]  `json:"pet_fee_amount"`
	PetFeeVariations       Nullable[[]string] `json:"pet_fee_variations"`
	PetFeeCurrency         Nullable[string]   `json:"pet_fee_currency"`
	PetFeeInterval         Nullable[string]   `json:"pet_fee_interval"`
	MaxWeightLbs           Nullable[int]      `json:"max_weight_lbs"`
	MaxPetsAllowed         Nullable[int]      `json:"max_pets_allowed"`
	BreedRestrictions      Nullable[[]string] `json:"breed_restrictions"`
	GeneralPetRules        Nullable[[]string] `json:"general_pet_rules"`
	HasPetAmenities        Nullable[bool]     `json:"has_pet_amenities"`
	PetAmenitiesList       Nullable[[]string] `json:"pet_amenities_list"`
	ServiceAnimalsAllowed  Nullable[bool]     `json:"service_animals_allowed"`
	ESAAllowed             Nullable[bool]     `json:"emotional_support_animals_allowed"`
	ServiceAnimalPolicy    Nullable[string]   `json:"service_animal_policy"`
	MinimumPetAge          Nullable[int]      `json:"minimum_pet_age"`
}

// ConfidenceScores carries the per-field confidence reported alongside a
// PetPolicyExtraction. Values are clamped to [0,1] at the parse boundary.
type ConfidenceScores map[string]float64

// Clamp forces every score into [0,1].
func (c ConfidenceScores) Clamp() {
	for k, v := range c {
		if v < 0 {
			c[k] = 0
		} else if v > 1 {
			c[k] = 1
		}
	}
}

// PetPolicyResult pairs an extraction with its confidence scores.
type PetPolicyResult struct {
	PetInformation   PetPolicyExtraction `json:"pet_information"`
	ConfidenceScores ConfidenceScores    `json:"confidence_scores"`
}
