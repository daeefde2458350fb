package model

import "github.com/pawstays/petpolicy-cli/internal/vocab"

// AttributeDef describes one pet-policy fact type: its value kind, the
// vocabulary that constrains it (if any), and whether a normalizer miss may
// escalate to the LLM fallback.
type AttributeDef struct {
	Name          string
	Kind          ValueKind
	AllowedValues []string // nil = unconstrained
	// OpenSet marks a constrained field where the LLM may still mint values
	// outside AllowedValues (currency codes). Closed vocabularies never grow.
	OpenSet bool
	// LLMFallback gates escalation. pet_amenities_list is sourced from a
	// column that mixes general hotel amenities with pet amenities, so a
	// normalizer miss there ends silently instead of asking the LLM.
	LLMFallback bool
}

// Attribute names persisted by the web-scraper pipeline.
const (
	AttrIsPetFriendly        = "is_pet_friendly"
	AttrHasPetDeposit        = "has_pet_deposit"
	AttrIsDepositRefundable  = "is_deposit_refundable"
	AttrHasPetAmenities      = "has_pet_amenities"
	AttrMaxPetsAllowed       = "max_pets_allowed"
	AttrMaxWeightLbs         = "max_weight_lbs"
	AttrPetFeeAmount         = "pet_fee_amount"
	AttrPetDepositAmount     = "pet_deposit_amount"
	AttrPetFeeCurrency       = "pet_fee_currency"
	AttrPetFeeInterval       = "pet_fee_interval"
	AttrAllowedSpecies       = "allowed_species"
	AttrBreedRestrictions    = "breed_restrictions"
	AttrPetAmenitiesList     = "pet_amenities_list"
	AttrPetFeeVariations     = "pet_fee_variations"
	AttrGeneralPetRules      = "general_pet_rules"
	AttrServiceAnimals       = "service_animals_allowed"
	AttrESAAllowed           = "emotional_support_animals_allowed"
	AttrMinimumPetAge        = "minimum_pet_age"
	AttrServiceAnimalPolicy  = "service_animal_policy"
)

// builtinAttributeIDs maps attribute names to their attribute_types identity.
// These rows predate the pipeline; the remaining names in RuntimeResolved are
// looked up from the store once per run.
var builtinAttributeIDs = map[string]string{
	AttrIsPetFriendly:       "09a1c66f-a780-4ba2-99e3-feaeea25d41d",
	AttrPetFeeAmount:        "c86a1fb4-455d-48b3-aeca-4a73cbe6438e",
	AttrPetFeeInterval:      "b7486a97-3eb6-4d58-af7f-6e881a9feb05",
	AttrMaxPetsAllowed:      "26f8aae7-1a20-4683-b8ea-d877db9f0cd9",
	AttrMaxWeightLbs:        "03a7571a-db77-4c99-9a24-87a8cba0f5a9",
	AttrAllowedSpecies:      "6030e1c8-75a7-490c-b64d-5b423fcf53cb",
	AttrBreedRestrictions:   "93539e95-dc41-405b-9664-e81017281fb8",
	AttrHasPetDeposit:       "f5c45b2d-3083-41bd-b596-b6797e02f3be",
	AttrIsDepositRefundable: "267ea64d-d433-4836-87f1-397dfaaec55c",
	AttrPetFeeCurrency:      "07d1da9d-d55c-4bf0-9570-3f24f9b8ad17",
	AttrPetFeeVariations:    "fc86ad4d-b96c-4998-96ca-236d99152c97",
	AttrPetAmenitiesList:    "5d3d2e74-feb2-4438-b50a-9a503289c236",
	AttrHasPetAmenities:     "1e8212be-6385-4b60-ba90-27f3c540ce9a",
	AttrGeneralPetRules:     "d7e360fb-350c-4508-aa7b-dfd015bbe089",
	AttrPetDepositAmount:    "a990d55c-0ae3-4ebd-a629-7ac1ee3aea7f",
}

// RuntimeResolved lists attribute names whose identity may not exist yet and
// is resolved from the store once per run. Unresolved names are skipped for
// the whole run.
var RuntimeResolved = []string{
	AttrServiceAnimals,
	AttrESAAllowed,
	AttrMinimumPetAge,
	AttrServiceAnimalPolicy,
}

// Definitions returns the full static attribute definition set.
func Definitions() []AttributeDef {
	return []AttributeDef{
		{Name: AttrIsPetFriendly, Kind: KindBool, LLMFallback: true},
		{Name: AttrHasPetDeposit, Kind: KindBool, LLMFallback: true},
		{Name: AttrIsDepositRefundable, Kind: KindBool, LLMFallback: true},
		{Name: AttrHasPetAmenities, Kind: KindBool, LLMFallback: true},
		{Name: AttrServiceAnimals, Kind: KindBool, LLMFallback: true},
		{Name: AttrESAAllowed, Kind: KindBool, LLMFallback: true},
		{Name: AttrMaxPetsAllowed, Kind: KindInt, LLMFallback: true},
		{Name: AttrMaxWeightLbs, Kind: KindInt, LLMFallback: true},
		{Name: AttrMinimumPetAge, Kind: KindInt, LLMFallback: true},
		{Name: AttrPetFeeAmount, Kind: KindFloat, LLMFallback: true},
		{Name: AttrPetDepositAmount, Kind: KindFloat, LLMFallback: true},
		{Name: AttrPetFeeCurrency, Kind: KindString, AllowedValues: vocab.Currencies, OpenSet: true, LLMFallback: true},
		{Name: AttrPetFeeInterval, Kind: KindString, AllowedValues: vocab.Intervals, LLMFallback: true},
		{Name: AttrServiceAnimalPolicy, Kind: KindString, LLMFallback: true},
		{Name: AttrAllowedSpecies, Kind: KindTagList, AllowedValues: vocab.SpeciesTags, LLMFallback: true},
		{Name: AttrBreedRestrictions, Kind: KindTagList, AllowedValues: vocab.BreedTags, LLMFallback: true},
		{Name: AttrPetAmenitiesList, Kind: KindTagList, AllowedValues: vocab.AmenityTags, LLMFallback: false},
		{Name: AttrPetFeeVariations, Kind: KindTagList, LLMFallback: true},
		{Name: AttrGeneralPetRules, Kind: KindTagList, LLMFallback: true},
	}
}

// Registry is the immutable attribute-name → definition + identity mapping
// handed to the orchestrator at construction. The runtime-resolved subset is
// merged in exactly once, before the batch starts.
type Registry struct {
	defs map[string]AttributeDef
	ids  map[string]string
}

// NewRegistry builds a Registry from the static definitions plus identities
// resolved at runtime. Names without an identity stay in the registry but
// Lookup reports them as unresolved.
func NewRegistry(defs []AttributeDef, runtimeIDs map[string]string) *Registry {
	r := &Registry{
		defs: make(map[string]AttributeDef, len(defs)),
		ids:  make(map[string]string, len(builtinAttributeIDs)+len(runtimeIDs)),
	}
	for _, d := range defs {
		r.defs[d.Name] = d
	}
	for name, id := range builtinAttributeIDs {
		r.ids[name] = id
	}
	for name, id := range runtimeIDs {
		if id != "" {
			r.ids[name] = id
		}
	}
	return r
}

// Lookup returns the definition and attribute type identity for a name.
// ok is false when either the definition or the identity is missing; such
// attributes are skipped for the run.
func (r *Registry) Lookup(name string) (AttributeDef, string, bool) {
	def, haveDef := r.defs[name]
	id, haveID := r.ids[name]
	if !haveDef || !haveID {
		return AttributeDef{}, "", false
	}
	return def, id, true
}

// Def returns just the definition, for callers that only need the kind and
// vocabulary (the LLM fallback adapter).
func (r *Registry) Def(name string) (AttributeDef, bool) {
	def, ok := r.defs[name]
	return def, ok
}
