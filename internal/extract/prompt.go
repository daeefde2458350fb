package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pawstays/petpolicy-cli/internal/vocab"
)

// tagMapping renders a display-name map as "TAG: Name | TAG: Name" in
// deterministic order for prompt composition.
func tagMapping(names map[string]string) string {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, names[k]))
	}
	return strings.Join(parts, " | ")
}

func petInfoSystemPrompt(context string) string {
	return fmt.Sprintf(`You are an expert travel data extraction specialist.

You MUST return a JSON object with TWO top-level keys:
1. "pet_information" - containing all extracted pet policy fields
2. "confidence_scores" - containing confidence values (0.0 to 1.0) for each field

For EACH optional field in pet_information, classify it as ONE of:
- present
- explicit_none (explicitly stated as none / no restriction / not offered)
- not_mentioned

CRITICAL:
- Silence means not_mentioned
- "No restrictions", "None", "Not applicable" mean explicit_none
- Do NOT infer missing information
- Each field MUST include a status
- "value" may only appear when status is "present"

PREDEFINED VALUE MAPPINGS:

allowed_species:
%s

pet_amenities_list:
%s

breed_restrictions:
%s

NUMERIC RULES:
- Convert kg to lbs (1 kg = 2.20462 lbs)
- Extract numeric values only

SERVICE ANIMAL LOGIC (CRITICAL):
- Service animals are NOT considered pets.
- A property that allows ONLY service animals is NOT pet-friendly.

If the context says "Service animals only", "Only service animals allowed",
or "No pets except service animals":
- is_pet_friendly = {"status": "present", "value": false}
- service_animals_allowed = {"status": "present", "value": true}
- allowed_species = {"status": "not_mentioned"}
- pet_fee_amount = {"status": "not_mentioned"}
- pet_fee_variations = {"status": "not_mentioned"}
- pet_amenities_list = {"status": "not_mentioned"}

If the context says "Pets allowed" AND mentions service animals:
- is_pet_friendly = {"status": "present", "value": true}
- service_animals_allowed = {"status": "present", "value": true}

If the context explicitly states "No pets allowed" BUT allows service animals:
- is_pet_friendly = {"status": "present", "value": false}
- service_animals_allowed = {"status": "present", "value": true}

If service animals are not mentioned at all:
- service_animals_allowed = {"status": "not_mentioned"}

IMPORTANT:
- Do NOT infer pet-friendliness from service animal allowances.
- Do NOT treat service animals as pets for any pet fee, deposit, or amenity fields.

HOTEL INFORMATION:
%s

Return structured JSON strictly matching the schema with pet_information and confidence_scores as top-level keys.`,
		tagMapping(vocab.SpeciesNames),
		tagMapping(vocab.AmenityNames),
		tagMapping(vocab.BreedNames),
		context,
	)
}
