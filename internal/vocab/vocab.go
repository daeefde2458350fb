// Package vocab holds the fixed tag vocabularies that constrain normalized
// attribute values. These are versioned constants: changing them is a
// deployment decision, and removals must not invalidate persisted tags.
package vocab

// SpeciesTags is the closed vocabulary for allowed_species.
var SpeciesTags = []string{
	"PET_TYPE_DOG", "PET_TYPE_CAT", "PET_TYPE_BIRD", "PET_TYPE_FISH",
	"PET_TYPE_SMALL", "PET_TYPE_ALL", "PET_TYPE_SERVICE", "PET_TYPE_DOMESTIC",
}

// BreedTags is the closed vocabulary for breed_restrictions.
var BreedTags = []string{
	"BREED_PIT_BULL", "BREED_ROTTWEILER", "BREED_GERMAN_SHEPHERD",
	"BREED_DOBERMAN", "BREED_HUSKY", "BREED_AKITA", "BREED_MASTIFF",
	"BREED_CHOW_CHOW", "BREED_GREAT_DANE", "BREED_WOLF", "BREED_BOXER",
	"BREED_AMERICAN_BULLDOG", "BREED_STAFFORDSHIRE_TERRIER",
	"BREED_ALASKAN_MALAMUTE", "BREED_CANE_CORSO", "BREED_AGGRESSIVE",
	"BREED_LARGE", "BREED_CONTACT",
	"BREED_DOGO_ARGENTINO", "BREED_PRESA_CANARIO", "BREED_BELGIAN_MALINOIS",
	"BREED_ST_BERNARD", "BREED_BULL_TERRIER",
}

// AmenityTags is the closed vocabulary for pet_amenities_list.
var AmenityTags = []string{
	"AMENITY_PET_BEDS", "AMENITY_PET_BOWLS", "AMENITY_PET_TREATS",
	"AMENITY_RELIEF_AREA", "AMENITY_PET_MENU", "AMENITY_PET_TOYS",
	"AMENITY_KENNEL", "AMENITY_PET_SITTING", "AMENITY_DOG_WALKING",
	"AMENITY_WASTE_BAGS", "AMENITY_WELCOME_KIT", "AMENITY_FENCED_AREA",
	"AMENITY_DOG_WASH", "AMENITY_TRAILS",
}

// Intervals is the closed vocabulary for pet_fee_interval.
var Intervals = []string{"per-night", "per-stay", "per-day", "per-week", "one-time"}

// Currencies is the normalizer's currency allow-list. Unlike the other
// vocabularies this set is semi-open: the LLM fallback may return any valid
// lowercase 3-letter code, since the currency space is open-ended.
var Currencies = []string{
	"usd", "eur", "gbp", "aud", "cad", "chf", "jpy", "cny", "inr", "mxn", "hkd",
}

// SpeciesNames maps species tags to display names for prompt composition.
var SpeciesNames = map[string]string{
	"PET_TYPE_DOG":      "Dog",
	"PET_TYPE_CAT":      "Cat",
	"PET_TYPE_BIRD":     "Bird",
	"PET_TYPE_FISH":     "Fish",
	"PET_TYPE_SMALL":    "Small Pets",
	"PET_TYPE_ALL":      "All Pets",
	"PET_TYPE_SERVICE":  "Service Animals",
	"PET_TYPE_DOMESTIC": "Domestic Animals",
}

// AmenityNames maps amenity tags to display names for prompt composition.
var AmenityNames = map[string]string{
	"AMENITY_PET_BEDS":    "Pet Beds",
	"AMENITY_PET_BOWLS":   "Pet Bowls",
	"AMENITY_PET_TREATS":  "Pet Treats",
	"AMENITY_RELIEF_AREA": "Relief Area",
	"AMENITY_PET_MENU":    "Pet Menu",
	"AMENITY_PET_TOYS":    "Pet Toys",
	"AMENITY_KENNEL":      "Kennel",
	"AMENITY_PET_SITTING": "Pet Sitting",
	"AMENITY_DOG_WALKING": "Dog Walking",
	"AMENITY_WASTE_BAGS":  "Waste Bags",
	"AMENITY_WELCOME_KIT": "Welcome Kit",
	"AMENITY_FENCED_AREA": "Fenced Area",
	"AMENITY_DOG_WASH":    "Dog Wash",
	"AMENITY_TRAILS":      "Trails",
}

// BreedNames maps breed tags to display names for prompt composition. The
// extraction prompt vocabulary is wider than the scraper-side BreedTags; the
// extra tags exist only in LLM full-context output, never in scraper rows.
var BreedNames = map[string]string{
	"BREED_AGGRESSIVE":            "Aggressive Breeds",
	"BREED_LARGE":                 "Large Breeds",
	"BREED_CONTACT":               "Contact for Restrictions",
	"BREED_AKITA":                 "Akita",
	"BREED_ALASKAN_MALAMUTE":      "Alaskan Malamute",
	"BREED_AMERICAN_BULLDOG":      "American Bulldog",
	"BREED_PIT_BULL":              "Pit Bull",
	"BREED_STAFFORDSHIRE_TERRIER": "Staffordshire Terrier",
	"BREED_BELGIAN_MALINOIS":      "Belgian Malinois",
	"BREED_BENGAL":                "Bengal",
	"BREED_BOXER":                 "Boxer",
	"BREED_MASTIFF":               "Mastiff",
	"BREED_BULL_TERRIER":          "Bull Terrier",
	"BREED_BULLY":                 "Bully",
	"BREED_CANE_CORSO":            "Cane Corso",
	"BREED_CHOW_CHOW":             "Chow Chow",
	"BREED_DINGO":                 "Dingo",
	"BREED_DOBERMAN":              "Doberman",
	"BREED_DOGO_ARGENTINO":        "Dogo Argentino",
	"BREED_GERMAN_SHEPHERD":       "German Shepherd",
	"BREED_GREAT_DANE":            "Great Dane",
	"BREED_HUSKY":                 "Husky",
	"BREED_MIXED":                 "Mixed Breed",
	"BREED_PRESA_CANARIO":         "Presa Canario",
	"BREED_ROTTWEILER":            "Rottweiler",
	"BREED_SAVANNAH":              "Savannah",
	"BREED_ST_BERNARD":            "St. Bernard",
	"BREED_WOLF":                  "Wolf",
}

// Contains reports membership of tag in the given vocabulary.
func Contains(vocabulary []string, tag string) bool {
	for _, t := range vocabulary {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter returns the subset of tags that belong to the vocabulary,
// preserving order.
func Filter(vocabulary, tags []string) []string {
	var out []string
	for _, t := range tags {
		if Contains(vocabulary, t) {
			out = append(out, t)
		}
	}
	return out
}
