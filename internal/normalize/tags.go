package normalize

import "strings"

// keywordRule maps text to one canonical tag, either by substring containment
// of any keyword or, when set, by the match predicate. Rule order is the
// emission order.
type keywordRule struct {
	tag      string
	keywords []string
	match    func(s string) bool
}

func (r keywordRule) hit(s string) bool {
	if r.match != nil {
		return r.match(s)
	}
	for _, kw := range r.keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func matchTags(s string, rules []keywordRule) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.hit(s) && !seen[r.tag] {
			seen[r.tag] = true
			tags = append(tags, r.tag)
		}
	}
	return tags
}

var speciesRules = []keywordRule{
	{tag: "PET_TYPE_DOG", keywords: []string{"dog", "canine"}},
	{tag: "PET_TYPE_CAT", keywords: []string{"cat"}},
	{tag: "PET_TYPE_BIRD", keywords: []string{"bird"}},
	{tag: "PET_TYPE_FISH", keywords: []string{"fish"}},
	{tag: "PET_TYPE_SMALL", keywords: []string{"rabbit", "hamster", "guinea", "small pet", "small animal"}},
	{tag: "PET_TYPE_ALL", match: func(s string) bool {
		return (strings.Contains(s, "all") && (strings.Contains(s, "pet") || strings.Contains(s, "animal"))) ||
			strings.Contains(s, "all types")
	}},
	{tag: "PET_TYPE_SERVICE", keywords: []string{"service", "guide dog", "assistance"}},
	{tag: "PET_TYPE_DOMESTIC", keywords: []string{"domestic"}},
}

// Species maps free text to species tags: "dog, cat" →
// [PET_TYPE_DOG PET_TYPE_CAT]. Returns nil when nothing matches.
func Species(raw any) []string {
	s, ok := coerce(raw)
	if !ok {
		return nil
	}
	return matchTags(strings.ToLower(s), speciesRules)
}

// noRestrictionPhrases are exact (trimmed, lowercased) raw values that mean
// "no breed restriction". They suppress tag emission entirely: an explicit
// negative must not produce an empty-but-present list row.
var noRestrictionPhrases = map[string]bool{
	"n/a":                   true,
	"none":                  true,
	"no":                    true,
	"no breed restriction":  true,
	"no breed restrictions": true,
	"no aggressive breeds":  true,
}

// NoBreedRestriction reports whether raw is an explicit "no restriction"
// phrase. Callers must skip the attribute outright: the phrase is not a
// normalizer miss and must never escalate.
func NoBreedRestriction(raw any) bool {
	s, ok := coerce(raw)
	if !ok {
		return false
	}
	return noRestrictionPhrases[strings.TrimSpace(strings.ToLower(s))]
}

var breedRules = []keywordRule{
	{tag: "BREED_PIT_BULL", keywords: []string{"pit", "pitbull"}},
	{tag: "BREED_ROTTWEILER", keywords: []string{"rottweiler"}},
	{tag: "BREED_GERMAN_SHEPHERD", keywords: []string{"german shepherd", "german-shepherd"}},
	{tag: "BREED_DOBERMAN", keywords: []string{"doberman"}},
	{tag: "BREED_HUSKY", keywords: []string{"husky", "siberian"}},
	{tag: "BREED_AKITA", keywords: []string{"akita"}},
	{tag: "BREED_MASTIFF", keywords: []string{"mastiff"}},
	{tag: "BREED_WOLF", keywords: []string{"wolf"}},
	{tag: "BREED_CHOW_CHOW", keywords: []string{"chow"}},
	{tag: "BREED_GREAT_DANE", keywords: []string{"great dane"}},
	{tag: "BREED_BOXER", keywords: []string{"boxer"}},
	// Needs both words so a lone "bulldog" stays unmatched.
	{tag: "BREED_AMERICAN_BULLDOG", match: func(s string) bool {
		return strings.Contains(s, "bulldog") && strings.Contains(s, "american")
	}},
	{tag: "BREED_STAFFORDSHIRE_TERRIER", keywords: []string{"staffordshire"}},
	{tag: "BREED_ALASKAN_MALAMUTE", keywords: []string{"malamute"}},
	{tag: "BREED_CANE_CORSO", keywords: []string{"cane corso"}},
	{tag: "BREED_AGGRESSIVE", keywords: []string{"aggressive"}},
	{tag: "BREED_LARGE", keywords: []string{"large breed"}},
	{tag: "BREED_CONTACT", keywords: []string{"contact"}},
	{tag: "BREED_DOGO_ARGENTINO", keywords: []string{"dogo", "argentino"}},
	{tag: "BREED_PRESA_CANARIO", keywords: []string{"presa", "canario"}},
	{tag: "BREED_BELGIAN_MALINOIS", keywords: []string{"belgian", "malinois"}},
	{tag: "BREED_ST_BERNARD", keywords: []string{"st. bernard", "saint bernard", "st bernard"}},
	// Must not double-match a staffordshire mention.
	{tag: "BREED_BULL_TERRIER", match: func(s string) bool {
		return strings.Contains(s, "bull terrier") && !strings.Contains(s, "staffordshire")
	}},
}

// Breeds maps free text to breed-restriction tags: "Pit Bull, Rottweiler" →
// [BREED_PIT_BULL BREED_ROTTWEILER]. An explicit "no restriction" phrase
// returns nil so no row is emitted.
func Breeds(raw any) []string {
	s, ok := coerce(raw)
	if !ok {
		return nil
	}
	s = strings.ToLower(s)
	if noRestrictionPhrases[strings.TrimSpace(s)] {
		return nil
	}
	return matchTags(s, breedRules)
}

var amenityRules = []keywordRule{
	{tag: "AMENITY_PET_BEDS", keywords: []string{"bed"}},
	{tag: "AMENITY_PET_BOWLS", keywords: []string{"bowl", "dish"}},
	{tag: "AMENITY_PET_TREATS", keywords: []string{"treat", "biscuit"}},
	{tag: "AMENITY_RELIEF_AREA", keywords: []string{"relief", "dog run", "potty", "dog park", "waste station"}},
	{tag: "AMENITY_PET_MENU", keywords: []string{"menu", "dining", "pet food", "dog food"}},
	{tag: "AMENITY_PET_TOYS", keywords: []string{"toy"}},
	{tag: "AMENITY_KENNEL", keywords: []string{"kennel", "crate"}},
	{tag: "AMENITY_PET_SITTING", keywords: []string{"sitting", "daycare"}},
	{tag: "AMENITY_DOG_WALKING", keywords: []string{"walking", "dog_walking"}},
	{tag: "AMENITY_WASTE_BAGS", keywords: []string{"waste", "poop", "bag"}},
	{tag: "AMENITY_WELCOME_KIT", match: func(s string) bool {
		return strings.Contains(s, "welcome") && strings.Contains(s, "kit")
	}},
	{tag: "AMENITY_FENCED_AREA", match: func(s string) bool {
		return strings.Contains(s, "fenc") || strings.Contains(s, "backyard") ||
			(strings.Contains(s, "private") && strings.Contains(s, "yard"))
	}},
	{tag: "AMENITY_DOG_WASH", keywords: []string{"wash", "groom", "bath"}},
	{tag: "AMENITY_TRAILS", keywords: []string{"trail", "hik"}},
}

// Amenities maps free text to pet-amenity tags: "pet beds, bowls, relief
// area" → [AMENITY_PET_BEDS AMENITY_PET_BOWLS AMENITY_RELIEF_AREA].
func Amenities(raw any) []string {
	s, ok := coerce(raw)
	if !ok {
		return nil
	}
	return matchTags(strings.ToLower(s), amenityRules)
}
