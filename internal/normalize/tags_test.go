package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecies(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"dog and cat", "dogs and cats welcome", []string{"PET_TYPE_DOG", "PET_TYPE_CAT"}},
		{"canine synonym", "canine companions only", []string{"PET_TYPE_DOG"}},
		{"small animals", "rabbits and hamsters", []string{"PET_TYPE_SMALL"}},
		{"guide dog", "guide dog assistance", []string{"PET_TYPE_DOG", "PET_TYPE_SERVICE"}},
		{"all pets compound", "all pets accepted", []string{"PET_TYPE_ALL"}},
		{"all before service", "service dogs and all pets welcome", []string{"PET_TYPE_DOG", "PET_TYPE_ALL", "PET_TYPE_SERVICE"}},
		{"dedupe", "dog dog canine", []string{"PET_TYPE_DOG"}},
		{"no match", "reptiles", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Species(tt.raw))
		})
	}
}

func TestBreeds(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"comma list", "Pit Bull, Rottweiler", []string{"BREED_PIT_BULL", "BREED_ROTTWEILER"}},
		{"aggressive phrase", "aggressive breeds prohibited", []string{"BREED_AGGRESSIVE"}},
		{"american bulldog compound", "american bulldog not allowed", []string{"BREED_AMERICAN_BULLDOG"}},
		{"bull terrier without staffordshire", "bull terrier restricted", []string{"BREED_BULL_TERRIER"}},
		{"american bulldog ordered after boxer", "boxer, american bulldog, malamute", []string{"BREED_BOXER", "BREED_AMERICAN_BULLDOG", "BREED_ALASKAN_MALAMUTE"}},
		{"staffordshire absorbs bull terrier", "staffordshire bull terrier", []string{"BREED_STAFFORDSHIRE_TERRIER"}},
		{"saint bernard variants", "St. Bernard not permitted", []string{"BREED_ST_BERNARD"}},
		{"explicit none suppressed", "no breed restrictions", nil},
		{"n/a suppressed", "N/A", nil},
		{"no match", "friendly small dogs ok", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breeds(tt.raw))
		})
	}
}

func TestNoBreedRestriction(t *testing.T) {
	assert.True(t, NoBreedRestriction("no breed restrictions"))
	assert.True(t, NoBreedRestriction("  None "))
	assert.True(t, NoBreedRestriction("No Aggressive Breeds"))
	assert.False(t, NoBreedRestriction("no pit bulls"))
	assert.False(t, NoBreedRestriction(""))
	assert.False(t, NoBreedRestriction(nil))
}

func TestAmenities(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"beds and bowls", "pet beds and water bowls", []string{"AMENITY_PET_BEDS", "AMENITY_PET_BOWLS"}},
		{"welcome kit compound", "welcome kit on arrival", []string{"AMENITY_WELCOME_KIT"}},
		{"welcome kit ordered before wash", "welcome kit and dog wash", []string{"AMENITY_WELCOME_KIT", "AMENITY_DOG_WASH"}},
		{"fenced yard", "fenced dog area", []string{"AMENITY_FENCED_AREA"}},
		{"dog run", "dog run and pet beds", []string{"AMENITY_PET_BEDS", "AMENITY_RELIEF_AREA"}},
		{"general amenities miss", "wifi, parking, pool", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amenities(tt.raw))
		})
	}
}
