package model

import "time"

// ScrapedHotel is one raw record from the web-scraper source table, matched
// to a canonical hotel identity via slug. Every raw field is optional and
// potentially malformed by contract; the normalizers treat them as untrusted.
type ScrapedHotel struct {
	HotelID             string
	IsPetFriendly       *string
	PetFeeNight         *string
	PetFeeTotalMax      *string
	PetFeeInterval      *string
	MaxPets             *string
	AllowedPetTypes     *string
	BreedRestrictions   *string
	HasPetDeposit       *string
	IsDepositRefundable *string
	PetFeeCurrency      *string
	PetFeeVariations    *string
	PetAmenities        *string
	HasPetAmenities     *string
	PetPolicy           *string
	PetFeeDeposit       *string
}

// HotelRecord is a raw-extraction row keyed by URL: the scraped page context,
// content hash, and the canonical slug used for masterfile matching.
type HotelRecord struct {
	ID           int64
	URL          string
	HotelName    string
	City         string
	State        string
	Country      string
	CountryCode  string
	AddressLine1 string
	Hash         string
	WebSlug      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransferStats aggregates one batch run.
type TransferStats struct {
	SlugMatched int64          `json:"slug_matched"`
	Hotels      int            `json:"hotels"`
	Updated     int            `json:"updated"`
	Inserted    int            `json:"inserted"`
	Invalid     int            `json:"invalid"`
	Skipped     int            `json:"skipped"`
	LLMCalls    int            `json:"llm_calls"`
	Errors      []HotelError   `json:"errors,omitempty"`
}

// HotelError records a per-hotel failure; the batch continues past it.
type HotelError struct {
	HotelID string `json:"hotel_id"`
	Err     string `json:"error"`
}
