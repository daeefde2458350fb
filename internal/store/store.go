package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/pawstays/petpolicy-cli/internal/model"
)

// Provenance tags every row written by this pipeline, so attribute rows from
// other sources coexist without being clobbered.
const Provenance = "web-scraper"

// ExtractorConfidence is the confidence persisted for any successfully
// extracted value, whether the normalizer or the LLM produced it. Invalid
// rows persist 0.0.
const ExtractorConfidence = 0.85

// UpsertResult reports what the reconciliation write did.
type UpsertResult string

const (
	ResultUpdated  UpsertResult = "updated"
	ResultInserted UpsertResult = "inserted"
	ResultSkipped  UpsertResult = "skipped"
)

// AttributeUpsert is one reconciliation write: exactly one typed slot set
// (or none, for is_null / is_invalid rows).
type AttributeUpsert struct {
	HotelID         string
	AttributeTypeID string
	Name            string
	Kind            model.ValueKind
	ValueBool       *bool
	ValueInt        *int64
	ValueNum        *float64
	ValueStr        *string
	ValueArr        []string
	IsNull          bool
	IsInvalid       bool
}

// TextValue computes the free-text mirror column: the string form of the
// typed value for bool/int/float, the primary value itself for string kind,
// and always empty for tag lists.
func (u AttributeUpsert) TextValue() *string {
	var s string
	switch u.Kind {
	case model.KindBool:
		if u.ValueBool == nil {
			return nil
		}
		if *u.ValueBool {
			s = "True"
		} else {
			s = "False"
		}
	case model.KindInt:
		if u.ValueInt == nil {
			return nil
		}
		s = strconv.FormatInt(*u.ValueInt, 10)
	case model.KindFloat:
		if u.ValueNum == nil {
			return nil
		}
		s = strconv.FormatFloat(*u.ValueNum, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
	case model.KindString:
		return u.ValueStr
	case model.KindTagList:
		return nil
	}
	return &s
}

// Confidence derives the persisted confidence from validity.
func (u AttributeUpsert) Confidence() float64 {
	if u.IsInvalid {
		return 0.0
	}
	return ExtractorConfidence
}

// Enabled is the logical negation of IsInvalid.
func (u AttributeUpsert) Enabled() bool {
	return !u.IsInvalid
}

// AttributeWriter performs reconciliation writes inside one hotel's
// transaction.
type AttributeWriter interface {
	UpsertAttribute(ctx context.Context, up AttributeUpsert) (UpsertResult, error)
}

// Store is the persistence boundary for the reconciliation pipeline.
type Store interface {
	// ResolveAttributeTypes looks up attribute identities by name; names
	// missing from the result are skipped for the whole run.
	ResolveAttributeTypes(ctx context.Context, names []string) (map[string]string, error)

	// RemapSlugs re-links scraped records to canonical hotel identities by
	// slug match, returning the number of matched records.
	RemapSlugs(ctx context.Context) (int64, error)

	// ListScrapedHotels returns every scraped record with a matched hotel.
	ListScrapedHotels(ctx context.Context) ([]model.ScrapedHotel, error)

	// WithHotelTx runs fn inside one hotel's transaction; rollback on error.
	WithHotelTx(ctx context.Context, fn func(w AttributeWriter) error) error

	// Raw-extraction records (scrape side).
	SaveRawExtraction(ctx context.Context, rec model.HotelRecord) (int64, error)
	SaveWebContext(ctx context.Context, recordID int64, webContext string) error
	SavePetAttributes(ctx context.Context, recordID int64, result *model.PetPolicyResult) error
	UpdateWebSlug(ctx context.Context, recordID int64, slug string) error
	// CheckURLExists returns the record id and content hash for a URL that
	// already has both context and attributes, or ok=false.
	CheckURLExists(ctx context.Context, url string) (id int64, hash string, ok bool, err error)

	Migrate(ctx context.Context) error
	Close() error
}
