package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pawstays/petpolicy-cli/internal/config"
	"github.com/pawstays/petpolicy-cli/internal/extract"
	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/normalize"
	"github.com/pawstays/petpolicy-cli/internal/store"
	"github.com/pawstays/petpolicy-cli/internal/vocab"
)

// Transfer reconciles raw scraped pet-policy values into typed attribute
// rows. Deterministic normalizers run first; a miss with data escalates to
// the LLM fallback, and unextractable values persist as invalid.
type Transfer struct {
	cfg      *config.Config
	store    store.Store
	fallback extract.Fallback
}

// New creates a Transfer with all dependencies.
func New(cfg *config.Config, st store.Store, fb extract.Fallback) *Transfer {
	return &Transfer{cfg: cfg, store: st, fallback: fb}
}

// Run executes a full transfer batch. Slug remapping and attribute-type
// resolution failures are fatal; a single hotel's failure rolls back that
// hotel only and the batch continues.
func (t *Transfer) Run(ctx context.Context) (*model.TransferStats, error) {
	log := zap.L()
	stats := &model.TransferStats{}

	matched, err := t.store.RemapSlugs(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "transfer: remap slugs")
	}
	stats.SlugMatched = matched
	log.Info("slug remap complete", zap.Int64("matched", matched))

	runtimeIDs, err := t.store.ResolveAttributeTypes(ctx, model.RuntimeResolved)
	if err != nil {
		return nil, eris.Wrap(err, "transfer: resolve attribute types")
	}
	registry := model.NewRegistry(model.Definitions(), runtimeIDs)

	hotels, err := t.store.ListScrapedHotels(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "transfer: list scraped hotels")
	}
	stats.Hotels = len(hotels)
	log.Info("processing matched hotels", zap.Int("count", len(hotels)))

	for i, h := range hotels {
		h := h
		err := t.store.WithHotelTx(ctx, func(w store.AttributeWriter) error {
			return t.processHotel(ctx, w, registry, h, stats)
		})
		if err != nil {
			log.Error("hotel failed, continuing",
				zap.String("hotel_id", h.HotelID),
				zap.Int("index", i),
				zap.Error(err))
			stats.Errors = append(stats.Errors, model.HotelError{
				HotelID: h.HotelID,
				Err:     err.Error(),
			})
			continue
		}
	}

	log.Info("transfer complete",
		zap.Int("hotels", stats.Hotels),
		zap.Int("updated", stats.Updated),
		zap.Int("inserted", stats.Inserted),
		zap.Int("invalid", stats.Invalid),
		zap.Int("llm_calls", stats.LLMCalls),
		zap.Int("errors", len(stats.Errors)))
	return stats, nil
}

// processHotel resolves every attribute for one hotel inside its
// transaction. Attribute order is fixed: booleans, integers, floats,
// strings, tag lists.
func (t *Transfer) processHotel(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	// Booleans.
	for _, b := range []struct {
		name string
		raw  *string
	}{
		{model.AttrIsPetFriendly, h.IsPetFriendly},
		{model.AttrHasPetDeposit, h.HasPetDeposit},
		{model.AttrIsDepositRefundable, h.IsDepositRefundable},
		{model.AttrHasPetAmenities, h.HasPetAmenities},
	} {
		in, ok := t.boolInput(reg, b.name, b.raw)
		if !ok {
			continue
		}
		if err := t.resolveAttr(ctx, w, h.HotelID, in, stats); err != nil {
			return err
		}
	}

	// Integers. The max_pets source column mixes pet counts with weight
	// limits; a parsed value above the count threshold is a weight in lbs.
	if err := t.processMaxPets(ctx, w, reg, h, stats); err != nil {
		return err
	}

	// Floats.
	if err := t.processFees(ctx, w, reg, h, stats); err != nil {
		return err
	}

	// Strings.
	if err := t.processCurrency(ctx, w, reg, h, stats); err != nil {
		return err
	}
	if err := t.processInterval(ctx, w, reg, h, stats); err != nil {
		return err
	}

	// Tag lists.
	if err := t.processTagLists(ctx, w, reg, h, stats); err != nil {
		return err
	}

	return nil
}

func (t *Transfer) boolInput(reg *model.Registry, name string, raw *string) (attrInput, bool) {
	def, id, ok := reg.Lookup(name)
	if !ok {
		return attrInput{}, false
	}
	in := attrInput{def: def, id: id, raw: raw}
	if raw != nil {
		if v, ok := normalize.Bool(*raw); ok {
			in.vBool = &v
		}
	}
	return in, true
}

func (t *Transfer) processMaxPets(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	raw := h.MaxPets
	var parsed *int64
	if raw != nil {
		if v, ok := normalize.Int(*raw); ok {
			parsed = &v
		}
	}

	switch {
	case parsed != nil && *parsed <= t.cfg.Rules.PetCountMax:
		def, id, ok := reg.Lookup(model.AttrMaxPetsAllowed)
		if !ok {
			return nil
		}
		return t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: raw, vInt: parsed}, stats)
	case parsed != nil:
		def, id, ok := reg.Lookup(model.AttrMaxWeightLbs)
		if !ok {
			return nil
		}
		return t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: raw, vInt: parsed}, stats)
	case raw != nil:
		def, id, ok := reg.Lookup(model.AttrMaxPetsAllowed)
		if !ok {
			return nil
		}
		return t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: raw}, stats)
	}
	return nil
}

func (t *Transfer) processFees(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	// Nightly fee, falling back to the max-total column.
	rawFee := firstNonEmpty(h.PetFeeNight, h.PetFeeTotalMax)
	var feeVal *float64
	if rawFee != nil {
		if v, ok := normalize.Float(*rawFee); ok {
			feeVal = &v
		}
	}
	if def, id, ok := reg.Lookup(model.AttrPetFeeAmount); ok {
		if err := t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: rawFee, vNum: feeVal}, stats); err != nil {
			return err
		}
	}

	// Deposit amount. A parsed zero writes nothing.
	rawDep := h.PetFeeDeposit
	var depVal *float64
	if rawDep != nil {
		if v, ok := normalize.Float(*rawDep); ok {
			depVal = &v
		}
	}
	def, id, ok := reg.Lookup(model.AttrPetDepositAmount)
	if !ok {
		return nil
	}
	switch {
	case depVal != nil && *depVal > 0:
		return t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: rawDep, vNum: depVal}, stats)
	case rawDep != nil && depVal == nil:
		return t.resolveAttr(ctx, w, h.HotelID, attrInput{def: def, id: id, raw: rawDep}, stats)
	}
	return nil
}

func (t *Transfer) processCurrency(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	def, id, ok := reg.Lookup(model.AttrPetFeeCurrency)
	if !ok {
		return nil
	}
	raw := h.PetFeeCurrency
	in := attrInput{def: def, id: id, raw: raw}
	if raw != nil {
		if code, ok := normalize.Currency(*raw); ok && vocab.Contains(vocab.Currencies, code) {
			in.vStr = &code
		}
	}
	if in.vStr == nil && (raw == nil || *raw == "") {
		return nil
	}
	return t.resolveAttr(ctx, w, h.HotelID, in, stats)
}

func (t *Transfer) processInterval(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	def, id, ok := reg.Lookup(model.AttrPetFeeInterval)
	if !ok {
		return nil
	}
	raw := h.PetFeeInterval
	in := attrInput{def: def, id: id, raw: raw}
	if raw != nil {
		if iv, ok := normalize.Interval(*raw); ok && vocab.Contains(vocab.Intervals, iv) {
			in.vStr = &iv
		}
	}
	if in.vStr == nil && (raw == nil || *raw == "") {
		return nil
	}
	return t.resolveAttr(ctx, w, h.HotelID, in, stats)
}

func (t *Transfer) processTagLists(ctx context.Context, w store.AttributeWriter, reg *model.Registry, h model.ScrapedHotel, stats *model.TransferStats) error {
	// Allowed species.
	if def, id, ok := reg.Lookup(model.AttrAllowedSpecies); ok {
		in := attrInput{def: def, id: id, raw: h.AllowedPetTypes}
		if h.AllowedPetTypes != nil {
			in.vArr = vocab.Filter(vocab.SpeciesTags, normalize.Species(*h.AllowedPetTypes))
		}
		if err := t.resolveAttr(ctx, w, h.HotelID, in, stats); err != nil {
			return err
		}
	}

	// Breed restrictions. An explicit "no restriction" phrase suppresses
	// the attribute entirely rather than escalating or writing an empty
	// list row.
	if def, id, ok := reg.Lookup(model.AttrBreedRestrictions); ok {
		if h.BreedRestrictions != nil && normalize.NoBreedRestriction(*h.BreedRestrictions) {
			stats.Skipped++
		} else {
			in := attrInput{def: def, id: id, raw: h.BreedRestrictions}
			if h.BreedRestrictions != nil {
				in.vArr = vocab.Filter(vocab.BreedTags, normalize.Breeds(*h.BreedRestrictions))
			}
			if err := t.resolveAttr(ctx, w, h.HotelID, in, stats); err != nil {
				return err
			}
		}
	}

	// Pet amenities. The source column mixes general hotel amenities in,
	// so only a direct keyword hit is written and a miss ends silently.
	if def, id, ok := reg.Lookup(model.AttrPetAmenitiesList); ok {
		if h.PetAmenities != nil {
			if valid := vocab.Filter(vocab.AmenityTags, normalize.Amenities(*h.PetAmenities)); len(valid) > 0 {
				up := store.AttributeUpsert{
					HotelID:         h.HotelID,
					AttributeTypeID: id,
					Name:            def.Name,
					Kind:            def.Kind,
					ValueArr:        valid,
				}
				if err := t.record(ctx, w, up, stats); err != nil {
					return err
				}
			}
		}
	}

	// Fee variations, unwrapped from the JSON envelope and split.
	if def, id, ok := reg.Lookup(model.AttrPetFeeVariations); ok {
		in := attrInput{def: def, id: id, raw: h.PetFeeVariations}
		if h.PetFeeVariations != nil {
			in.vArr = normalize.SplitFreeText(*h.PetFeeVariations)
		}
		if err := t.resolveAttr(ctx, w, h.HotelID, in, stats); err != nil {
			return err
		}
	}

	// General pet rules from the free-form policy text.
	if def, id, ok := reg.Lookup(model.AttrGeneralPetRules); ok {
		in := attrInput{def: def, id: id, raw: h.PetPolicy}
		if h.PetPolicy != nil {
			in.vArr = normalize.SplitPolicy(*h.PetPolicy)
		}
		if err := t.resolveAttr(ctx, w, h.HotelID, in, stats); err != nil {
			return err
		}
	}

	return nil
}

func firstNonEmpty(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
