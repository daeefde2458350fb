package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/store"
)

// attrInput is one attribute resolution request: the raw source value plus
// the deterministic normalizer's result. A fully nil result set means the
// normalizer missed.
type attrInput struct {
	def model.AttributeDef
	id  string
	raw *string

	vBool *bool
	vInt  *int64
	vNum  *float64
	vStr  *string
	vArr  []string
}

func (in attrInput) normalized() bool {
	return in.vBool != nil || in.vInt != nil || in.vNum != nil || in.vStr != nil || len(in.vArr) > 0
}

func (in attrInput) rawEmpty() bool {
	return in.raw == nil || strings.TrimSpace(*in.raw) == ""
}

// resolveAttr runs the resolution ladder for one attribute: normalizer
// result wins outright, a miss with data escalates to the LLM where the
// definition permits, and an unextractable value persists as invalid.
// Missing data writes nothing at all.
func (t *Transfer) resolveAttr(ctx context.Context, w store.AttributeWriter, hotelID string, in attrInput, stats *model.TransferStats) error {
	up := store.AttributeUpsert{
		HotelID:         hotelID,
		AttributeTypeID: in.id,
		Name:            in.def.Name,
		Kind:            in.def.Kind,
	}

	if in.normalized() {
		up.ValueBool = in.vBool
		up.ValueInt = in.vInt
		up.ValueNum = in.vNum
		up.ValueStr = in.vStr
		up.ValueArr = in.vArr
		return t.record(ctx, w, up, stats)
	}

	if in.rawEmpty() {
		stats.Skipped++
		return nil
	}

	if !in.def.LLMFallback {
		stats.Skipped++
		return nil
	}

	zap.L().Debug("escalating to fallback",
		zap.String("hotel_id", hotelID),
		zap.String("attribute", in.def.Name))
	out := t.fallback.Extract(ctx, in.def, *in.raw)
	stats.LLMCalls++

	switch {
	case out.Invalid:
		up.IsInvalid = true
	case out.IsNull:
		up.IsNull = true
	default:
		up.ValueBool = out.Bool
		up.ValueInt = out.Int
		up.ValueNum = out.Num
		up.ValueStr = out.Str
		up.ValueArr = out.Tags
	}
	return t.record(ctx, w, up, stats)
}

// record writes the upsert and folds the result into the run stats.
func (t *Transfer) record(ctx context.Context, w store.AttributeWriter, up store.AttributeUpsert, stats *model.TransferStats) error {
	// Fees above the ceiling are garbage data (years, currency conversions)
	// and persist as invalid no matter which tier extracted the value.
	if up.Name == model.AttrPetFeeAmount && up.ValueNum != nil && *up.ValueNum > t.cfg.Rules.FeeCeiling {
		zap.L().Warn("fee above ceiling, marking invalid",
			zap.String("hotel_id", up.HotelID),
			zap.Float64("value", *up.ValueNum))
		up.ValueNum = nil
		up.IsInvalid = true
	}

	res, err := w.UpsertAttribute(ctx, up)
	if err != nil {
		return err
	}
	if res == store.ResultSkipped {
		stats.Skipped++
		return nil
	}
	if up.IsInvalid {
		stats.Invalid++
		return nil
	}
	switch res {
	case store.ResultUpdated:
		stats.Updated++
	case store.ResultInserted:
		stats.Inserted++
	}
	return nil
}
