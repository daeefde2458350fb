package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/vocab"
	"github.com/pawstays/petpolicy-cli/pkg/anthropic"
)

// fakeClient replays canned replies and records requests.
type fakeClient struct {
	replies []string
	errs    []error
	calls   int
	lastReq anthropic.MessageRequest
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	idx := f.calls
	f.calls++
	f.lastReq = req
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	reply := ""
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: reply}},
	}, nil
}

func def(name string) model.AttributeDef {
	reg := model.NewRegistry(model.Definitions(), nil)
	d, ok := reg.Def(name)
	if !ok {
		panic(name)
	}
	return d
}

func TestExtractBool(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    *bool
		invalid bool
	}{
		{"true", "True", boolPtr(true), false},
		{"false lowercase", "false", boolPtr(false), false},
		{"invalid reply", "INVALID", nil, true},
		{"chatty reply rejected", "The answer is True", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{replies: []string{tt.reply}}
			e := NewExtractor(fc, "test-model", 0)
			out := e.Extract(context.Background(), def(model.AttrIsPetFriendly), "pets ok maybe")
			assert.Equal(t, tt.invalid, out.Invalid)
			if tt.want != nil {
				require.NotNil(t, out.Bool)
				assert.Equal(t, *tt.want, *out.Bool)
			}
		})
	}
}

func TestExtractIntNullSentinel(t *testing.T) {
	fc := &fakeClient{replies: []string{"NULL"}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrMaxPetsAllowed), "no limit on pets")
	assert.True(t, out.IsNull)
	assert.False(t, out.Invalid)
	assert.Nil(t, out.Int)
}

func TestExtractInt(t *testing.T) {
	fc := &fakeClient{replies: []string{"2"}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrMaxPetsAllowed), "two pets max")
	require.NotNil(t, out.Int)
	assert.Equal(t, int64(2), *out.Int)
}

func TestExtractFloat(t *testing.T) {
	fc := &fakeClient{replies: []string{"75.5"}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrPetFeeAmount), "around $75.50")
	require.NotNil(t, out.Num)
	assert.InDelta(t, 75.5, *out.Num, 1e-9)
}

func TestExtractCurrencyOpenSet(t *testing.T) {
	e := func(reply string) Outcome {
		fc := &fakeClient{replies: []string{reply}}
		return NewExtractor(fc, "test-model", 0).
			Extract(context.Background(), def(model.AttrPetFeeCurrency), "Swedish krona")
	}

	// Codes outside the allow-list are accepted when well-formed.
	out := e("sek")
	require.NotNil(t, out.Str)
	assert.Equal(t, "sek", *out.Str)
	assert.NotContains(t, vocab.Currencies, "sek")

	// Anything that is not a 3-letter code is not.
	assert.True(t, e("kronor").Invalid)
	assert.True(t, e("SEK currency").Invalid)
}

func TestExtractIntervalClosedSet(t *testing.T) {
	fc := &fakeClient{replies: []string{"per-stay"}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrPetFeeInterval), "charged for the whole visit")
	require.NotNil(t, out.Str)
	assert.Equal(t, "per-stay", *out.Str)

	fc = &fakeClient{replies: []string{"per-visit"}}
	e = NewExtractor(fc, "test-model", 0)
	out = e.Extract(context.Background(), def(model.AttrPetFeeInterval), "charged for the whole visit")
	assert.True(t, out.Invalid)
}

func TestExtractTagsFilteredToVocabulary(t *testing.T) {
	fc := &fakeClient{replies: []string{"PET_TYPE_DOG, PET_TYPE_DRAGON, PET_TYPE_CAT"}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrAllowedSpecies), "dogs, cats, dragons")
	assert.Equal(t, []string{"PET_TYPE_DOG", "PET_TYPE_CAT"}, out.Tags)

	// All tags out of vocabulary collapses to invalid.
	fc = &fakeClient{replies: []string{"PET_TYPE_DRAGON"}}
	e = NewExtractor(fc, "test-model", 0)
	out = e.Extract(context.Background(), def(model.AttrAllowedSpecies), "dragons only")
	assert.True(t, out.Invalid)
}

func TestExtractUnconstrainedListNeverCallsModel(t *testing.T) {
	fc := &fakeClient{}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrGeneralPetRules), "some unparseable text")
	assert.True(t, out.Invalid)
	assert.Zero(t, fc.calls)
}

func TestExtractCallErrorIsInvalid(t *testing.T) {
	fc := &fakeClient{errs: []error{errors.New("boom")}}
	e := NewExtractor(fc, "test-model", 0)
	out := e.Extract(context.Background(), def(model.AttrIsPetFriendly), "pets ok")
	assert.True(t, out.Invalid)
	// Non-transient errors do not retry.
	assert.Equal(t, 1, fc.calls)
}

func TestExtractRequestShape(t *testing.T) {
	fc := &fakeClient{replies: []string{"True"}}
	e := NewExtractor(fc, "test-model", 0)
	e.Extract(context.Background(), def(model.AttrIsPetFriendly), "pets welcome")

	require.NotNil(t, fc.lastReq.Temperature)
	assert.Zero(t, *fc.lastReq.Temperature)
	assert.Equal(t, "test-model", fc.lastReq.Model)
	require.Len(t, fc.lastReq.Messages, 1)
	assert.Contains(t, fc.lastReq.Messages[0].Content, "is_pet_friendly")
	assert.Contains(t, fc.lastReq.Messages[0].Content, "pets welcome")
}

func boolPtr(b bool) *bool { return &b }
