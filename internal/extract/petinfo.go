package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/resilience"
	"github.com/pawstays/petpolicy-cli/pkg/anthropic"
)

// PetInfoExtractor runs the full-context extraction: one LLM call over the
// scraped page context yielding every tri-state field plus per-field
// confidence scores.
type PetInfoExtractor struct {
	client anthropic.Client
	model  string
	retry  resilience.RetryConfig
}

// NewPetInfoExtractor builds a PetInfoExtractor.
func NewPetInfoExtractor(client anthropic.Client, llmModel string) *PetInfoExtractor {
	return &PetInfoExtractor{
		client: client,
		model:  llmModel,
		retry:  resilience.DefaultRetryConfig(),
	}
}

// Extract parses the web context into a PetPolicyResult. The tri-state
// invariant (value only when status is present) is enforced during unmarshal;
// confidence scores are clamped to [0,1].
func (e *PetInfoExtractor) Extract(ctx context.Context, webContext string) (*model.PetPolicyResult, error) {
	e.retry.OnRetry = resilience.RetryLogger("anthropic", "pet_info_extract")
	temp := 0.0
	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     e.model,
			MaxTokens: 4096,
			System:    petInfoSystemPrompt(webContext),
			Messages: []anthropic.Message{
				{Role: "user", Content: "Extract the attributes from the provided context."},
			},
			Temperature: &temp,
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "extract: pet info call")
	}

	body := stripCodeFence(resp.Text())
	var result model.PetPolicyResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, eris.Wrap(err, "extract: parse pet info response")
	}
	result.ConfidenceScores.Clamp()
	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
