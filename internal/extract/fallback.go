// Package extract implements the second-tier extraction strategies: the
// per-attribute LLM fallback invoked when a normalizer misses, and the
// full-context tri-state pet policy extraction.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/resilience"
	"github.com/pawstays/petpolicy-cli/pkg/anthropic"
)

// Outcome is the result of one fallback extraction. At most one typed slot
// is set; IsNull signals the explicit "no limit" sentinel for integer kinds;
// Invalid means the attribute had data but nothing extractable.
type Outcome struct {
	Bool    *bool
	Int     *int64
	Num     *float64
	Str     *string
	Tags    []string
	IsNull  bool
	Invalid bool
}

// Fallback extracts a single attribute value from raw text when the
// deterministic normalizer missed.
type Fallback interface {
	Extract(ctx context.Context, def model.AttributeDef, raw string) Outcome
}

// Extractor implements Fallback over the Anthropic client with bounded
// retries and rate limiting. All model replies are parsed strictly: anything
// outside the expected reply vocabulary is invalid, never guessed at.
type Extractor struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewExtractor builds an Extractor. ratePerSec bounds LLM calls; zero means
// no limit.
func NewExtractor(client anthropic.Client, llmModel string, ratePerSec float64) *Extractor {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	return &Extractor{
		client:  client,
		model:   llmModel,
		limiter: rate.NewLimiter(limit, 1),
		retry:   resilience.DefaultRetryConfig(),
	}
}

var (
	invalidOutcome = Outcome{Invalid: true}

	intReply   = regexp.MustCompile(`-?\d+`)
	floatReply = regexp.MustCompile(`\d+\.?\d*`)
	codeReply  = regexp.MustCompile(`^[a-z]{3}$`)
)

// Extract asks the model for a typed value. The caller guarantees raw is
// non-blank; blank raw must short-circuit before reaching the adapter.
func (e *Extractor) Extract(ctx context.Context, def model.AttributeDef, raw string) Outcome {
	// Tag lists without a vocabulary (fee variations, free-form rules) have
	// nothing the model could be constrained to; data that survived the
	// splitters unparsed is unextractable.
	if def.Kind == model.KindTagList && def.AllowedValues == nil {
		return invalidOutcome
	}
	prompt := fallbackPrompt(def, raw)
	reply, err := e.call(ctx, prompt)
	if err != nil {
		zap.L().Warn("llm fallback failed",
			zap.String("attribute", def.Name),
			zap.Error(err),
		)
		return invalidOutcome
	}
	return parseReply(def, reply)
}

func (e *Extractor) call(ctx context.Context, prompt string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}
	e.retry.OnRetry = resilience.RetryLogger("anthropic", "fallback_extract")
	temp := 0.0
	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       e.model,
			MaxTokens:   256,
			Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
			Temperature: &temp,
		})
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// parseReply enforces the strict per-kind reply vocabulary.
func parseReply(def model.AttributeDef, reply string) Outcome {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return invalidOutcome
	}

	switch def.Kind {
	case model.KindBool:
		switch strings.ToLower(reply) {
		case "true":
			v := true
			return Outcome{Bool: &v}
		case "false":
			v := false
			return Outcome{Bool: &v}
		}
		return invalidOutcome

	case model.KindInt:
		upper := strings.ToUpper(reply)
		if upper == "NULL" {
			return Outcome{IsNull: true}
		}
		if upper == "INVALID" {
			return invalidOutcome
		}
		m := intReply.FindString(upper)
		if m == "" {
			return invalidOutcome
		}
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return invalidOutcome
		}
		return Outcome{Int: &n}

	case model.KindFloat:
		upper := strings.ToUpper(reply)
		if upper == "INVALID" {
			return invalidOutcome
		}
		m := floatReply.FindString(upper)
		if m == "" {
			return invalidOutcome
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return invalidOutcome
		}
		return Outcome{Num: &f}

	case model.KindString:
		return parseStringReply(def, reply)

	case model.KindTagList:
		return parseTagReply(def, reply)
	}
	return invalidOutcome
}

func parseStringReply(def model.AttributeDef, reply string) Outcome {
	lower := strings.ToLower(strings.TrimSpace(reply))
	if lower == "invalid" {
		return invalidOutcome
	}
	if def.OpenSet {
		// Currency: any lowercase 3-letter alphabetic code is acceptable,
		// even outside the current allow-list.
		if !codeReply.MatchString(lower) {
			return invalidOutcome
		}
		return Outcome{Str: &lower}
	}
	if def.AllowedValues != nil {
		for _, v := range def.AllowedValues {
			if lower == v {
				return Outcome{Str: &lower}
			}
		}
		return invalidOutcome
	}
	return Outcome{Str: &reply}
}

func parseTagReply(def model.AttributeDef, reply string) Outcome {
	upper := strings.ToUpper(strings.TrimSpace(reply))
	if upper == "INVALID" {
		return invalidOutcome
	}
	var tags []string
	for _, part := range strings.Split(upper, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	if def.AllowedValues != nil {
		var valid []string
		for _, t := range tags {
			for _, allowed := range def.AllowedValues {
				if t == allowed {
					valid = append(valid, t)
					break
				}
			}
		}
		tags = valid
	}
	if len(tags) == 0 {
		return invalidOutcome
	}
	return Outcome{Tags: tags}
}

// fallbackPrompt composes the per-kind extraction prompt.
func fallbackPrompt(def model.AttributeDef, raw string) string {
	switch def.Kind {
	case model.KindBool:
		return fmt.Sprintf(`Extract a boolean value from this text for the attribute %q.
Raw value: %q
Reply with ONLY "True" or "False" or "INVALID" if it cannot be determined.`, def.Name, raw)

	case model.KindInt:
		return fmt.Sprintf(`Extract an integer value from this text for the attribute %q.
Raw value: %q
Reply with ONLY the integer number, or "NULL" if it means no limit/unlimited, or "INVALID" if no number can be extracted.`, def.Name, raw)

	case model.KindFloat:
		return fmt.Sprintf(`Extract a numeric (decimal) value from this text for the attribute %q.
Raw value: %q
Reply with ONLY the number (no $ or currency symbols), or "INVALID" if no number can be extracted.`, def.Name, raw)

	case model.KindString:
		if def.OpenSet {
			return fmt.Sprintf(`Extract the currency code from this text.
Raw value: %q
Reply with ONLY the lowercase 3-letter ISO currency code (e.g., usd, eur, gbp), or "INVALID" if not a currency.`, raw)
		}
		if def.AllowedValues != nil {
			return fmt.Sprintf(`Extract the fee interval from this text for pet fees.
Raw value: %q
Allowed values: %s
Reply with ONLY one of the allowed values, or "INVALID" if none match.`, raw, strings.Join(def.AllowedValues, ", "))
		}
		return fmt.Sprintf(`Extract the value from this text for the attribute %q.
Raw value: %q
Reply with ONLY the value, or "INVALID" if it cannot be determined.`, def.Name, raw)

	default: // tag list
		return fmt.Sprintf(`Extract standardized tags from this text for the attribute %q.
Raw value: %q
Allowed tags: %s
Reply with ONLY the matching tags as a comma-separated list, or "INVALID" if none match.`, def.Name, raw, strings.Join(def.AllowedValues, ", "))
	}
}
