// =============================================================================
// CAPPS Converter - Remote Classifier Tier
// =============================================================================
//
// Optional middle tier of the brand resolution chain: a hosted language
// model is asked for a single brand token. The request is deterministic and
// cheap (temperature 0.1, ~20 token budget) and carries an explicit timeout.
// Every failure mode - network error, timeout, auth rejection, malformed or
// empty body - is an ordinary fall-through to pattern matching, never a
// run-fatal error. The classifier's answer is accepted as-is unless
// validation against the known-brand table is enabled.
//
// =============================================================================

package brand

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// classifierPrompt asks for exactly one brand token. Keep the instruction
// this strict: the whole tier depends on a single-token answer.
const classifierPrompt = `Extract ONLY the brand name from this musical instrument description.
Return just the brand name in uppercase, nothing else. If no brand found, return UNKNOWN.

Description: %s`

// maxBrandLength rejects runaway answers that are clearly not a brand token.
const maxBrandLength = 50

// Classifier is a provider-specific classification call. Implementations
// return the raw model output; cleanup happens in the strategy.
type Classifier interface {
	Provider() string
	Classify(ctx context.Context, description string) (string, error)
}

// RemoteStrategy wraps a Classifier as a resolver tier.
type RemoteStrategy struct {
	classifier Classifier
	timeout    time.Duration

	// validate, when non-nil, rejects answers that are not in the
	// known-brand table so they fall through to pattern matching.
	validate *PatternMatcher

	log zerolog.Logger
}

// NewRemoteStrategy builds the remote tier. validate may be nil to trust the
// classifier's output unchecked.
func NewRemoteStrategy(c Classifier, timeout time.Duration, validate *PatternMatcher, log zerolog.Logger) *RemoteStrategy {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteStrategy{classifier: c, timeout: timeout, validate: validate, log: log}
}

// Name implements Strategy.
func (s *RemoteStrategy) Name() string {
	return "remote:" + s.classifier.Provider()
}

// Resolve implements Strategy. It never returns an error: anything short of
// a clean single-token answer is reported as a miss.
func (s *RemoteStrategy) Resolve(ctx context.Context, description string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.classifier.Classify(ctx, fmt.Sprintf(classifierPrompt, description))
	if err != nil {
		s.log.Debug().Err(err).Str("provider", s.classifier.Provider()).
			Msg("remote classification failed, falling back to patterns")
		return "", false
	}

	answer := cleanAnswer(raw)
	if answer == "" || answer == Unknown || len(answer) >= maxBrandLength {
		return "", false
	}

	if s.validate != nil && !s.validate.Contains(answer) {
		s.log.Debug().Str("answer", answer).
			Msg("remote classification rejected by pattern validation")
		return "", false
	}

	return answer, true
}

// cleanAnswer normalizes raw model output into a brand token: strips
// markdown fences and quoting the model sometimes adds despite instructions,
// keeps the first line only, and uppercases.
func cleanAnswer(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.IndexAny(s, "\r\n"); idx != -1 {
		s = s[:idx]
	}

	s = strings.Trim(s, `"'`)
	return strings.ToUpper(strings.TrimSpace(s))
}
