package brand

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/storeops/capps-converter/internal/config"
)

// BuildResolver assembles the fallback chain described by the classifier
// settings: optional remote tier first, static pattern table last. The
// returned resolver shares the given cache with the rest of the process.
func BuildResolver(ctx context.Context, cache *Cache, cfg config.ClassifierSettings, log zerolog.Logger) (*Resolver, error) {
	matcher := NewPatternMatcher()

	var strategies []Strategy

	if cfg.Provider != config.ProviderNone {
		classifier, err := newClassifier(ctx, cfg)
		if err != nil {
			return nil, err
		}

		var validate *PatternMatcher
		if cfg.ValidateAgainstPatterns {
			validate = matcher
		}

		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		strategies = append(strategies, NewRemoteStrategy(classifier, timeout, validate, log))
	}

	strategies = append(strategies, matcher.Strategy())

	return NewResolver(cache, log, strategies...), nil
}

func newClassifier(ctx context.Context, cfg config.ClassifierSettings) (Classifier, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroqClassifier(cfg.APIKey, cfg.Model), nil
	case config.ProviderGemini:
		return NewGeminiClassifier(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}
