package brand

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain token", "GIBSON", "GIBSON"},
		{"lowercase", "fender", "FENDER"},
		{"surrounding whitespace", "  TAYLOR \n", "TAYLOR"},
		{"quoted", `"MARTIN"`, "MARTIN"},
		{"single-quoted", "'KORG'", "KORG"},
		{"first line only", "ROLAND\nThe brand is Roland.", "ROLAND"},
		{"markdown fence", "```\nYAMAHA\n```", "YAMAHA"},
		{"fence with language tag", "```text\nPEARL\n```", "PEARL"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanAnswer(tt.raw)
			if got != tt.want {
				t.Errorf("cleanAnswer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRemoteStrategyRejectsNonAnswers(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"unknown sentinel", "UNKNOWN"},
		{"empty answer", ""},
		{"runaway answer", strings.Repeat("X", maxBrandLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClassifier{answer: tt.answer}
			s := NewRemoteStrategy(stub, time.Second, nil, zerolog.Nop())

			if got, ok := s.Resolve(context.Background(), "SOMETHING"); ok {
				t.Errorf("Resolve accepted %q as brand %q", tt.answer, got)
			}
		})
	}
}

func TestRemoteStrategyValidation(t *testing.T) {
	patterns := NewPatternMatcher()

	// A known brand passes validation.
	stub := &stubClassifier{answer: "GIBSON"}
	s := NewRemoteStrategy(stub, time.Second, patterns, zerolog.Nop())
	if got, ok := s.Resolve(context.Background(), "GIBSON SG"); !ok || got != "GIBSON" {
		t.Errorf("Resolve = (%q, %v), want (GIBSON, true)", got, ok)
	}

	// An unlisted brand is rejected when validation is on...
	stub = &stubClassifier{answer: "EASTMAN"}
	s = NewRemoteStrategy(stub, time.Second, patterns, zerolog.Nop())
	if got, ok := s.Resolve(context.Background(), "EASTMAN E10D"); ok {
		t.Errorf("Resolve accepted unlisted brand %q with validation on", got)
	}

	// ...and accepted when validation is off.
	stub = &stubClassifier{answer: "EASTMAN"}
	s = NewRemoteStrategy(stub, time.Second, nil, zerolog.Nop())
	if got, ok := s.Resolve(context.Background(), "EASTMAN E10D"); !ok || got != "EASTMAN" {
		t.Errorf("Resolve = (%q, %v), want (EASTMAN, true)", got, ok)
	}
}

func TestRemoteStrategyName(t *testing.T) {
	s := NewRemoteStrategy(&stubClassifier{}, time.Second, nil, zerolog.Nop())
	if s.Name() != "remote:stub" {
		t.Errorf("Name() = %q, want remote:stub", s.Name())
	}
}
