// =============================================================================
// CAPPS Converter - Brand Pattern Matching
// =============================================================================
//
// Static pattern table of known musical-instrument brands, used as the final
// tier of the brand resolution chain. Matching is case-insensitive and
// whole-word: "GIBSON" matches in "BROKEN GIBSON LES PAUL" but "KING" does
// not match inside "PARKING". When several brands match, the longest pattern
// wins ("JAY TURSER" over a hypothetical "JAY").
//
// =============================================================================

package brand

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// knownBrands lists the brands the store commonly buys. Multi-word entries
// are matched as complete phrases.
var knownBrands = []string{
	// Guitars
	"FENDER", "GIBSON", "MARTIN", "TAYLOR", "YAMAHA", "EPIPHONE", "IBANEZ",
	"PRS", "GRETSCH", "RICKENBACKER", "GUILD", "WASHBURN", "DEAN", "JACKSON",
	"ESP", "SCHECTER", "CORT", "TAKAMINE", "OVATION", "SEAGULL", "BREEDLOVE",
	"JAY TURSER", "SQUIER", "MITCHELL", "OSCAR SCHMIDT", "LUNA", "ALVAREZ",
	"GODIN", "PARKER", "MUSIC MAN", "STERLING", "CHAPMAN", "SOLAR", "HARLEY BENTON",

	// Keyboards / pianos
	"ROLAND", "KORG", "CASIO", "KAWAI", "NORD", "KURZWEIL", "ALESIS",
	"AKAI", "NOVATION", "ARTURIA", "NATIVE INSTRUMENTS", "MOOG", "SEQUENTIAL",
	"DAVE SMITH", "BEHRINGER", "STEINWAY", "BALDWIN", "WURLITZER",

	// Drums
	"PEARL", "TAMA", "LUDWIG", "DW", "ZILDJIAN", "SABIAN",
	"PAISTE", "MEINL", "EVANS", "REMO", "MAPEX", "SONOR", "PACIFIC",
	"SIMMONS", "GIBRALTAR", "TOCA", "LP", "LATIN PERCUSSION",

	// Audio equipment
	"MARSHALL", "VOX", "ORANGE", "MESA", "MESA BOOGIE", "PEAVEY",
	"LINE 6", "BOSS", "SHURE", "SENNHEISER", "AKG", "AUDIO-TECHNICA",
	"BLUE", "RODE", "NEUMANN", "MXL", "MACKIE", "PRESONUS", "FOCUSRITE",
	"QSC", "JBL", "TASCAM", "ZOOM", "BLACKSTAR",

	// Wind instruments
	"SELMER", "BUFFET", "JUPITER", "MENDINI", "JEAN PAUL", "BUNDY",
	"ARMSTRONG", "GEMEINHARDT", "BACH", "CONN", "KING", "HOLTON", "GETZEN",

	// Accessories and everything else
	"DUNLOP", "ERNIE BALL", "DADDARIO", "D'ADDARIO", "ELIXIR", "GHS",
	"LEVY'S", "HERCULES", "ON-STAGE", "SKB", "GATOR", "HARDCASE", "MONO",
	"KALA", "CORDOBA", "HOHNER", "SUZUKI", "TRAYNOR", "RANDALL", "CRATE",
}

// PatternMatcher scans descriptions for known brand names. Construct once
// with NewPatternMatcher; safe for concurrent use afterwards.
type PatternMatcher struct {
	patterns []brandPattern
}

type brandPattern struct {
	brand string
	re    *regexp.Regexp
}

// NewPatternMatcher compiles the known-brand table into whole-word patterns.
// Patterns are ordered longest-first so the first hit is the longest match.
func NewPatternMatcher() *PatternMatcher {
	names := make([]string, len(knownBrands))
	copy(names, knownBrands)

	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	m := &PatternMatcher{}
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		m.patterns = append(m.patterns, brandPattern{
			brand: name,
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	return m
}

// Match returns the longest known brand found in the description, or
// ("", false) when none matches.
func (m *PatternMatcher) Match(description string) (string, bool) {
	for _, p := range m.patterns {
		if p.re.MatchString(description) {
			return p.brand, true
		}
	}
	return "", false
}

// Strategy adapts the matcher to the resolver's tier interface.
func (m *PatternMatcher) Strategy() Strategy {
	return patternStrategy{m}
}

type patternStrategy struct {
	m *PatternMatcher
}

func (patternStrategy) Name() string { return "pattern" }

func (s patternStrategy) Resolve(_ context.Context, description string) (string, bool) {
	return s.m.Match(description)
}

// Contains reports whether the given brand string is itself a known brand.
// Used to optionally validate remote classifier output.
func (m *PatternMatcher) Contains(brandName string) bool {
	needle := strings.ToUpper(strings.TrimSpace(brandName))
	for _, p := range m.patterns {
		if p.brand == needle {
			return true
		}
	}
	return false
}
