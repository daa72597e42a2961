package mapping

import "strings"

// FallbackColor is reported when no finish term is recognized.
const FallbackColor = "Other"

// colorTable maps descriptive finish terms from item descriptions to the
// closed set of CAPPS base colors. Instrument finishes rarely name a plain
// color, so trade terms (SUNBURST, TOBACCO, ...) map to their nearest base.
var colorTable = map[string]string{
	"BLACK":  "BLACK",
	"WHITE":  "WHITE",
	"RED":    "RED",
	"BLUE":   "BLUE",
	"GREEN":  "GREEN",
	"YELLOW": "YELLOW",
	"ORANGE": "ORANGE",
	"PURPLE": "PURPLE",
	"BROWN":  "BROWN",
	"GRAY":   "GRAY",
	"GREY":   "GRAY",
	"PINK":   "PINK",
	"SILVER": "SILVER",
	"GOLD":   "GOLD",
	"TAN":    "TAN",

	"BEIGE":     "TAN",
	"CREAM":     "WHITE",
	"IVORY":     "WHITE",
	"NATURAL":   "BROWN",
	"SUNBURST":  "BROWN",
	"TOBACCO":   "BROWN",
	"CHERRY":    "RED",
	"WINE":      "RED",
	"BURGUNDY":  "RED",
	"CRIMSON":   "RED",
	"NAVY":      "BLUE",
	"TEAL":      "BLUE",
	"TURQUOISE": "BLUE",
	"VIOLET":    "PURPLE",
	"LAVENDER":  "PURPLE",
	"CHARCOAL":  "GRAY",
	"SLATE":     "GRAY",
	"AMBER":     "ORANGE",
	"COPPER":    "ORANGE",
}

// Color extracts a normalized base color from a free-text description.
// Terms must appear as whole words; "REDWOOD" does not match "RED". The first
// recognized term in description order wins, which keeps the result
// deterministic for descriptions naming several finishes. Returns
// FallbackColor when nothing matches.
func Color(description string) string {
	for _, word := range strings.Fields(strings.ToUpper(description)) {
		if base, ok := colorTable[word]; ok {
			return base
		}
	}
	return FallbackColor
}
