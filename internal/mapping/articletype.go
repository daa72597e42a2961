// =============================================================================
// CAPPS Converter - Article Type Mapping
// =============================================================================
//
// Maps AIMsi (category, subcategory) code pairs to the fixed CAPPS article
// vocabulary. The table is static; lookups never fail:
//   - unknown category                  -> generic fallback
//   - known category, unknown subcat    -> category default if defined,
//                                          else the generic fallback
//
// Pure lookups with no mutable state; safe for concurrent use.
//
// =============================================================================

package mapping

// FallbackArticle is returned for any (category, subcategory) pair the table
// does not cover. CAPPS accepts it as a generic instrument entry.
const FallbackArticle = "INSTRUMENT"

// categoryTable is the two-level article lookup. Outer key: AIMsi category
// code. Inner key: subcategory code from the serials export.
var categoryTable = map[string]categoryEntry{
	"1": { // Wind and orchestral
		subcategories: map[string]string{
			"1":  "ACCORDION",
			"2":  "FLUTE",
			"3":  "CLARINET",
			"4":  "INSTRUMENT", // saxophones
			"7":  "HORN",
			"8":  "TRUMPET",
			"9":  "INSTRUMENT", // trombones
			"14": "VIOLIN",
			"27": "MUSICAL ACCESSORY", // reeds
			"28": "MUSICAL ACCESSORY", // brass/wind accessories
			"29": "MUSICAL ACCESSORY", // string accessories
			"31": "MUSICAL ACCESSORY", // band method books
		},
	},
	"2": { // Effects
		subcategories: map[string]string{
			"1": "FOOT PEDAL- AUDIO EQUIPMENT",
		},
	},
	"3": { // Guitars / fretted
		defaultArticle: "GUITAR",
		subcategories: map[string]string{
			"1":  "GUITAR", // acoustic
			"3":  "GUITAR", // electric
			"4":  "BASS",
			"6":  "MUSICAL ACCESSORY", // tuners
			"7":  "MUSICAL ACCESSORY", // pickups
			"10": "BANJO",             // banjo/uke/mandolin
			"11": "MUSICAL ACCESSORY", // cases
			"19": "MUSICAL ACCESSORY", // strings
			"20": "MUSICAL ACCESSORY", // fret accessories
		},
	},
	"4": { // Amps
		defaultArticle: "AMPLIFIER",
		subcategories: map[string]string{
			"1":  "AMPLIFIER",
			"2":  "AMPLIFIER",
			"3":  "AMPLIFIER",
			"4":  "AMPLIFIER",
			"5":  "AMPLIFIER",
			"6":  "AMPLIFIER",
			"19": "PREAMPLIFIER",
			"20": "MUSICAL ACCESSORY",
		},
	},
	"5": { // Drums / percussion
		defaultArticle: "DRUM",
		subcategories: map[string]string{
			"1":  "DRUM",
			"2":  "CYMBAL",
			"3":  "DRUM",
			"4":  "DRUM",
			"5":  "DRUM",
			"6":  "MUSICAL ACCESSORY", // sticks
			"7":  "DRUM",              // electronic percussion
			"10": "DRUM",
			"20": "MUSICAL ACCESSORY",
			"21": "MUSICAL ACCESSORY", // heads
			"22": "MUSICAL ACCESSORY", // hardware
		},
	},
	"6": { // Rentals / consignment
		defaultArticle: "INSTRUMENT",
		subcategories: map[string]string{
			"1": "INSTRUMENT",
			"2": "INSTRUMENT",
		},
	},
	"7": { // PA / sound
		defaultArticle: "SOUND EQUIPMENT",
		subcategories: map[string]string{
			"1":  "SOUND EQUIPMENT", // mixers
			"3":  "SOUND EQUIPMENT", // PA speakers
			"4":  "AMPLIFIER",       // PA power amps
			"5":  "SOUND EQUIPMENT", // signal processors
			"8":  "SOUND EQUIPMENT", // microphones
			"9":  "SOUND EQUIPMENT",
			"10": "SOUND EQUIPMENT",
			"11": "MUSICAL ACCESSORY", // mic stands
			"12": "RECORDING EQUIPMENT",
			"13": "SOUND EQUIPMENT", // wireless systems
			"20": "MUSICAL ACCESSORY",
		},
	},
	"9": { // Keyboards
		defaultArticle: "KEYBOARD",
		subcategories: map[string]string{
			"1":  "KEYBOARD",
			"2":  "DRUM MACHINE",
			"3":  "AMPLIFIER",
			"6":  "MODULE",
			"20": "MUSICAL ACCESSORY",
		},
	},
	"10": { // Fees
		subcategories: map[string]string{
			"1": "MUSICAL ACCESSORY",
		},
	},
	"12": { // Accessories
		defaultArticle: "MUSICAL ACCESSORY",
		subcategories: map[string]string{
			"1":  "MUSICAL ACCESSORY",
			"2":  "MUSICAL ACCESSORY", // harmonicas
			"3":  "MUSICAL ACCESSORY",
			"4":  "MUSICAL ACCESSORY", // cables
			"5":  "MUSICAL ACCESSORY", // amp tubes
			"6":  "MUSICAL ACCESSORY", // guitar parts
			"7":  "MUSICAL ACCESSORY", // slides/capos
			"8":  "MUSICAL ACCESSORY", // straps
			"9":  "METRONOME",
			"10": "MUSICAL ACCESSORY",
			"11": "MUSICAL ACCESSORY",
			"12": "AMPLIFIER", // battery/headphone amps
			"13": "MUSICAL ACCESSORY",
			"14": "MUSICAL ACCESSORY",
		},
	},
	"22": { // Books / methods
		defaultArticle: "MUSICAL ACCESSORY",
		subcategories: map[string]string{
			"1": "MUSICAL ACCESSORY",
			"2": "MUSICAL ACCESSORY",
			"3": "MUSICAL ACCESSORY",
		},
	},
	"24": {
		defaultArticle: "MUSICAL ACCESSORY",
		subcategories: map[string]string{
			"1": "MUSICAL ACCESSORY",
			"2": "MUSICAL ACCESSORY",
			"3": "MUSICAL ACCESSORY",
			"4": "MUSICAL ACCESSORY",
		},
	},
	"25": {
		defaultArticle: "MUSICAL ACCESSORY",
		subcategories: map[string]string{
			"1": "MUSICAL ACCESSORY",
			"2": "MUSICAL ACCESSORY",
			"3": "MUSICAL ACCESSORY",
		},
	},
	"26": {
		defaultArticle: "MUSICAL ACCESSORY",
		subcategories: map[string]string{
			"1": "MUSICAL ACCESSORY",
			"2": "MUSICAL ACCESSORY",
			"3": "MUSICAL ACCESSORY",
			"4": "MUSICAL ACCESSORY",
			"5": "MUSICAL ACCESSORY",
		},
	},
}

// categoryEntry is one category's subcategory table plus its fallback.
type categoryEntry struct {
	// defaultArticle is used when the subcategory is unknown. Empty means
	// fall back to FallbackArticle.
	defaultArticle string

	subcategories map[string]string
}

// ArticleType maps a (category, subcategory) code pair to a CAPPS article
// type string. It never fails; unmapped pairs resolve per the fallback
// contract documented at the top of this file.
func ArticleType(category, subcategory string) string {
	entry, ok := categoryTable[category]
	if !ok {
		return FallbackArticle
	}
	if article, ok := entry.subcategories[subcategory]; ok {
		return article
	}
	if entry.defaultArticle != "" {
		return entry.defaultArticle
	}
	return FallbackArticle
}
