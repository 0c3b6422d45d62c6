// Package langtable is the static language-code -> display-title table the
// Dispatcher decorates GET /languages with (spec.md §4.5). It supplements
// the distilled spec with the original source's habit of labeling languages
// for display rather than echoing bare codes.
package langtable

// titles covers the Sami and neighbouring languages the original source's
// data files ship for, keyed by file stem. It is intentionally small and
// static: spec.md treats an absent title as "", not an error.
var titles = map[string]string{
	"se":  "North Sami",
	"smj": "Lule Sami",
	"sma": "South Sami",
	"smn": "Inari Sami",
	"sms": "Skolt Sami",
	"sme": "North Sami",
	"fi":  "Finnish",
	"nb":  "Norwegian Bokmål",
	"nn":  "Norwegian Nynorsk",
	"sv":  "Swedish",
	"en":  "English",
}

// Title returns the display title for a language code, or "" if the code
// is not in the table.
func Title(language string) string {
	return titles[language]
}
