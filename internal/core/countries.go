package core

import "strings"

// Country lists travel through a single text field as "A, B, C".
// A backslash escapes a literal comma or backslash inside a name, so
// "Bonaire\, Sint Eustatius and Saba" is one element.
const (
	countryDelimiter = ','
	countryEscape    = '\\'
)

// EncodeCountries joins names into the editable text form.
func EncodeCountries(countries []string) string {
	escaped := make([]string, len(countries))
	for i, c := range countries {
		var b strings.Builder
		for _, r := range c {
			if r == countryDelimiter || r == countryEscape {
				b.WriteRune(countryEscape)
			}
			b.WriteRune(r)
		}
		escaped[i] = b.String()
	}
	return strings.Join(escaped, ", ")
}

// DecodeCountries splits the text form back into names.
// Elements are trimmed and empty elements dropped. A trailing lone
// backslash is kept literally. The result is never nil.
func DecodeCountries(text string) []string {
	countries := make([]string, 0)
	var cur strings.Builder

	flush := func() {
		if name := strings.TrimSpace(cur.String()); name != "" {
			countries = append(countries, name)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == countryEscape && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
		case r == countryDelimiter:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return countries
}
