package core

import "strings"

// FilterByName returns the regions whose name contains term, ignoring case.
// Surrounding whitespace in term is ignored; an empty term matches everything.
// Relative order is preserved and the result never aliases the input.
func FilterByName(regions []Region, term string) []Region {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return cloneRegions(regions)
	}

	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r.Clone())
		}
	}
	return out
}
