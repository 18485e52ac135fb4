package core

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Region is a named group of countries with an active flag.
type Region struct {
	ID        string   `json:"region_id" yaml:"region_id"`
	Name      string   `json:"name" yaml:"name"`
	Countries []string `json:"countries" yaml:"countries"`
	IsActive  bool     `json:"isActive" yaml:"isActive"`
}

// MarshalJSON encodes a nil country list as an empty array.
func (r Region) MarshalJSON() ([]byte, error) {
	type wire Region
	w := wire(r)
	if w.Countries == nil {
		w.Countries = []string{}
	}
	return json.Marshal(w)
}

// NewRegionID returns a fresh opaque region identifier.
func NewRegionID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of r. A nil country list stays nil.
func (r Region) Clone() Region {
	c := r
	if r.Countries != nil {
		c.Countries = make([]string, len(r.Countries))
		copy(c.Countries, r.Countries)
	}
	return c
}

// Status returns the human-readable activity status.
func (r Region) Status() string {
	if r.IsActive {
		return "Active"
	}
	return "Not Active"
}

// CountryList returns the countries joined for display.
func (r Region) CountryList() string {
	return strings.Join(r.Countries, ", ")
}

// cloneRegions deep-copies a slice of regions.
func cloneRegions(regions []Region) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = r.Clone()
	}
	return out
}
