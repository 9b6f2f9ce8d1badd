package model

import "strings"

// Country is a selectable country in either the destination pool or the
// origin pool.  The two pools live in separate tables and are never joined;
// the struct is shared because the shape is identical.
//
// Fields:
//
//	Code     – 2-3 letter uppercase code, primary key within its pool.
//	Name     – display name.
//	IsActive – inactive countries are hidden from selection lists but stay
//	           resolvable for rows that already reference them.
type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// NewCountry validates and normalizes a country record.  Codes are stored
// uppercase; deactivation happens through updates, so new countries start
// active.
func NewCountry(code, name string) (*Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if l := len(code); l < 2 || l > 3 {
		return nil, invalid("code", "must be 2-3 letters")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return nil, invalid("code", "must contain only letters")
		}
	}
	if name == "" {
		return nil, invalid("name", "name is required")
	}
	return &Country{Code: code, Name: name, IsActive: true}, nil
}
