package model

import (
	"strings"

	"github.com/google/uuid"
)

// VisaType is a visa category offered by a destination country, e.g. an F1
// student visa for the US.  CountryCode may be nil for visa types that are
// not tied to a single destination.  Articles and checklists reference visa
// types by Code, without foreign key enforcement, so rows that go inactive
// must remain resolvable by code.
type VisaType struct {
	ID          string  `json:"id"`
	CountryCode *string `json:"country_code"`
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

// NewVisaType validates input and assigns a fresh UUID.  Codes are
// normalized to uppercase since they double as lookup keys on articles.
func NewVisaType(countryCode, code, title, description string) (*VisaType, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	title = strings.TrimSpace(title)
	if code == "" {
		return nil, invalid("code", "code is required")
	}
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	v := &VisaType{
		ID:       uuid.NewString(),
		Code:     code,
		Title:    title,
		IsActive: true,
	}
	if cc := strings.ToUpper(strings.TrimSpace(countryCode)); cc != "" {
		v.CountryCode = &cc
	}
	if d := strings.TrimSpace(description); d != "" {
		v.Description = &d
	}
	return v, nil
}
