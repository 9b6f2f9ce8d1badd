package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Checklist is an ordered set of steps for one (country, visa type) pair.
// SortOrder is scoped per visa type and assigned by the ordering service as
// count+1 on creation; it is a comparison key, not a dense index.
type Checklist struct {
	ID               string           `json:"id"`
	CountryCode      string           `json:"country_code"`
	VisaType         string           `json:"visa_type"`
	Title            string           `json:"title"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	SortOrder        int              `json:"sort_order"`
}

// NewChecklist validates a checklist.  SortOrder is left at zero; the
// ordering service assigns the real value when the row is created.
func NewChecklist(countryCode, visaType, title, tier string) (*Checklist, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	visaType = strings.ToUpper(strings.TrimSpace(visaType))
	title = strings.TrimSpace(title)
	if countryCode == "" {
		return nil, invalid("country_code", "country is required")
	}
	if visaType == "" {
		return nil, invalid("visa_type", "visa type is required")
	}
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	st, err := ParseSubscriptionTier(tier)
	if err != nil {
		return nil, err
	}
	return &Checklist{
		ID:               uuid.NewString(),
		CountryCode:      countryCode,
		VisaType:         visaType,
		Title:            title,
		SubscriptionTier: st,
	}, nil
}

// ChecklistItem is a single step inside a checklist.  ChecklistID is nilable
// because item rows survive a parent delete until the application-level
// cascade removes them.  Metadata is a free-form JSON object (select options,
// accepted file types and so on) validated for well-formedness only.
type ChecklistItem struct {
	ID          string         `json:"id"`
	ChecklistID *string        `json:"checklist_id"`
	Label       string         `json:"label"`
	FieldType   FieldType      `json:"field_type"`
	SortOrder   int            `json:"sort_order"`
	Metadata    map[string]any `json:"metadata"`
}

// NewChecklistItem validates an item.  rawMetadata must be a JSON object; an
// empty string is treated as {}.  SortOrder is assigned by the ordering
// service on append.
func NewChecklistItem(checklistID, label, fieldType, rawMetadata string) (*ChecklistItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, invalid("label", "label is required")
	}
	ft, err := ParseFieldType(fieldType)
	if err != nil {
		return nil, err
	}
	meta := map[string]any{}
	if s := strings.TrimSpace(rawMetadata); s != "" {
		if err := json.Unmarshal([]byte(s), &meta); err != nil {
			return nil, invalid("metadata", "must be a valid JSON object")
		}
	}
	item := &ChecklistItem{
		ID:        uuid.NewString(),
		Label:     label,
		FieldType: ft,
		Metadata:  meta,
	}
	if checklistID != "" {
		item.ChecklistID = &checklistID
	}
	return item, nil
}
