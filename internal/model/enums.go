package model

// Closed string enumerations used across content entities.  Each enum has a
// Parse function that rejects unknown values up front so that free-form
// strings never reach the database.

// AccessTier gates article visibility by plan level.
type AccessTier string

const (
	TierFree     AccessTier = "free"
	TierStandard AccessTier = "standard"
	TierPremium  AccessTier = "premium"
)

// ParseAccessTier validates a raw tier string.  An empty string defaults to
// the free tier so that older rows with a NULL tier stay readable.
func ParseAccessTier(raw string) (AccessTier, error) {
	switch AccessTier(raw) {
	case TierFree, TierStandard, TierPremium:
		return AccessTier(raw), nil
	case "":
		return TierFree, nil
	}
	return "", invalid("access_tier", "must be one of free, standard, premium")
}

// SubscriptionTier is the checklist gating vocabulary.  It is deliberately
// wider than AccessTier; the two sets are independent and never merged.
type SubscriptionTier string

const (
	SubTierFree     SubscriptionTier = "free"
	SubTierBasic    SubscriptionTier = "basic"
	SubTierStandard SubscriptionTier = "standard"
	SubTierPremium  SubscriptionTier = "premium"
)

func ParseSubscriptionTier(raw string) (SubscriptionTier, error) {
	switch SubscriptionTier(raw) {
	case SubTierFree, SubTierBasic, SubTierStandard, SubTierPremium:
		return SubscriptionTier(raw), nil
	case "":
		return SubTierFree, nil
	}
	return "", invalid("subscription_tier", "must be one of free, basic, standard, premium")
}

// FieldType describes how a checklist item is rendered and answered.
type FieldType string

const (
	FieldCheckbox FieldType = "checkbox"
	FieldText     FieldType = "text"
	FieldFile     FieldType = "file"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
)

func ParseFieldType(raw string) (FieldType, error) {
	switch FieldType(raw) {
	case FieldCheckbox, FieldText, FieldFile, FieldDate, FieldSelect:
		return FieldType(raw), nil
	case "":
		return FieldCheckbox, nil
	}
	return "", invalid("field_type", "must be one of checkbox, text, file, date, select")
}
