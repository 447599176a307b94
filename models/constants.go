package models

// Subscription tiers
const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanVIP     = "vip"
)

// Moderation labels, in rule evaluation order
const (
	LabelOffensiveLanguage = "offensive-language"
	LabelSpam              = "spam"
	LabelExternalContact   = "external-contact"
	LabelAllCaps           = "all-caps"
)

// Profile limits
const (
	MaxInterests = 25
	MaxPhotos    = 6
	MinPrefAge   = 18
)

// Text length bounds
const (
	MaxModerationTextLen = 4000
	MaxMessageTextLen    = 2000
	MaxCloseReasonLen    = 200
)
