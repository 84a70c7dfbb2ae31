package constant

const (
	// Session defaults
	DefaultSessionTitle = "New Chat"

	// History entry tags
	HistoryTagEnhance = "enhance"
	HistoryTagSave    = "save"

	// Canned assistant replies
	NoResumeReply = "I'm ready to help you enhance your resume. Please provide your resume data or ask me any questions about resume writing!"
	EnhancedReply = "I've enhanced your resume based on your request. The changes include improvements to make it more professional and impactful."
	SavedReply    = "Resume saved."

	// Benefit codes attached to subscription plans
	BenefitDailyTokenLimit    = "DAILY_TOKEN_LIMIT"
	BenefitTemplateLimit      = "TEMPLATE_LIMIT"
	BenefitActiveSessionLimit = "ACTIVE_SESSION_LIMIT"

	// Plan slugs
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"

	// Listing limits
	MaxHistoryPageSize = 50

	// Aggregate budget for one AI call chain, retries and fallback included
	EnhanceTimeoutSeconds = 120
)
