package constants

// Session
const (
	SessionCookieName = "staffing_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"
	ContextKeyPosting = "posting"
)

// Auth
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
