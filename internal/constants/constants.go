package constants

// Session and context keys
const (
	SessionCookieName = "annotation_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRequest = "request_id"
	ContextKeyDetail  = "assignment_detail"
	RequestIDHeader   = "X-Request-ID"
)

// Request bodies
const (
	DefaultMaxBodyBytes = 1 << 20
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Identity
const (
	MinPasswordLength = 8
)

// Workflow statuses and audit actions
const (
	TaskStatusOpen         = "open"
	ActionSubmitAnnotation = "submit_annotation"
	DefaultSeverity        = "info"
)

// Candidate output generation
const (
	MaxGeneratedOutputs = 5
	DefaultOpenAIModel  = "gpt-4o"
)
