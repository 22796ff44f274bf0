package constants

// User roles
const (
	RoleTourist = "tourist"
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
)

// Reservation list groups
const (
	GroupAll      = "all"
	GroupCurrent  = "current"
	GroupArchived = "archived"
)

// Context keys set by the auth middleware
const (
	ContextUsername  = "username"
	ContextUserRole  = "userRole"
	ContextRequestID = "requestId"
)

const (
	DateLayout = "2006-01-02"

	// DefaultCancelNoticeDays is the minimum number of days before start a tourist may cancel.
	DefaultCancelNoticeDays = 2

	MaxTextLength = 500
)
