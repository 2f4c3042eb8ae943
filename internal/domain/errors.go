package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Data file errors
	ErrMsgDataError   = "data error"
	ErrMsgNoWeight    = "total weight is zero"
	ErrMsgCardMissing = "card not found"

	// External service errors
	ErrMsgExternalService = "external service error"

	// Guild errors
	ErrMsgPermission     = "missing permission"
	ErrMsgNotInGuild     = "not in a guild"
	ErrMsgRoleNotFound   = "role not found"
	ErrMsgMemberNotFound = "member not found"

	// Configuration errors
	ErrMsgConfiguration = "configuration error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrData is returned when a data file is missing or is not valid JSON.
	ErrData = errors.New(ErrMsgDataError)

	// ErrNoWeight is returned when probabilities are requested over a zero total weight.
	ErrNoWeight = errors.New(ErrMsgNoWeight)

	// ErrCardNotFound is the lookup miss of a card query.
	ErrCardNotFound = errors.New(ErrMsgCardMissing)

	// ErrExternalService covers non-success status, malformed body, timeout and transport failures.
	ErrExternalService = errors.New(ErrMsgExternalService)

	ErrPermission     = errors.New(ErrMsgPermission)
	ErrNotInGuild     = errors.New(ErrMsgNotInGuild)
	ErrRoleNotFound   = errors.New(ErrMsgRoleNotFound)
	ErrMemberNotFound = errors.New(ErrMsgMemberNotFound)

	// ErrConfiguration is returned at the point of use when a credential or role id is unset.
	ErrConfiguration = errors.New(ErrMsgConfiguration)
)
