package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users can quote the code shown next to an inline error.
//
// # Region Errors (REG001-REG099)
//
//	REG001 - Not found: The region no longer exists
//	         Action: Reload the list; it may have been deleted elsewhere
//	         Match: ErrNotFound
//
//	REG002 - Duplicate id: A region with this id already exists
//	         Action: Retry the create; a new id will be generated
//	         Match: ErrDuplicateID
//
//	REG003 - Missing id: The region has no id
//	         Action: Supply an id or let the console generate one
//	         Match: ErrMissingID
//
// # Bulk Errors (BLK001-BLK099)
//
//	BLK001 - Partial bulk delete: Some selected regions could not be deleted
//	         Action: Reload the list and review the remaining rows
//	         Match: *BulkDeleteError
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Match: context.Canceled, "context canceled"
//
//	REQ002 - Request timeout
//	         Match: context.DeadlineExceeded, "deadline exceeded"
//
//	REQ003 - Invalid request: The submitted data could not be read
//	         Match: "invalid request"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//	          Match: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check application logs, keyed by request
// id, for the original technical error.
//
// # Matching
//
// Typed and sentinel errors are matched first with errors.As/errors.Is, so
// wrapping with %w keeps the code stable. Remaining errors are matched by
// case-insensitive substring; the first pattern wins.

import (
	"context"
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "The region no longer exists",
		Action:  "Reload the list; it may have been deleted elsewhere",
		Code:    "REG001",
	}
	msgDuplicateID = UserMessage{
		Message: "A region with this id already exists",
		Action:  "Retry the create; a new id will be generated",
		Code:    "REG002",
	}
	msgMissingID = UserMessage{
		Message: "The region has no id",
		Action:  "Supply an id or let the console generate one",
		Code:    "REG003",
	}
	msgBulkPartial = UserMessage{
		Message: "Some selected regions could not be deleted",
		Action:  "Reload the list and review the remaining rows",
		Code:    "BLK001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Please try again",
		Code:    "REQ002",
	}
)

// sentinelMessages maps errors matched with errors.Is. Order matters.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrNotFound, msgNotFound},
	{ErrDuplicateID, msgDuplicateID},
	{ErrMissingID, msgMissingID},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catch errors that lost their identity, such as ones
// rebuilt from strings. The first match wins.
var errorPatterns = []errorPattern{
	{pattern: "region not found", msg: msgNotFound},
	{pattern: "already exists", msg: msgDuplicateID},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "deadline exceeded", msg: msgTimeout},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The submitted data could not be read",
			Action:  "Check the form fields and try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := svc.Get(ctx, "missing")
//	msg := MapError(err)
//	// msg.Code == "REG001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// Checked before sentinels: a bulk error unwraps to its causes.
	var bulkErr *BulkDeleteError
	if errors.As(err, &bulkErr) {
		return msgBulkPartial
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
