// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Table errors
	CodeTableNameEmpty              Code = "TABLE_NAME_EMPTY"
	CodeTableInvalidPhaseTransition Code = "TABLE_INVALID_PHASE_TRANSITION"
	CodeTablePhaseDisallowsOp       Code = "TABLE_PHASE_DISALLOWS_OPERATION"
	CodeTableVersionConflict        Code = "TABLE_VERSION_CONFLICT"

	// Join code errors
	CodeJoinCodeInvalid   Code = "JOIN_CODE_INVALID"
	CodeJoinCodeTaken     Code = "JOIN_CODE_TAKEN"
	CodeJoinCodeExhausted Code = "JOIN_CODE_EXHAUSTED"

	// Seat errors
	CodeNotAuthorized      Code = "NOT_AUTHORIZED"
	CodeSeatExists         Code = "SEAT_EXISTS"
	CodeAdminSeatProtected Code = "ADMIN_SEAT_PROTECTED"
	CodeAdminCannotLeave   Code = "ADMIN_CANNOT_LEAVE"

	// Turn order errors
	CodeTurnOrderInvalid Code = "TURN_ORDER_INVALID"

	// Invite errors
	CodeInviteJoinGrantInvalid  Code = "INVITE_JOIN_GRANT_INVALID"
	CodeInviteJoinGrantExpired  Code = "INVITE_JOIN_GRANT_EXPIRED"
	CodeInviteJoinGrantMismatch Code = "INVITE_JOIN_GRANT_MISMATCH"

	// Request errors
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Identity errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeTableNameEmpty,
		CodeJoinCodeInvalid,
		CodeRequestInvalid,
		CodeInviteJoinGrantInvalid,
		CodeInviteJoinGrantMismatch:
		return http.StatusBadRequest

	// Unauthorized - missing acting identity
	case CodeUnauthenticated:
		return http.StatusUnauthorized

	// Forbidden - caller lacks the required role or the state protects the target
	case CodeNotAuthorized,
		CodeAdminSeatProtected,
		CodeAdminCannotLeave:
		return http.StatusForbidden

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - state doesn't allow the operation right now
	case CodeTableInvalidPhaseTransition,
		CodeTablePhaseDisallowsOp,
		CodeTableVersionConflict,
		CodeJoinCodeTaken,
		CodeSeatExists,
		CodeInviteJoinGrantExpired:
		return http.StatusConflict

	// UnprocessableEntity - payload is well-formed but semantically wrong
	case CodeTurnOrderInvalid:
		return http.StatusUnprocessableEntity

	// ServiceUnavailable - exhausted name space, not retried internally
	case CodeJoinCodeExhausted:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
