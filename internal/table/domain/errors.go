package domain

import apperrors "github.com/louisbranch/hextable/internal/platform/errors"

var (
	// ErrEmptyName indicates a missing table name.
	ErrEmptyName = apperrors.New(apperrors.CodeTableNameEmpty, "table name is required")
	// ErrMemberRequired indicates a missing member identity.
	ErrMemberRequired = apperrors.New(apperrors.CodeUnauthenticated, "member identity is required")
	// ErrInvalidJoinCode indicates a join code that is not exactly six ASCII digits.
	ErrInvalidJoinCode = apperrors.New(apperrors.CodeJoinCodeInvalid, "join code must be exactly six digits")
	// ErrJoinCodeExhausted indicates the join-code space yielded no unique code.
	ErrJoinCodeExhausted = apperrors.New(apperrors.CodeJoinCodeExhausted, "join code allocation exhausted all attempts")
	// ErrNotAuthorized indicates the caller lacks the role an operation requires.
	ErrNotAuthorized = apperrors.New(apperrors.CodeNotAuthorized, "caller is not allowed to perform this operation")
	// ErrAdminSeatProtected indicates an attempt to remove or demote the admin seat.
	ErrAdminSeatProtected = apperrors.New(apperrors.CodeAdminSeatProtected, "the admin seat cannot be removed")
	// ErrAdminCannotLeave indicates the admin tried to leave instead of deleting the table.
	ErrAdminCannotLeave = apperrors.New(apperrors.CodeAdminCannotLeave, "the admin cannot leave the table")
	// ErrNoPendingRequest indicates a reject aimed at a seat that is not waiting.
	ErrNoPendingRequest = apperrors.New(apperrors.CodeNotFound, "member has no pending join request")

	// ErrJoinGrantStale indicates an invite grant whose table no longer owns
	// the embedded join code.
	ErrJoinGrantStale = apperrors.New(apperrors.CodeInviteJoinGrantMismatch, "join grant no longer matches its table")
	// ErrInvalidTurnOrder indicates a proposed order that does not match the eligible seats.
	ErrInvalidTurnOrder = apperrors.New(apperrors.CodeTurnOrderInvalid, "turn order must match the eligible members exactly")
	// ErrInvalidPhaseTransition indicates a disallowed table phase change.
	ErrInvalidPhaseTransition = apperrors.New(apperrors.CodeTableInvalidPhaseTransition, "table phase transition is not allowed")
	// ErrPhaseDisallowsOperation indicates a phase that disallows the requested operation.
	ErrPhaseDisallowsOperation = apperrors.New(apperrors.CodeTablePhaseDisallowsOp, "table phase does not allow operation")
)
