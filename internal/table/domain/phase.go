package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
)

// TableOperation describes a category of table operation for phase checks.
type TableOperation int

const (
	// TableOpUnspecified represents an invalid operation.
	TableOpUnspecified TableOperation = iota
	// TableOpRead represents read-only operations.
	TableOpRead
	// TableOpReorder represents turn-order updates.
	TableOpReorder
	// TableOpGenerateBoard represents board layout generation.
	TableOpGenerateBoard
)

// isPhaseTransitionAllowed enforces valid table lifecycle transitions.
// Moving back to not_started models the admin reset and is allowed from
// every phase, including not_started itself.
func isPhaseTransitionAllowed(from, to Phase) bool {
	if to == PhaseNotStarted {
		return from == PhaseNotStarted || from == PhaseStarted || from == PhaseFinished
	}
	switch from {
	case PhaseNotStarted:
		return to == PhaseStarted
	case PhaseStarted:
		return to == PhaseFinished
	default:
		return false
	}
}

// IsPhaseTransitionAllowed reports whether a phase transition is permitted.
func IsPhaseTransitionAllowed(from, to Phase) bool {
	return isPhaseTransitionAllowed(from, to)
}

// ValidatePhaseTransition ensures a phase change is permitted.
func ValidatePhaseTransition(from, to Phase) error {
	if isPhaseTransitionAllowed(from, to) {
		return nil
	}
	return newPhaseTransitionError(from, to)
}

// ValidateTableOperation ensures the table phase allows the requested operation.
// Setup mutations are confined to not_started so a running game cannot have
// its order or board changed underneath the players.
func ValidateTableOperation(phase Phase, op TableOperation) error {
	switch op {
	case TableOpRead:
		return nil
	case TableOpReorder, TableOpGenerateBoard:
		if phase == PhaseNotStarted {
			return nil
		}
		return newPhaseOpError(phase, op)
	default:
		return newPhaseOpError(phase, op)
	}
}

// newPhaseTransitionError creates metadata for disallowed phase changes.
func newPhaseTransitionError(from, to Phase) *apperrors.Error {
	fromLabel := phaseLabel(from)
	toLabel := phaseLabel(to)
	return apperrors.WithMetadata(
		apperrors.CodeTableInvalidPhaseTransition,
		fmt.Sprintf("table phase %s cannot move to %s", fromLabel, toLabel),
		map[string]string{"From": fromLabel, "To": toLabel},
	)
}

// newPhaseOpError creates metadata for disallowed phase/operation combinations.
func newPhaseOpError(phase Phase, op TableOperation) *apperrors.Error {
	currentLabel := phaseLabel(phase)
	opLabel := tableOperationLabel(op)
	return apperrors.WithMetadata(
		apperrors.CodeTablePhaseDisallowsOp,
		fmt.Sprintf("table phase %s does not allow operation %s", currentLabel, opLabel),
		map[string]string{"Phase": currentLabel, "Operation": opLabel},
	)
}

// tableOperationLabel returns a stable label for a table operation.
func tableOperationLabel(op TableOperation) string {
	switch op {
	case TableOpRead:
		return "READ"
	case TableOpReorder:
		return "REORDER"
	case TableOpGenerateBoard:
		return "GENERATE_BOARD"
	default:
		return "UNSPECIFIED"
	}
}
