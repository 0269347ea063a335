package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/hextable/internal/platform/id"
)

// Seat represents one member's place at a table.
type Seat struct {
	ID        string
	TableID   string
	Member    string
	Role      Role
	IsCurrent bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSeat builds a seat row for a member joining a table.
func NewSeat(tableID, member string, role Role, now func() time.Time, idGenerator func() (string, error)) (Seat, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return Seat{}, fmt.Errorf("table id is required")
	}
	member = strings.TrimSpace(member)
	if member == "" {
		return Seat{}, ErrMemberRequired
	}
	if role != RoleAdmin && role != RoleWaiting && role != RoleConfirmed {
		return Seat{}, fmt.Errorf("seat role %q is not valid", role)
	}

	seatID, err := idGenerator()
	if err != nil {
		return Seat{}, fmt.Errorf("generate seat id: %w", err)
	}

	createdAt := now().UTC()
	return Seat{
		ID:        seatID,
		TableID:   tableID,
		Member:    member,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// EligibleMembers filters seats to the members that take part in the turn
// order, preserving the given seat order.
func EligibleMembers(seats []Seat) []string {
	eligible := make([]string, 0, len(seats))
	for _, seat := range seats {
		if seat.Role.IsEligible() {
			eligible = append(eligible, seat.Member)
		}
	}
	return eligible
}
