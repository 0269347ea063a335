package domain

// MoveDirection identifies a single-step turn-order move.
type MoveDirection int

const (
	// MoveUp swaps a member with the one before it.
	MoveUp MoveDirection = iota + 1
	// MoveDown swaps a member with the one after it.
	MoveDown
)

// NormalizeTurnOrder repairs a proposed turn order against the eligible
// members. Entries outside the eligible set are dropped while the proposed
// relative order is kept; eligible members missing from the proposal are
// appended in their stored relative order, falling back to the eligible
// listing for members the stored order has never seen. Duplicate proposed
// entries survive normalization so validation can reject them.
func NormalizeTurnOrder(proposed, stored, eligible []string) []string {
	eligibleSet := make(map[string]bool, len(eligible))
	for _, member := range eligible {
		eligibleSet[member] = true
	}

	normalized := make([]string, 0, len(eligible))
	seen := make(map[string]bool, len(eligible))
	for _, member := range proposed {
		if eligibleSet[member] {
			normalized = append(normalized, member)
			seen[member] = true
		}
	}
	for _, member := range stored {
		if eligibleSet[member] && !seen[member] {
			normalized = append(normalized, member)
			seen[member] = true
		}
	}
	for _, member := range eligible {
		if !seen[member] {
			normalized = append(normalized, member)
			seen[member] = true
		}
	}
	return normalized
}

// ValidateTurnOrder ensures an order lists every eligible member exactly once.
func ValidateTurnOrder(order, eligible []string) error {
	if len(order) != len(eligible) {
		return ErrInvalidTurnOrder
	}

	remaining := make(map[string]int, len(eligible))
	for _, member := range eligible {
		remaining[member]++
	}
	for _, member := range order {
		count, ok := remaining[member]
		if !ok || count == 0 {
			return ErrInvalidTurnOrder
		}
		remaining[member] = count - 1
	}
	return nil
}

// MoveMember returns a copy of the order with the member shifted one step in
// the given direction. Moves past either end, unknown members, and unknown
// directions leave the order unchanged rather than failing.
func MoveMember(order []string, member string, direction MoveDirection) []string {
	moved := make([]string, len(order))
	copy(moved, order)

	index := -1
	for i, candidate := range moved {
		if candidate == member {
			index = i
			break
		}
	}
	if index == -1 {
		return moved
	}

	switch direction {
	case MoveUp:
		if index == 0 {
			return moved
		}
		moved[index-1], moved[index] = moved[index], moved[index-1]
	case MoveDown:
		if index == len(moved)-1 {
			return moved
		}
		moved[index], moved[index+1] = moved[index+1], moved[index]
	}
	return moved
}
