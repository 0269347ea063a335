package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/hextable/internal/platform/id"
)

// Table represents a game table and its setup state.
type Table struct {
	ID        string
	Name      string
	JoinCode  string
	CreatedBy string
	Phase     Phase
	Layout    []Tile
	TurnOrder []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTableInput describes the metadata needed to open a table.
type CreateTableInput struct {
	Name      string
	CreatedBy string
}

// CreateTable builds a new table for its creator with a generated ID and
// timestamps. The join code is allocated separately because uniqueness is
// only known at insert time.
func CreateTable(input CreateTableInput, now func() time.Time, idGenerator func() (string, error)) (Table, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateTableInput(input)
	if err != nil {
		return Table{}, err
	}

	tableID, err := idGenerator()
	if err != nil {
		return Table{}, fmt.Errorf("generate table id: %w", err)
	}

	createdAt := now().UTC()
	return Table{
		ID:        tableID,
		Name:      normalized.Name,
		CreatedBy: normalized.CreatedBy,
		Phase:     PhaseNotStarted,
		TurnOrder: []string{normalized.CreatedBy},
		Version:   1,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateTableInput trims and validates table input metadata.
func NormalizeCreateTableInput(input CreateTableInput) (CreateTableInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateTableInput{}, ErrEmptyName
	}
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)
	if input.CreatedBy == "" {
		return CreateTableInput{}, ErrMemberRequired
	}
	return input, nil
}
