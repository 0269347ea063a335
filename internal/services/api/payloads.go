package api

import (
	"time"

	"github.com/louisbranch/hextable/internal/table/domain"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// envelope is the uniform response wrapper. Message carries the localized
// outcome for mutations and errors; reads leave it empty.
type envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type seatPayload struct {
	Member   string `json:"member"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type tilePayload struct {
	ID        int    `json:"id"`
	Terrain   string `json:"terrain"`
	Token     int    `json:"token,omitempty"`
	HasMarker bool   `json:"has_marker,omitempty"`
}

type tablePayload struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	JoinCode  string        `json:"join_code,omitempty"`
	Phase     string        `json:"phase"`
	Layout    []tilePayload `json:"layout,omitempty"`
	TurnOrder []string      `json:"turn_order"`
	Version   int64         `json:"version"`
	Seats     []seatPayload `json:"seats"`
	MyRole    string        `json:"my_role,omitempty"`
	IsCurrent bool          `json:"is_current"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type tableSummaryPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phase     string `json:"phase"`
	MyRole    string `json:"my_role"`
	IsCurrent bool   `json:"is_current"`
	CreatedAt string `json:"created_at"`
}

type tableResponse struct {
	envelope
	Table tablePayload `json:"table"`
}

type tableListResponse struct {
	envelope
	Tables []tableSummaryPayload `json:"tables"`
}

type joinResponse struct {
	envelope
	TableID string `json:"table_id"`
	Role    string `json:"role"`
}

type approveResponse struct {
	envelope
	Role string `json:"role"`
}

type orderResponse struct {
	envelope
	TurnOrder []string `json:"turn_order"`
	Version   int64    `json:"version"`
}

type boardResponse struct {
	envelope
	Layout    []tilePayload `json:"layout"`
	TurnOrder []string      `json:"turn_order"`
	Version   int64         `json:"version"`
}

type phaseResponse struct {
	envelope
	Phase   string `json:"phase"`
	Version int64  `json:"version"`
}

type inviteResponse struct {
	envelope
	Grant     string `json:"grant"`
	ExpiresAt string `json:"expires_at"`
}

type createTableRequest struct {
	Name string `json:"name"`
}

type joinRequest struct {
	Code  string `json:"code"`
	Grant string `json:"grant"`
}

type memberRequest struct {
	Member string `json:"member"`
}

type orderRequest struct {
	Order []string `json:"order"`
}

type boardRequest struct {
	Preset string `json:"preset"`
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func layoutPayload(tiles []domain.Tile) []tilePayload {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]tilePayload, 0, len(tiles))
	for _, tile := range tiles {
		out = append(out, tilePayload{
			ID:        tile.ID,
			Terrain:   string(tile.Terrain),
			Token:     tile.Token,
			HasMarker: tile.HasMarker,
		})
	}
	return out
}

func viewPayload(view tableservice.TableView) tablePayload {
	payload := tablePayload{
		ID:        view.ID,
		Name:      view.Name,
		JoinCode:  view.JoinCode,
		Phase:     string(view.Phase),
		Layout:    layoutPayload(view.Layout),
		TurnOrder: view.TurnOrder,
		Version:   view.Version,
		MyRole:    string(view.MyRole),
		IsCurrent: view.IsCurrent,
		CreatedAt: formatTime(view.CreatedAt),
		UpdatedAt: formatTime(view.UpdatedAt),
	}
	payload.Seats = make([]seatPayload, 0, len(view.Seats))
	for _, seat := range view.Seats {
		payload.Seats = append(payload.Seats, seatPayload{
			Member:   seat.Member,
			Role:     string(seat.Role),
			JoinedAt: formatTime(seat.JoinedAt),
		})
	}
	return payload
}

func summaryPayloads(summaries []tableservice.TableSummary) []tableSummaryPayload {
	out := make([]tableSummaryPayload, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, tableSummaryPayload{
			ID:        summary.ID,
			Name:      summary.Name,
			Phase:     string(summary.Phase),
			MyRole:    string(summary.MyRole),
			IsCurrent: summary.IsCurrent,
			CreatedAt: formatTime(summary.CreatedAt),
		})
	}
	return out
}
