package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
	"github.com/louisbranch/hextable/internal/platform/requestctx"
	"github.com/louisbranch/hextable/internal/services/api/httpx"
	"github.com/louisbranch/hextable/internal/table/domain"
	"github.com/louisbranch/hextable/internal/table/invite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// errGrantsDisabled reports invite operations on a deployment that has no
// join grant keys configured.
var errGrantsDisabled = apperrors.New(apperrors.CodeInviteJoinGrantInvalid, "join grants are not enabled")

type handlers struct {
	tables  TableAPI
	granter granter
}

// granter is the slice of the invite granter consumed by the handlers.
type granter interface {
	Mint(tableID, joinCode string) (string, time.Time, error)
	Validate(grant string) (invite.Claims, error)
}

func (h handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, envelope{OK: true})
}

func (h handlers) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.CreateTable(r.Context(), req.Name, memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tableResponse{
		envelope: envelope{OK: result.OK, Message: result.Message},
		Table:    viewPayload(result.Table),
	})
}

func (h handlers) handleListTables(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.tables.ListTables(r.Context(), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tableListResponse{
		envelope: envelope{OK: true},
		Tables:   summaryPayloads(summaries),
	})
}

func (h handlers) handleGetTable(w http.ResponseWriter, r *http.Request) {
	view, err := h.tables.GetTable(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tableResponse{
		envelope: envelope{OK: true},
		Table:    viewPayload(view),
	})
}

func (h handlers) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.tables.DeleteTable(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, envelope{OK: result.OK, Message: result.Message})
}

// handleJoin admits a member by raw join code or by signed invite grant. A
// grant resolves to the code it was minted for and is refused when the code
// has since moved to another table.
func (h handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var result tableservice.RequestJoinResult
	var err error
	if strings.TrimSpace(req.Grant) != "" {
		if h.granter == nil {
			writeError(w, r, errGrantsDisabled)
			return
		}
		var claims invite.Claims
		claims, err = h.granter.Validate(req.Grant)
		if err != nil {
			writeError(w, r, err)
			return
		}
		result, err = h.tables.RedeemJoin(r.Context(), claims.JoinCode, claims.TableID, memberFrom(r))
	} else {
		result, err = h.tables.RequestJoin(r.Context(), req.Code, memberFrom(r))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, joinResponse{
		envelope: envelope{OK: result.OK, Message: result.Message},
		TableID:  result.TableID,
		Role:     string(result.Role),
	})
}

func (h handlers) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.Approve(r.Context(), r.PathValue("tableID"), req.Member, memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, approveResponse{
		envelope: envelope{OK: result.OK, Message: result.Message},
		Role:     string(result.Role),
	})
}

func (h handlers) handleReject(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.Reject(r.Context(), r.PathValue("tableID"), req.Member, memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, envelope{OK: result.OK, Message: result.Message})
}

func (h handlers) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.Remove(r.Context(), r.PathValue("tableID"), req.Member, memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, envelope{OK: result.OK, Message: result.Message})
}

func (h handlers) handleLeave(w http.ResponseWriter, r *http.Request) {
	result, err := h.tables.Leave(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, envelope{OK: result.OK, Message: result.Message})
}

func (h handlers) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.tables.SetCurrent(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, envelope{OK: result.OK, Message: result.Message})
}

func (h handlers) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.Reorder(r.Context(), r.PathValue("tableID"), memberFrom(r), req.Order)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, orderResponse{
		envelope:  envelope{OK: result.OK, Message: result.Message},
		TurnOrder: result.TurnOrder,
		Version:   result.Version,
	})
}

func (h handlers) handleGenerateBoard(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.tables.GenerateBoard(r.Context(), r.PathValue("tableID"), memberFrom(r), req.Preset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, boardResponse{
		envelope:  envelope{OK: result.OK, Message: result.Message},
		Layout:    layoutPayload(result.Layout),
		TurnOrder: result.TurnOrder,
		Version:   result.Version,
	})
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, h.tables.Start)
}

func (h handlers) handleFinish(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, h.tables.Finish)
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, h.tables.Reset)
}

func (h handlers) handlePhase(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, tableID, actor string) (tableservice.PhaseResult, error)) {
	result, err := transition(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, phaseResponse{
		envelope: envelope{OK: result.OK, Message: result.Message},
		Phase:    string(result.Phase),
		Version:  result.Version,
	})
}

// handleMintInvite signs a join grant for the table's current code. Only the
// admin can mint; the code comes from the admin's own view so the handler
// never reads it from the request.
func (h handlers) handleMintInvite(w http.ResponseWriter, r *http.Request) {
	if h.granter == nil {
		writeError(w, r, errGrantsDisabled)
		return
	}
	view, err := h.tables.GetTable(r.Context(), r.PathValue("tableID"), memberFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view.MyRole != domain.RoleAdmin {
		writeError(w, r, domain.ErrNotAuthorized)
		return
	}
	grant, expires, err := h.granter.Mint(view.ID, view.JoinCode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, inviteResponse{
		envelope:  envelope{OK: true},
		Grant:     grant,
		ExpiresAt: formatTime(expires),
	})
}

// memberFrom returns the acting member stored by the identity middleware.
func memberFrom(r *http.Request) string {
	return requestctx.MemberFromContext(httpx.RequestContext(r))
}

// decodeJSON decodes an optional JSON body. An absent body leaves dst at its
// zero value so field-level validation stays with the service.
func decodeJSON(r *http.Request, dst any) error {
	if r == nil || r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(apperrors.CodeRequestInvalid, "decode request body", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	_ = httpx.WriteJSON(w, http.StatusOK, payload)
}

// writeError renders the failed envelope with the localized message and the
// status derived from the error code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := requestctx.LocaleFromContext(httpx.RequestContext(r))
	status, message := apperrors.HandleError(err, locale)
	_ = httpx.WriteJSON(w, status, envelope{OK: false, Message: message})
}
