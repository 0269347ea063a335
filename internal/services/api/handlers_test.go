package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
	"github.com/louisbranch/hextable/internal/platform/requestctx"
	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/table/domain"
	"github.com/louisbranch/hextable/internal/table/invite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

func TestCreateTableRendersCallerView(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	stub := &tableServiceStub{createResult: tableservice.CreateTableResult{
		Result: tableservice.Result{OK: true, Message: "table created"},
		Table: tableservice.TableView{
			ID:        "tbl-1",
			Name:      "Friday Night",
			JoinCode:  "123456",
			Phase:     domain.PhaseNotStarted,
			TurnOrder: []string{"mem-1"},
			Version:   1,
			Seats: []tableservice.SeatView{
				{Member: "mem-1", Role: domain.RoleAdmin, JoinedAt: created},
			},
			MyRole:    domain.RoleAdmin,
			IsCurrent: true,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables", map[string]string{"name": "Friday Night"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp tableResponse
	decodeBody(t, rr, &resp)
	if !resp.OK || resp.Message != "table created" {
		t.Fatalf("envelope = %+v, want ok with creation message", resp.envelope)
	}
	if resp.Table.ID != "tbl-1" || resp.Table.JoinCode != "123456" {
		t.Fatalf("table = %+v, want tbl-1 with join code", resp.Table)
	}
	if resp.Table.CreatedAt != "2025-03-01T10:00:00Z" {
		t.Fatalf("created_at = %q, want RFC3339 UTC", resp.Table.CreatedAt)
	}
	if len(resp.Table.Seats) != 1 || resp.Table.Seats[0].Role != "admin" {
		t.Fatalf("seats = %+v, want single admin seat", resp.Table.Seats)
	}
	if stub.lastName != "Friday Night" || stub.lastMember != "mem-1" {
		t.Fatalf("create args = (%q, %q), want (Friday Night, mem-1)", stub.lastName, stub.lastMember)
	}
}

func TestCreateTableRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{}
	mux := newTestMux(t, stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/tables", strings.NewReader("{"))
	req = req.WithContext(requestctx.WithMember(req.Context(), "mem-1"))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.OK {
		t.Fatalf("envelope ok = true, want false")
	}
	if resp.Message != "The request could not be read" {
		t.Fatalf("message = %q, want decode failure message", resp.Message)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service calls = %v, want none", stub.calls)
	}
}

func TestCreateTableLeavesValidationToService(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{createErr: domain.ErrEmptyName}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.Message != "Table name cannot be empty" {
		t.Fatalf("message = %q, want empty name message", resp.Message)
	}
	if stub.lastName != "" {
		t.Fatalf("create name = %q, want empty for absent body", stub.lastName)
	}
}

func TestListTablesRendersSummaries(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	stub := &tableServiceStub{summaries: []tableservice.TableSummary{
		{ID: "tbl-1", Name: "Friday Night", Phase: domain.PhaseStarted, MyRole: domain.RoleAdmin, IsCurrent: true, CreatedAt: created},
		{ID: "tbl-2", Name: "Casual", Phase: domain.PhaseNotStarted, MyRole: domain.RoleWaiting},
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodGet, "/api/tables", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp tableListResponse
	decodeBody(t, rr, &resp)
	if !resp.OK {
		t.Fatalf("envelope ok = false, want true")
	}
	if len(resp.Tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(resp.Tables))
	}
	if resp.Tables[0].MyRole != "admin" || !resp.Tables[0].IsCurrent {
		t.Fatalf("tables[0] = %+v, want current admin row", resp.Tables[0])
	}
	if resp.Tables[1].Phase != "not_started" || resp.Tables[1].MyRole != "waiting" {
		t.Fatalf("tables[1] = %+v, want waiting row", resp.Tables[1])
	}
	if stub.lastMember != "mem-1" {
		t.Fatalf("list member = %q, want mem-1", stub.lastMember)
	}
}

func TestListTablesRendersEmptyArray(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, &tableServiceStub{}, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodGet, "/api/tables", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"tables":[]`)) {
		t.Fatalf("body = %s, want empty tables array", rr.Body.Bytes())
	}
}

func TestGetTableResolvesPathAndCaller(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{view: tableservice.TableView{
		ID:        "tbl-9",
		Name:      "Quiet Table",
		Phase:     domain.PhaseNotStarted,
		TurnOrder: []string{"mem-9"},
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodGet, "/api/tables/tbl-9", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if stub.lastTableID != "tbl-9" || stub.lastMember != "mem-1" {
		t.Fatalf("get args = (%q, %q), want (tbl-9, mem-1)", stub.lastTableID, stub.lastMember)
	}
	var resp tableResponse
	decodeBody(t, rr, &resp)
	if !resp.OK || resp.Table.ID != "tbl-9" {
		t.Fatalf("response = %+v, want ok view of tbl-9", resp)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("join_code")) {
		t.Fatalf("body = %s, want join code withheld from stranger view", rr.Body.Bytes())
	}
}

func TestDeleteTableRendersOutcome(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{result: tableservice.Result{OK: true, Message: "table deleted"}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodDelete, "/api/tables/tbl-1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if !resp.OK || resp.Message != "table deleted" {
		t.Fatalf("envelope = %+v, want deletion outcome", resp)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "delete" {
		t.Fatalf("calls = %v, want [delete]", stub.calls)
	}
	if stub.lastTableID != "tbl-1" || stub.lastMember != "mem-1" {
		t.Fatalf("delete args = (%q, %q), want (tbl-1, mem-1)", stub.lastTableID, stub.lastMember)
	}
}

func TestJoinByCode(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{joinResult: tableservice.RequestJoinResult{
		Result:  tableservice.Result{OK: true, Message: "join requested"},
		TableID: "tbl-1",
		Role:    domain.RoleWaiting,
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/join", map[string]string{"code": "123456"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "request-join" {
		t.Fatalf("calls = %v, want [request-join]", stub.calls)
	}
	if stub.lastJoinCode != "123456" || stub.lastMember != "mem-1" {
		t.Fatalf("join args = (%q, %q), want (123456, mem-1)", stub.lastJoinCode, stub.lastMember)
	}
	var resp joinResponse
	decodeBody(t, rr, &resp)
	if resp.TableID != "tbl-1" || resp.Role != "waiting" {
		t.Fatalf("join response = %+v, want waiting seat at tbl-1", resp)
	}
}

func TestJoinByGrantRedeemsMintedCode(t *testing.T) {
	t.Parallel()

	g := &granterStub{claims: invite.Claims{TableID: "tbl-1", JoinCode: "654321"}}
	stub := &tableServiceStub{joinResult: tableservice.RequestJoinResult{
		Result:  tableservice.Result{OK: true, Message: "join requested"},
		TableID: "tbl-1",
		Role:    domain.RoleWaiting,
	}}
	mux := newTestMux(t, stub, g)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/join", map[string]string{"grant": "signed-grant"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if g.lastGrant != "signed-grant" {
		t.Fatalf("validated grant = %q, want signed-grant", g.lastGrant)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "redeem-join" {
		t.Fatalf("calls = %v, want [redeem-join]", stub.calls)
	}
	if stub.lastJoinCode != "654321" || stub.lastTableID != "tbl-1" || stub.lastMember != "mem-1" {
		t.Fatalf("redeem args = (%q, %q, %q), want claims code and table with mem-1", stub.lastJoinCode, stub.lastTableID, stub.lastMember)
	}
}

func TestJoinByGrantWhenGrantsDisabled(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/join", map[string]string{"grant": "signed-grant"}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.Message != "This invite is not valid" {
		t.Fatalf("message = %q, want invalid invite message", resp.Message)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service calls = %v, want none", stub.calls)
	}
}

func TestJoinByGrantRejectsInvalidGrant(t *testing.T) {
	t.Parallel()

	g := &granterStub{validateErr: apperrors.New(apperrors.CodeInviteJoinGrantExpired, "join grant expired")}
	stub := &tableServiceStub{}
	mux := newTestMux(t, stub, g)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/join", map[string]string{"grant": "stale"}))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.Message != "This invite has expired" {
		t.Fatalf("message = %q, want expired invite message", resp.Message)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service calls = %v, want none", stub.calls)
	}
}

func TestJoinByGrantRejectsReassignedCode(t *testing.T) {
	t.Parallel()

	g := &granterStub{claims: invite.Claims{TableID: "tbl-1", JoinCode: "654321"}}
	stub := &tableServiceStub{joinErr: domain.ErrJoinGrantStale}
	mux := newTestMux(t, stub, g)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/join", map[string]string{"grant": "signed-grant"}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.Message != "This invite does not match the table" {
		t.Fatalf("message = %q, want mismatch message", resp.Message)
	}
}

func TestApproveReportsGrantedRole(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{approveResult: tableservice.ApproveResult{
		Result: tableservice.Result{OK: true, Message: "member approved"},
		Role:   domain.RoleConfirmed,
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/approve", map[string]string{"member": "mem-2"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if stub.lastTableID != "tbl-1" || stub.lastTarget != "mem-2" || stub.lastMember != "mem-1" {
		t.Fatalf("approve args = (%q, %q, %q), want (tbl-1, mem-2, mem-1)", stub.lastTableID, stub.lastTarget, stub.lastMember)
	}
	var resp approveResponse
	decodeBody(t, rr, &resp)
	if !resp.OK || resp.Role != "confirmed" {
		t.Fatalf("approve response = %+v, want confirmed role", resp)
	}
}

func TestSeatActionsRenderOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		body     any
		wantCall string
	}{
		{name: "reject", path: "/api/tables/tbl-1/reject", body: map[string]string{"member": "mem-2"}, wantCall: "reject"},
		{name: "remove", path: "/api/tables/tbl-1/remove", body: map[string]string{"member": "mem-2"}, wantCall: "remove"},
		{name: "leave", path: "/api/tables/tbl-1/leave", wantCall: "leave"},
		{name: "current", path: "/api/tables/tbl-1/current", wantCall: "current"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &tableServiceStub{result: tableservice.Result{OK: true, Message: "done"}}
			mux := newTestMux(t, stub, nil)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, tc.path, tc.body))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
			}
			var resp envelope
			decodeBody(t, rr, &resp)
			if !resp.OK || resp.Message != "done" {
				t.Fatalf("envelope = %+v, want ok outcome", resp)
			}
			if len(stub.calls) != 1 || stub.calls[0] != tc.wantCall {
				t.Fatalf("calls = %v, want [%s]", stub.calls, tc.wantCall)
			}
			if stub.lastTableID != "tbl-1" {
				t.Fatalf("table id = %q, want tbl-1", stub.lastTableID)
			}
		})
	}
}

func TestReorderPassesProposedOrder(t *testing.T) {
	t.Parallel()

	want := []string{"mem-2", "mem-1"}
	stub := &tableServiceStub{orderResult: tableservice.ReorderResult{
		Result:    tableservice.Result{OK: true, Message: "order updated"},
		TurnOrder: want,
		Version:   4,
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/order", map[string][]string{"order": want}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !reflect.DeepEqual(stub.lastOrder, want) {
		t.Fatalf("proposed order = %v, want %v", stub.lastOrder, want)
	}
	var resp orderResponse
	decodeBody(t, rr, &resp)
	if !reflect.DeepEqual(resp.TurnOrder, want) || resp.Version != 4 {
		t.Fatalf("order response = %+v, want %v at version 4", resp, want)
	}
}

func TestGenerateBoardRendersLayout(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{boardResult: tableservice.GenerateBoardResult{
		Result: tableservice.Result{OK: true, Message: "board generated"},
		Layout: []domain.Tile{
			{ID: 0, Terrain: domain.TerrainDesert, HasMarker: true},
			{ID: 1, Terrain: domain.TerrainWood, Token: 8},
		},
		TurnOrder: []string{"mem-1"},
		Version:   7,
	}}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/board", map[string]string{"preset": "standard"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if stub.lastPreset != "standard" {
		t.Fatalf("preset = %q, want standard", stub.lastPreset)
	}
	var resp boardResponse
	decodeBody(t, rr, &resp)
	if len(resp.Layout) != 2 {
		t.Fatalf("len(layout) = %d, want 2", len(resp.Layout))
	}
	if resp.Layout[0].Terrain != "desert" || !resp.Layout[0].HasMarker {
		t.Fatalf("layout[0] = %+v, want marked desert", resp.Layout[0])
	}
	if resp.Layout[1].Terrain != "wood" || resp.Layout[1].Token != 8 {
		t.Fatalf("layout[1] = %+v, want wood with token 8", resp.Layout[1])
	}
	if resp.Version != 7 {
		t.Fatalf("version = %d, want 7", resp.Version)
	}
}

func TestPhaseActionsRenderPhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantCall string
		phase    domain.Phase
	}{
		{name: "start", path: "/api/tables/tbl-1/start", wantCall: "start", phase: domain.PhaseStarted},
		{name: "finish", path: "/api/tables/tbl-1/finish", wantCall: "finish", phase: domain.PhaseFinished},
		{name: "reset", path: "/api/tables/tbl-1/reset", wantCall: "reset", phase: domain.PhaseNotStarted},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &tableServiceStub{phaseResult: tableservice.PhaseResult{
				Result:  tableservice.Result{OK: true, Message: "phase changed"},
				Phase:   tc.phase,
				Version: 2,
			}}
			mux := newTestMux(t, stub, nil)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, tc.path, nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
			}
			if len(stub.calls) != 1 || stub.calls[0] != tc.wantCall {
				t.Fatalf("calls = %v, want [%s]", stub.calls, tc.wantCall)
			}
			var resp phaseResponse
			decodeBody(t, rr, &resp)
			if resp.Phase != string(tc.phase) || resp.Version != 2 {
				t.Fatalf("phase response = %+v, want %s at version 2", resp, tc.phase)
			}
		})
	}
}

func TestMintInviteSignsCurrentCode(t *testing.T) {
	t.Parallel()

	expires := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := &granterStub{grant: "signed-grant", expiresAt: expires}
	stub := &tableServiceStub{view: tableservice.TableView{
		ID:       "tbl-1",
		JoinCode: "123456",
		MyRole:   domain.RoleAdmin,
	}}
	mux := newTestMux(t, stub, g)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/invites", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if g.lastTableID != "tbl-1" || g.lastCode != "123456" {
		t.Fatalf("mint args = (%q, %q), want (tbl-1, 123456)", g.lastTableID, g.lastCode)
	}
	var resp inviteResponse
	decodeBody(t, rr, &resp)
	if !resp.OK || resp.Grant != "signed-grant" {
		t.Fatalf("invite response = %+v, want signed grant", resp)
	}
	if resp.ExpiresAt != "2025-03-01T12:00:00Z" {
		t.Fatalf("expires_at = %q, want RFC3339 UTC", resp.ExpiresAt)
	}
}

func TestMintInviteRequiresAdminSeat(t *testing.T) {
	t.Parallel()

	g := &granterStub{grant: "signed-grant"}
	stub := &tableServiceStub{view: tableservice.TableView{
		ID:     "tbl-1",
		MyRole: domain.RoleConfirmed,
	}}
	mux := newTestMux(t, stub, g)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/invites", nil))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	var resp envelope
	decodeBody(t, rr, &resp)
	if resp.Message != "You are not allowed to perform this action" {
		t.Fatalf("message = %q, want authorization message", resp.Message)
	}
	if g.lastTableID != "" {
		t.Fatalf("mint called for table %q, want no mint", g.lastTableID)
	}
}

func TestMintInviteWhenGrantsDisabled(t *testing.T) {
	t.Parallel()

	stub := &tableServiceStub{}
	mux := newTestMux(t, stub, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newMemberRequest(t, http.MethodPost, "/api/tables/tbl-1/invites", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service calls = %v, want none", stub.calls)
	}
}

func TestErrorStatusFollowsCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "not found", err: storage.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Not found"},
		{name: "not authorized", err: domain.ErrNotAuthorized, wantStatus: http.StatusForbidden, wantMessage: "You are not allowed to perform this action"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mux := newTestMux(t, &tableServiceStub{getErr: tc.err}, nil)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, newMemberRequest(t, http.MethodGet, "/api/tables/tbl-1", nil))

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var resp envelope
			decodeBody(t, rr, &resp)
			if resp.OK {
				t.Fatalf("envelope ok = true, want false")
			}
			if resp.Message != tc.wantMessage {
				t.Fatalf("message = %q, want %q", resp.Message, tc.wantMessage)
			}
		})
	}
}

func newTestMux(t *testing.T, stub *tableServiceStub, g granter) *http.ServeMux {
	t.Helper()
	h := handlers{tables: stub}
	if g != nil {
		h.granter = g
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return mux
}

// newMemberRequest builds an API request with mem-1 as the acting member,
// mirroring what the identity middleware stores for handlers.
func newMemberRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	return req.WithContext(requestctx.WithMember(req.Context(), "mem-1"))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
}

type tableServiceStub struct {
	createResult  tableservice.CreateTableResult
	createErr     error
	view          tableservice.TableView
	getErr        error
	summaries     []tableservice.TableSummary
	listErr       error
	result        tableservice.Result
	resultErr     error
	joinResult    tableservice.RequestJoinResult
	joinErr       error
	approveResult tableservice.ApproveResult
	approveErr    error
	orderResult   tableservice.ReorderResult
	orderErr      error
	boardResult   tableservice.GenerateBoardResult
	boardErr      error
	phaseResult   tableservice.PhaseResult
	phaseErr      error

	calls        []string
	lastName     string
	lastMember   string
	lastTableID  string
	lastTarget   string
	lastJoinCode string
	lastOrder    []string
	lastPreset   string
}

func (f *tableServiceStub) CreateTable(_ context.Context, name, creator string) (tableservice.CreateTableResult, error) {
	f.calls = append(f.calls, "create")
	f.lastName = name
	f.lastMember = creator
	if f.createErr != nil {
		return tableservice.CreateTableResult{}, f.createErr
	}
	return f.createResult, nil
}

func (f *tableServiceStub) GetTable(_ context.Context, tableID, caller string) (tableservice.TableView, error) {
	f.calls = append(f.calls, "get")
	f.lastTableID = tableID
	f.lastMember = caller
	if f.getErr != nil {
		return tableservice.TableView{}, f.getErr
	}
	return f.view, nil
}

func (f *tableServiceStub) ListTables(_ context.Context, member string) ([]tableservice.TableSummary, error) {
	f.calls = append(f.calls, "list")
	f.lastMember = member
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.summaries, nil
}

func (f *tableServiceStub) DeleteTable(_ context.Context, tableID, actor string) (tableservice.Result, error) {
	f.calls = append(f.calls, "delete")
	f.lastTableID = tableID
	f.lastMember = actor
	if f.resultErr != nil {
		return tableservice.Result{}, f.resultErr
	}
	return f.result, nil
}

func (f *tableServiceStub) RequestJoin(_ context.Context, joinCode, member string) (tableservice.RequestJoinResult, error) {
	f.calls = append(f.calls, "request-join")
	f.lastJoinCode = joinCode
	f.lastMember = member
	if f.joinErr != nil {
		return tableservice.RequestJoinResult{}, f.joinErr
	}
	return f.joinResult, nil
}

func (f *tableServiceStub) RedeemJoin(_ context.Context, joinCode, tableID, member string) (tableservice.RequestJoinResult, error) {
	f.calls = append(f.calls, "redeem-join")
	f.lastJoinCode = joinCode
	f.lastTableID = tableID
	f.lastMember = member
	if f.joinErr != nil {
		return tableservice.RequestJoinResult{}, f.joinErr
	}
	return f.joinResult, nil
}

func (f *tableServiceStub) Approve(_ context.Context, tableID, target, actor string) (tableservice.ApproveResult, error) {
	f.calls = append(f.calls, "approve")
	f.lastTableID = tableID
	f.lastTarget = target
	f.lastMember = actor
	if f.approveErr != nil {
		return tableservice.ApproveResult{}, f.approveErr
	}
	return f.approveResult, nil
}

func (f *tableServiceStub) Reject(_ context.Context, tableID, target, actor string) (tableservice.Result, error) {
	f.calls = append(f.calls, "reject")
	f.lastTableID = tableID
	f.lastTarget = target
	f.lastMember = actor
	if f.resultErr != nil {
		return tableservice.Result{}, f.resultErr
	}
	return f.result, nil
}

func (f *tableServiceStub) Remove(_ context.Context, tableID, target, actor string) (tableservice.Result, error) {
	f.calls = append(f.calls, "remove")
	f.lastTableID = tableID
	f.lastTarget = target
	f.lastMember = actor
	if f.resultErr != nil {
		return tableservice.Result{}, f.resultErr
	}
	return f.result, nil
}

func (f *tableServiceStub) Leave(_ context.Context, tableID, member string) (tableservice.Result, error) {
	f.calls = append(f.calls, "leave")
	f.lastTableID = tableID
	f.lastMember = member
	if f.resultErr != nil {
		return tableservice.Result{}, f.resultErr
	}
	return f.result, nil
}

func (f *tableServiceStub) SetCurrent(_ context.Context, tableID, member string) (tableservice.Result, error) {
	f.calls = append(f.calls, "current")
	f.lastTableID = tableID
	f.lastMember = member
	if f.resultErr != nil {
		return tableservice.Result{}, f.resultErr
	}
	return f.result, nil
}

func (f *tableServiceStub) Reorder(_ context.Context, tableID, actor string, proposed []string) (tableservice.ReorderResult, error) {
	f.calls = append(f.calls, "reorder")
	f.lastTableID = tableID
	f.lastMember = actor
	f.lastOrder = proposed
	if f.orderErr != nil {
		return tableservice.ReorderResult{}, f.orderErr
	}
	return f.orderResult, nil
}

func (f *tableServiceStub) GenerateBoard(_ context.Context, tableID, actor, preset string) (tableservice.GenerateBoardResult, error) {
	f.calls = append(f.calls, "board")
	f.lastTableID = tableID
	f.lastMember = actor
	f.lastPreset = preset
	if f.boardErr != nil {
		return tableservice.GenerateBoardResult{}, f.boardErr
	}
	return f.boardResult, nil
}

func (f *tableServiceStub) Start(_ context.Context, tableID, actor string) (tableservice.PhaseResult, error) {
	f.calls = append(f.calls, "start")
	f.lastTableID = tableID
	f.lastMember = actor
	if f.phaseErr != nil {
		return tableservice.PhaseResult{}, f.phaseErr
	}
	return f.phaseResult, nil
}

func (f *tableServiceStub) Finish(_ context.Context, tableID, actor string) (tableservice.PhaseResult, error) {
	f.calls = append(f.calls, "finish")
	f.lastTableID = tableID
	f.lastMember = actor
	if f.phaseErr != nil {
		return tableservice.PhaseResult{}, f.phaseErr
	}
	return f.phaseResult, nil
}

func (f *tableServiceStub) Reset(_ context.Context, tableID, actor string) (tableservice.PhaseResult, error) {
	f.calls = append(f.calls, "reset")
	f.lastTableID = tableID
	f.lastMember = actor
	if f.phaseErr != nil {
		return tableservice.PhaseResult{}, f.phaseErr
	}
	return f.phaseResult, nil
}

type granterStub struct {
	grant       string
	expiresAt   time.Time
	mintErr     error
	claims      invite.Claims
	validateErr error

	lastTableID string
	lastCode    string
	lastGrant   string
}

func (f *granterStub) Mint(tableID, joinCode string) (string, time.Time, error) {
	f.lastTableID = tableID
	f.lastCode = joinCode
	if f.mintErr != nil {
		return "", time.Time{}, f.mintErr
	}
	return f.grant, f.expiresAt, nil
}

func (f *granterStub) Validate(grant string) (invite.Claims, error) {
	f.lastGrant = grant
	if f.validateErr != nil {
		return invite.Claims{}, f.validateErr
	}
	return f.claims, nil
}
