package api

import "net/http"

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST /api/tables", h.handleCreateTable)
	mux.HandleFunc("GET /api/tables", h.handleListTables)
	mux.HandleFunc("POST /api/tables/join", h.handleJoin)
	mux.HandleFunc("GET /api/tables/{tableID}", h.handleGetTable)
	mux.HandleFunc("DELETE /api/tables/{tableID}", h.handleDeleteTable)
	mux.HandleFunc("POST /api/tables/{tableID}/approve", h.handleApprove)
	mux.HandleFunc("POST /api/tables/{tableID}/reject", h.handleReject)
	mux.HandleFunc("POST /api/tables/{tableID}/remove", h.handleRemove)
	mux.HandleFunc("POST /api/tables/{tableID}/leave", h.handleLeave)
	mux.HandleFunc("POST /api/tables/{tableID}/current", h.handleSetCurrent)
	mux.HandleFunc("POST /api/tables/{tableID}/order", h.handleReorder)
	mux.HandleFunc("POST /api/tables/{tableID}/board", h.handleGenerateBoard)
	mux.HandleFunc("POST /api/tables/{tableID}/start", h.handleStart)
	mux.HandleFunc("POST /api/tables/{tableID}/finish", h.handleFinish)
	mux.HandleFunc("POST /api/tables/{tableID}/reset", h.handleReset)
	mux.HandleFunc("POST /api/tables/{tableID}/invites", h.handleMintInvite)
}
