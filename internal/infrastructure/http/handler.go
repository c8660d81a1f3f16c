package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"strongbox.dev/internal/application/usecase"
	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/logger"
)

// Handler holds HTTP handlers and their dependencies
type Handler struct {
	depositUseCase    *usecase.DepositUseCase
	withdrawUseCase   *usecase.WithdrawUseCase
	setPausedUseCase  *usecase.SetPausedUseCase
	whitelistUseCase  *usecase.SetWhitelistedUseCase
	getBalanceUseCase *usecase.GetBalanceUseCase
	getStatusUseCase  *usecase.GetStatusUseCase
	listEventsUseCase *usecase.ListEventsUseCase
	authenticator     port.Authenticator
	logger            logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	depositUseCase *usecase.DepositUseCase,
	withdrawUseCase *usecase.WithdrawUseCase,
	setPausedUseCase *usecase.SetPausedUseCase,
	whitelistUseCase *usecase.SetWhitelistedUseCase,
	getBalanceUseCase *usecase.GetBalanceUseCase,
	getStatusUseCase *usecase.GetStatusUseCase,
	listEventsUseCase *usecase.ListEventsUseCase,
	authenticator port.Authenticator,
	logger logger.Logger,
) *Handler {
	return &Handler{
		depositUseCase:    depositUseCase,
		withdrawUseCase:   withdrawUseCase,
		setPausedUseCase:  setPausedUseCase,
		whitelistUseCase:  whitelistUseCase,
		getBalanceUseCase: getBalanceUseCase,
		getStatusUseCase:  getStatusUseCase,
		listEventsUseCase: listEventsUseCase,
		authenticator:     authenticator,
		logger:            logger,
	}
}

// Router wires all routes behind the tracing middleware
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware(h.logger))
	r.Use(LoggingMiddleware(h.logger))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/deposit", h.HandleDeposit).Methods(http.MethodPost)
	api.HandleFunc("/withdraw", h.HandleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/balance/{account}", h.HandleBalances).Methods(http.MethodGet)
	api.HandleFunc("/balance/{account}/{asset}", h.HandleAssetBalance).Methods(http.MethodGet)
	api.HandleFunc("/assets/{asset}", h.HandleAssetStatus).Methods(http.MethodGet)
	api.HandleFunc("/status", h.HandleStatus).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/pause", h.HandleSetPaused).Methods(http.MethodPost)
	admin.HandleFunc("/whitelist", h.HandleSetWhitelisted).Methods(http.MethodPost)
	admin.HandleFunc("/events", h.HandleEvents).Methods(http.MethodGet)

	return r
}

// HandleDeposit handles POST /api/deposit requests
func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	caller, body, ok := h.authenticated(w, r)
	if !ok {
		return
	}

	var req entity.DepositRequest
	if err := json.Unmarshal(body, &req); err != nil {
		requestLogger.LogError(ctx, "Failed to parse JSON body", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.depositUseCase.Execute(ctx, caller, &req); err != nil {
		requestLogger.LogWarning(ctx, "Deposit rejected",
			"account", caller.String(),
			"error", err.Error())
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	requestLogger.LogInfo(ctx, "Deposit accepted",
		"account", caller.String(),
		"asset", req.Asset,
		"amount", req.Amount)
}

// HandleWithdraw handles POST /api/withdraw requests
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	caller, body, ok := h.authenticated(w, r)
	if !ok {
		return
	}

	var req entity.WithdrawRequest
	if err := json.Unmarshal(body, &req); err != nil {
		requestLogger.LogError(ctx, "Failed to parse JSON body", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.withdrawUseCase.Execute(ctx, caller, &req); err != nil {
		requestLogger.LogWarning(ctx, "Withdrawal rejected",
			"account", caller.String(),
			"error", err.Error())
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	requestLogger.LogInfo(ctx, "Withdrawal accepted",
		"account", caller.String(),
		"asset", req.Asset,
		"amount", req.Amount)
}

// HandleSetPaused handles POST /api/admin/pause requests
func (h *Handler) HandleSetPaused(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	caller, body, ok := h.authenticated(w, r)
	if !ok {
		return
	}

	var req entity.PauseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		requestLogger.LogError(ctx, "Failed to parse JSON body", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.setPausedUseCase.Execute(ctx, caller, &req); err != nil {
		requestLogger.LogWarning(ctx, "Pause toggle rejected",
			"account", caller.String(),
			"error", err.Error())
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSetWhitelisted handles POST /api/admin/whitelist requests
func (h *Handler) HandleSetWhitelisted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	caller, body, ok := h.authenticated(w, r)
	if !ok {
		return
	}

	var req entity.WhitelistRequest
	if err := json.Unmarshal(body, &req); err != nil {
		requestLogger.LogError(ctx, "Failed to parse JSON body", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.whitelistUseCase.Execute(ctx, caller, &req); err != nil {
		requestLogger.LogWarning(ctx, "Whitelist change rejected",
			"account", caller.String(),
			"error", err.Error())
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleBalances handles GET /api/balance/{account} requests
func (h *Handler) HandleBalances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	account, err := entity.ParseAddress(mux.Vars(r)["account"])
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	balance, err := h.getBalanceUseCase.Execute(ctx, account)
	if err != nil {
		requestLogger.LogError(ctx, "Failed to get balances", err)
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// HandleAssetBalance handles GET /api/balance/{account}/{asset} requests
func (h *Handler) HandleAssetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	vars := mux.Vars(r)
	account, err := entity.ParseAddress(vars["account"])
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	asset, err := entity.ParseAsset(vars["asset"])
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	balance, err := h.getBalanceUseCase.Asset(ctx, account, asset)
	if err != nil {
		requestLogger.LogError(ctx, "Failed to get asset balance", err)
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// HandleAssetStatus handles GET /api/assets/{asset} requests
func (h *Handler) HandleAssetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	asset, err := entity.ParseAsset(mux.Vars(r)["asset"])
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	status, err := h.getStatusUseCase.Asset(ctx, asset)
	if err != nil {
		requestLogger.LogError(ctx, "Failed to get asset status", err)
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// HandleStatus handles GET /api/status requests
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	status, err := h.getStatusUseCase.Paused(ctx)
	if err != nil {
		requestLogger.LogError(ctx, "Failed to get status", err)
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// HandleEvents handles GET /api/admin/events requests
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	caller, _, ok := h.authenticated(w, r)
	if !ok {
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	events, err := h.listEventsUseCase.Execute(ctx, caller, limit)
	if err != nil {
		requestLogger.LogWarning(ctx, "Event listing rejected",
			"account", caller.String(),
			"error", err.Error())
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// authenticated reads the body and resolves the caller identity. On failure
// it writes the error response and reports false.
func (h *Handler) authenticated(w http.ResponseWriter, r *http.Request) (entity.Address, []byte, bool) {
	ctx := r.Context()
	requestLogger := requestLoggerFrom(ctx, h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		requestLogger.LogError(ctx, "Failed to read request body", err)
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return "", nil, false
	}

	caller, err := h.authenticator.Authenticate(ctx, r, body)
	if err != nil {
		requestLogger.LogWarning(ctx, "Request authentication failed",
			"error", err.Error())
		writeError(w, http.StatusUnauthorized, fmt.Sprintf("authentication failed: %v", err))
		return "", nil, false
	}

	return caller, body, true
}

// statusForError maps ledger failures onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrPaused):
		return http.StatusConflict
	case errors.Is(err, entity.ErrAssetNotWhitelisted),
		errors.Is(err, entity.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrExternalTransfer):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrInvalidAsset),
		errors.Is(err, entity.ErrInvalidAddress),
		errors.Is(err, entity.ErrMissingAsset),
		errors.Is(err, entity.ErrMissingAmount),
		errors.Is(err, entity.ErrMissingPaused),
		errors.Is(err, entity.ErrMissingEnabled):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
