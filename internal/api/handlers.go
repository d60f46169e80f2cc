package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
	"github.com/rainbow1016/bank-payments-system/internal/ledger"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})

	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Transactions applied or rejected, labeled by type and result",
	}, []string{"type", "result"})
)

// TransactionRequest is the payload for POST /api/v1/transactions.
// Amount accepts a JSON number or a decimal string.
type TransactionRequest struct {
	Type   string           `json:"type"`
	Client uint16           `json:"client"`
	Tx     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// TransactionResponse echoes the applied record with the resulting account.
type TransactionResponse struct {
	Tx      uint32         `json:"tx"`
	Client  uint16         `json:"client"`
	Account domain.Account `json:"account"`
}

// Handler serves the ledger over HTTP. The engine is single-caller by
// contract, so every Apply and snapshot goes through mu.
type Handler struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewHandler(l *ledger.Ledger, logger *zap.Logger) *Handler {
	return &Handler{ledger: l, logger: logger}
}

func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ApplyTransactionHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/transactions"))
	defer timer.ObserveDuration()

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpRequestsTotal.WithLabelValues("POST", "/transactions", "400").Inc()
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		// Fixed label value: the raw tag is unbounded and must not
		// become a metric label.
		httpRequestsTotal.WithLabelValues("POST", "/transactions", "400").Inc()
		transactionsTotal.WithLabelValues("unknown", resultLabel(err)).Inc()
		respondWithError(w, http.StatusBadRequest, "Unknown transaction type")
		return
	}

	record := domain.Transaction{
		Type:   txType,
		Client: req.Client,
		ID:     req.Tx,
		Amount: req.Amount,
	}

	h.mu.Lock()
	err = h.ledger.Apply(record)
	account, _ := h.ledger.Account(req.Client)
	h.mu.Unlock()

	transactionsTotal.WithLabelValues(string(txType), resultLabel(err)).Inc()

	if err != nil {
		status := rejectionStatus(err)
		h.logger.Debug("transaction rejected",
			zap.String("type", string(txType)),
			zap.Uint16("client", req.Client),
			zap.Uint32("tx", req.Tx),
			zap.Error(err),
		)
		httpRequestsTotal.WithLabelValues("POST", "/transactions", strconv.Itoa(status)).Inc()
		respondWithError(w, status, err.Error())
		return
	}

	httpRequestsTotal.WithLabelValues("POST", "/transactions", "201").Inc()
	respondWithJSON(w, http.StatusCreated, TransactionResponse{
		Tx:      req.Tx,
		Client:  req.Client,
		Account: account,
	})
}

func (h *Handler) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/accounts"))
	defer timer.ObserveDuration()

	h.mu.Lock()
	accounts := h.ledger.Accounts()
	h.mu.Unlock()

	httpRequestsTotal.WithLabelValues("GET", "/accounts", "200").Inc()
	respondWithJSON(w, http.StatusOK, accounts)
}

func (h *Handler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/accounts/{id}"))
	defer timer.ObserveDuration()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 16)
	if err != nil {
		httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "400").Inc()
		respondWithError(w, http.StatusBadRequest, "Invalid client id")
		return
	}

	h.mu.Lock()
	account, ok := h.ledger.Account(uint16(id))
	h.mu.Unlock()

	if !ok {
		httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "404").Inc()
		respondWithError(w, http.StatusNotFound, "Account not found")
		return
	}

	httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "200").Inc()
	respondWithJSON(w, http.StatusOK, account)
}

// rejectionStatus maps ledger rejections onto HTTP status codes.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownTransactionType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmountRequired),
		errors.Is(err, domain.ErrOnlyDepositsDisputable),
		errors.Is(err, domain.ErrNotDisputed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, domain.ErrAmountRequired):
		return "amount_required"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, domain.ErrOnlyDepositsDisputable):
		return "only_deposits_disputable"
	case errors.Is(err, domain.ErrNotDisputed):
		return "not_disputed"
	case errors.Is(err, domain.ErrUnknownTransactionType):
		return "unknown_type"
	default:
		return "error"
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
