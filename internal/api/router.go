package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the ledger endpoints, health check and Prometheus
// metrics onto a gorilla router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheckHandler).Methods(http.MethodGet)

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/transactions", h.ApplyTransactionHandler).Methods(http.MethodPost)
	apiV1.HandleFunc("/accounts", h.ListAccountsHandler).Methods(http.MethodGet)
	apiV1.HandleFunc("/accounts/{id}", h.GetAccountHandler).Methods(http.MethodGet)
	return r
}
