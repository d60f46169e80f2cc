// Command api serves the ledger over HTTP.
package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rainbow1016/bank-payments-system/internal/api"
	"github.com/rainbow1016/bank-payments-system/internal/config"
	"github.com/rainbow1016/bank-payments-system/internal/ledger"
	"github.com/rainbow1016/bank-payments-system/internal/logging"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	handler := api.NewHandler(ledger.New(), logger)
	router := api.NewRouter(handler)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
