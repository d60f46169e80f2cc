// Command ledger replays a transaction CSV and prints the final account
// snapshot as CSV on stdout. Rejected records are logged and skipped; one
// bad record never halts the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rainbow1016/bank-payments-system/internal/config"
	"github.com/rainbow1016/bank-payments-system/internal/csvio"
	"github.com/rainbow1016/bank-payments-system/internal/ledger"
	"github.com/rainbow1016/bank-payments-system/internal/logging"
	"github.com/rainbow1016/bank-payments-system/internal/store"
)

func main() {
	archive := flag.Bool("archive", false, "also store the final snapshot in Postgres (DB_SOURCE)")
	flag.Parse()

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	input := os.Stdin
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			logger.Fatal("open input", zap.String("path", path), zap.Error(err))
		}
		defer f.Close()
		input = f
	}

	l := ledger.New()
	reader := csvio.NewReader(input)

	var applied, rejected int
	for {
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rejected++
			logger.Warn("skipping malformed record", zap.Error(err))
			continue
		}
		if err := l.Apply(tx); err != nil {
			rejected++
			logger.Debug("transaction rejected",
				zap.String("type", string(tx.Type)),
				zap.Uint16("client", tx.Client),
				zap.Uint32("tx", tx.ID),
				zap.Error(err),
			)
			continue
		}
		applied++
	}

	accounts := l.Accounts()
	if err := csvio.WriteSnapshot(os.Stdout, accounts); err != nil {
		logger.Fatal("write snapshot", zap.Error(err))
	}

	logger.Info("run complete",
		zap.Int("applied", applied),
		zap.Int("rejected", rejected),
		zap.Int("accounts", len(accounts)),
	)

	if *archive {
		if cfg.DBSource == "" {
			logger.Fatal("archive requested but DB_SOURCE is not set")
		}
		ctx := context.Background()
		st, err := store.NewSnapshotStore(ctx, cfg.DBSource)
		if err != nil {
			logger.Fatal("connect archive store", zap.Error(err))
		}
		defer st.Close()

		count, err := st.Archive(ctx, time.Now().UTC(), accounts)
		if err != nil {
			logger.Fatal("archive snapshot", zap.Error(err))
		}
		logger.Info("snapshot archived", zap.Int64("rows", count))
	}
}
