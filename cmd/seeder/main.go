// Command seeder generates a random transaction CSV workload for the
// ledger CLI and benchmarks: mostly deposits and withdrawals, with a
// sprinkling of disputes, resolves, chargebacks and duplicate ids.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/shopspring/decimal"
)

var (
	outPath string
	clients int
	count   int
	seed    int64
)

func init() {
	flag.StringVar(&outPath, "out", "transactions.csv", "Output CSV path")
	flag.IntVar(&clients, "clients", 100, "Number of distinct clients")
	flag.IntVar(&count, "count", 10000, "Number of transaction rows")
	flag.Int64Var(&seed, "seed", 1, "RNG seed for reproducible workloads")
}

type deposit struct {
	client uint16
	id     uint32
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(seed))

	file, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	defer file.Close()

	if err := generate(file, rng, clients, count); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d transactions for %d clients to %s", count, clients, outPath)
}

// generate writes a header plus count workload rows to out. Dispute,
// resolve and chargeback rows always reference a deposit id emitted
// earlier in the stream.
func generate(out io.Writer, rng *rand.Rand, clients, count int) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}

	var (
		nextTx   uint32 = 1
		deposits []deposit
		disputed []deposit
	)

	for i := 0; i < count; i++ {
		client := uint16(rng.Intn(clients) + 1)
		roll := rng.Float64()

		var err error
		switch {
		case roll < 0.60:
			err = write(w, "deposit", client, nextTx, randAmount(rng))
			deposits = append(deposits, deposit{client, nextTx})
			nextTx++
		case roll < 0.85:
			err = write(w, "withdraw", client, nextTx, randAmount(rng))
			nextTx++
		case roll < 0.92 && len(deposits) > 0:
			d := deposits[rng.Intn(len(deposits))]
			err = write(w, "dispute", d.client, d.id, "")
			disputed = append(disputed, d)
		case roll < 0.96 && len(disputed) > 0:
			d := disputed[rng.Intn(len(disputed))]
			err = write(w, "resolve", d.client, d.id, "")
		case roll < 0.98 && len(disputed) > 0:
			d := disputed[rng.Intn(len(disputed))]
			err = write(w, "chargeback", d.client, d.id, "")
		case nextTx > 1:
			// Deliberate duplicate id to exercise the rejection path.
			err = write(w, "deposit", client, uint32(rng.Intn(int(nextTx-1))+1), randAmount(rng))
		default:
			err = write(w, "deposit", client, nextTx, randAmount(rng))
			deposits = append(deposits, deposit{client, nextTx})
			nextTx++
		}
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func write(w *csv.Writer, txType string, client uint16, tx uint32, amount string) error {
	return w.Write([]string{txType, fmt.Sprint(client), fmt.Sprint(tx), amount})
}

// randAmount returns an amount between 0.0001 and 1000.0000 at four
// decimal places.
func randAmount(rng *rand.Rand) string {
	return decimal.New(int64(rng.Intn(10_000_000)+1), -4).StringFixed(4)
}
