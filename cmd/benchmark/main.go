// Command benchmark drives POST /api/v1/transactions with concurrent
// workers and reports throughput and rejection rates as JSON.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
)

var (
	totalRequests uint64
	applied201    uint64
	duplicate409  uint64
	rejected      uint64 // 4xx other than duplicates
	failOther     uint64
)

var txCounter uint64

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "mixed", "Workload type: deposits | mixed")
}

func main() {
	flag.Parse()
	log.Printf("Starting Benchmark: %s | Workers: %d | Duration: %s", workload, concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, start)
	}

	wg.Wait()
	printResults(time.Since(start))
}

func worker(wg *sync.WaitGroup, start time.Time) {
	defer wg.Done()
	client := &http.Client{Timeout: 5 * time.Second}

	for time.Since(start) < duration {
		payload := nextPayload()
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, targetURL+"/api/v1/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			continue
		}

		atomic.AddUint64(&totalRequests, 1)
		switch resp.StatusCode {
		case http.StatusCreated:
			atomic.AddUint64(&applied201, 1)
		case http.StatusConflict:
			atomic.AddUint64(&duplicate409, 1)
		case http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadRequest:
			atomic.AddUint64(&rejected, 1)
		default:
			atomic.AddUint64(&failOther, 1)
		}
		resp.Body.Close()
	}
}

func nextPayload() map[string]interface{} {
	id := atomic.AddUint64(&txCounter, 1)
	clientID := rand.Intn(1000) + 1
	amount := fmt.Sprintf("%d.%04d", rand.Intn(100)+1, rand.Intn(10000))

	if workload == "mixed" {
		switch rand.Intn(10) {
		case 0:
			// Reuse a low id: likely a duplicate rejection.
			return map[string]interface{}{
				"type": "deposit", "client": clientID, "tx": rand.Intn(100) + 1, "amount": amount,
			}
		case 1:
			return map[string]interface{}{
				"type": "withdraw", "client": clientID, "tx": id, "amount": amount,
			}
		case 2:
			// Dispute a random earlier transaction.
			return map[string]interface{}{
				"type": "dispute", "client": clientID, "tx": rand.Intn(int(id)) + 1,
			}
		}
	}

	return map[string]interface{}{
		"type": "deposit", "client": clientID, "tx": id, "amount": amount,
	}
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)
	ok := atomic.LoadUint64(&applied201)
	dup := atomic.LoadUint64(&duplicate409)
	rej := atomic.LoadUint64(&rejected)
	fErr := atomic.LoadUint64(&failOther)

	tps := float64(total) / d.Seconds()

	results := map[string]interface{}{
		"workload":       workload,
		"duration_sec":   d.Seconds(),
		"total_requests": total,
		"throughput_tps": tps,
		"applied":        ok,
		"duplicates":     dup,
		"rejections":     rej,
		"errors":         fErr,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	filename := fmt.Sprintf("results_%s.json", workload)
	file, _ := os.Create(filename)
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
