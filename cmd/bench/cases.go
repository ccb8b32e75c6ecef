// README: Bench cases: health, chat turns, hotel/flight search and booking flows, cache connectivity, throughput.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	redis *redis.Client

	// hotelID carries the confirmation number between the book and cancel cases.
	hotelID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	session := "bench-" + uuid.NewString()[:8]

	return []TestCase{
		{
			Name:  "Env: Redis connect",
			Focus: "search cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: root", http.MethodGet, base+"/", nil, []int{200}, nil),

		// Chat
		httpCase("Chat: greeting", base+"/api/chat", map[string]any{
			"session_id": session, "user_text": "Hello!",
		}, []int{200}, nil),
		httpCase("Chat: missing fields -> 400", base+"/api/chat", map[string]any{}, []int{400}, nil),
		httpCase("Chat: hotel search turn", base+"/api/chat", map[string]any{
			"session_id": session, "user_text": "Find me a hotel in Chicago for 2 people",
		}, []int{200}, nil),
		httpCaseMethod("Session: snapshot", http.MethodGet, base+"/api/sessions/"+session, nil, []int{200}, []int{404}),
		httpCaseMethod("Session: unknown -> 404", http.MethodGet, base+"/api/sessions/does-not-exist", nil, []int{404}, nil),

		// Hotels
		httpCase("Hotel: search fallback location", base+"/api/hotels/search", map[string]any{
			"location": "Reykjavik",
		}, []int{200}, nil),
		httpCase("Hotel: book missing fields -> 400", base+"/api/hotels/book", map[string]any{
			"hotelName": "Courtyard Chicago",
		}, []int{400}, nil),
		{
			Name:  "Hotel: book",
			Focus: "booking creates HTL- confirmation",
			Run: func(ctx context.Context, r *Runner) Result {
				var out struct {
					Booking struct {
						ConfirmationNumber string `json:"confirmation_number"`
					} `json:"booking"`
				}
				status, latency, err := r.postJSON(ctx, base+"/api/hotels/book", map[string]any{
					"hotelName": "Courtyard Chicago Downtown/Magnificent Mile", "location": "Chicago",
					"checkInDate": "2025-06-01", "checkOutDate": "2025-06-04", "numGuests": 2,
				}, &out)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusCreated || !strings.HasPrefix(out.Booking.ConfirmationNumber, "HTL-") {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				r.hotelID = out.Booking.ConfirmationNumber
				return Result{Status: "PASS", Latency: latency, Note: r.hotelID}
			},
		},
		{
			Name:  "Hotel: cancel then cancel again -> 409",
			Focus: "cancellation policy",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.hotelID == "" {
					return Result{Status: "SKIP", Note: "no booking from previous case"}
				}
				url := base + "/api/hotels/bookings/" + r.hotelID + "/cancel"
				first, latency, err := r.postJSON(ctx, url, nil, nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				second, _, err := r.postJSON(ctx, url, nil, nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if first != http.StatusOK || second != http.StatusConflict {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("first=%d second=%d", first, second)}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		httpCase("Hotel: cancel unknown -> 404", base+"/api/hotels/bookings/HTL-000000/cancel", nil, []int{404}, nil),

		// Flights
		httpCase("Flight: search", base+"/api/flights/search", map[string]any{
			"origin": "New York", "destination": "Los Angeles", "departureDate": "2025-06-01",
		}, []int{200}, nil),
		httpCase("Flight: search bad date -> 400", base+"/api/flights/search", map[string]any{
			"origin": "NYC", "destination": "LAX", "departureDate": "June 1",
		}, []int{400}, nil),
		httpCase("Flight: book", base+"/api/flights/book", map[string]any{
			"airline": "American Airlines", "flightNumber": "AA100", "origin": "JFK", "destination": "LAX",
			"departureDate": "2025-06-01", "departureTime": "08:00", "arrivalTime": "11:30", "price": 349.99,
		}, []int{201}, nil),
		httpCaseMethod("Flight: list bookings", http.MethodGet, base+"/api/flights/bookings", nil, []int{200}, nil),

		// Performance
		{
			Name:  "Perf: hotel search throughput",
			Focus: "search path under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/hotels/search", map[string]any{"location": "San Francisco"})
			},
		},
		{
			Name:  "Concurrency: same-session chat turns",
			Focus: "interleaved merges on one session",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentChat(ctx, r, base+"/api/chat", "bench-shared-"+uuid.NewString()[:8])
			},
		},
	}
}

func (r *Runner) postJSON(ctx context.Context, url string, body, out any) (int, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	latency := time.Since(start)
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, latency, err
		}
	}
	return resp.StatusCode, latency, nil
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			if contains(pendingStatuses, resp.StatusCode) {
				return Result{Status: "PENDING", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

// concurrentChat fires chat turns at one session; every turn must still get a 200.
func concurrentChat(ctx context.Context, r *Runner, url, sessionID string) Result {
	texts := []string{"hotel in Boston", "flights from Boston to Denver on 2025-07-01", "hello", "hotel in Denver"}
	wg := sync.WaitGroup{}
	ok := 0
	mu := sync.Mutex{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, err := r.postJSON(ctx, url, map[string]any{
				"session_id": sessionID, "user_text": texts[i%len(texts)],
			}, nil)
			if err != nil || status != http.StatusOK {
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if ok != r.cfg.Concurrency {
		return Result{Status: "FAIL", Note: fmt.Sprintf("ok=%d/%d", ok, r.cfg.Concurrency)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("ok=%d", ok)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					if ctx.Err() != nil {
						return
					}
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
