package metrics

import (
	"sync"
	"time"
)

// Collector is a small in-process counter set exposed on /metrics. It is not
// a time series; restarting the process resets it.
type Collector struct {
	mu       sync.Mutex
	started  time.Time
	requests map[string]int64
	errors   map[string]int64
	total    int64
}

func NewCollector() *Collector {
	return &Collector{
		started:  time.Now().UTC(),
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

func (c *Collector) IncRequest(method string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.requests[method+" "+statusClass(status)]++
}

func (c *Collector) IncError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[code]++
}

type Snapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	TotalRequests int64            `json:"total_requests"`
	Requests      map[string]int64 `json:"requests"`
	Errors        map[string]int64 `json:"errors"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	requests := make(map[string]int64, len(c.requests))
	for key, value := range c.requests {
		requests[key] = value
	}
	errorCounts := make(map[string]int64, len(c.errors))
	for key, value := range c.errors {
		errorCounts[key] = value
	}
	return Snapshot{
		UptimeSeconds: int64(time.Since(c.started).Seconds()),
		TotalRequests: c.total,
		Requests:      requests,
		Errors:        errorCounts,
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
