package metrics

import (
	"sync"
	"time"
)

// Collector keeps in-process request and error counters, served by the
// metrics handler.
type Collector struct {
	mu           sync.Mutex
	startedAt    time.Time
	requests     map[string]int64
	statuses     map[int]int64
	errorsByCode map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		startedAt:    time.Now().UTC(),
		requests:     make(map[string]int64),
		statuses:     make(map[int]int64),
		errorsByCode: make(map[string]int64),
	}
}

func (c *Collector) IncRequest(method, path string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[method+" "+path]++
	c.statuses[status]++
}

func (c *Collector) IncError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorsByCode[code]++
}

type Snapshot struct {
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Requests      map[string]int64 `json:"requests"`
	Statuses      map[int]int64    `json:"statuses"`
	ErrorsByCode  map[string]int64 `json:"errorsByCode"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		Requests:      make(map[string]int64, len(c.requests)),
		Statuses:      make(map[int]int64, len(c.statuses)),
		ErrorsByCode:  make(map[string]int64, len(c.errorsByCode)),
	}
	for k, v := range c.requests {
		snap.Requests[k] = v
	}
	for k, v := range c.statuses {
		snap.Statuses[k] = v
	}
	for k, v := range c.errorsByCode {
		snap.ErrorsByCode[k] = v
	}
	return snap
}
