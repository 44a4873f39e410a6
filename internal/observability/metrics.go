package observability

import (
	"sync"
	"time"
)

type requestKey struct {
	Path   string
	Method string
	Status int
}

type errorKey struct {
	Path   string
	Method string
	Code   string
}

// Metrics provides basic in-memory counters for requests and error codes.
type Metrics struct {
	mu       sync.Mutex
	requests map[requestKey]int64
	errors   map[errorKey]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[requestKey]int64),
		errors:   make(map[errorKey]int64),
	}
}

// RecordRequest increments the counter for one handled request.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[requestKey{Path: path, Method: method, Status: status}]++
}

// RecordError increments the counter for one error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[errorKey{Path: path, Method: method, Code: code}]++
}
