package reporting

import (
	"context"
	"sync"
	"time"
)

// RequestEvent is one recorded OnRequest call.
type RequestEvent struct {
	Endpoint string
	Params   map[string]any
}

// ResponseEvent is one recorded OnResponse call.
type ResponseEvent struct {
	Endpoint string
	Status   int
	Latency  time.Duration
}

// ErrorEvent is one recorded OnError call.
type ErrorEvent struct {
	Message string
	Cause   error
	Details map[string]any
}

// Capture is a Reporter that records every event in memory. It exists for
// tests that assert on the observability stream.
type Capture struct {
	mu        sync.Mutex
	requests  []RequestEvent
	responses []ResponseEvent
	errors    []ErrorEvent
}

var _ Reporter = (*Capture)(nil)

func (c *Capture) OnRequest(_ context.Context, endpoint string, params map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, RequestEvent{Endpoint: endpoint, Params: params})
}

func (c *Capture) OnResponse(_ context.Context, endpoint string, status int, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, ResponseEvent{Endpoint: endpoint, Status: status, Latency: latency})
}

func (c *Capture) OnError(_ context.Context, message string, cause error, details map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, ErrorEvent{Message: message, Cause: cause, Details: details})
}

// Requests returns a copy of the recorded request events.
func (c *Capture) Requests() []RequestEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RequestEvent(nil), c.requests...)
}

// Responses returns a copy of the recorded response events.
func (c *Capture) Responses() []ResponseEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ResponseEvent(nil), c.responses...)
}

// Errors returns a copy of the recorded error events.
func (c *Capture) Errors() []ErrorEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ErrorEvent(nil), c.errors...)
}
