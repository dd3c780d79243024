package transport

import (
	"time"
)

// Envelope wraps the plain JSON endpoints (welcome and health). GraphQL
// responses use the standard {data, errors} shape instead.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func NewSuccess(data interface{}) Envelope {
	return Envelope{Status: "success", Data: data}
}

func NewError(code, message string, data interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: message, Data: data}
}

type Welcome struct {
	Message string `json:"message"`
	GraphQL string `json:"graphql"`
}

// Health reports the outcome of the latest dependency probes.
type Health struct {
	Timestamp time.Time       `json:"timestamp"`
	LastCheck time.Time       `json:"last_check"`
	Services  map[string]bool `json:"services"`
}
