package discord

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
}

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
)

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandUnix atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandUnix.Store(time.Now().UnixNano())
}

// CurrentHealth snapshots the health counters.
func CurrentHealth(connected bool) HealthStatus {
	status := healthStatusHealthy
	if !connected {
		status = healthStatusDegraded
	}

	health := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
	}
	if ns := lastCommandUnix.Load(); ns > 0 {
		t := time.Unix(0, ns).UTC()
		health.LastCommandTime = &t
	}
	return health
}

// HandleHealth returns the bot's health status; 503 while the gateway is down.
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := CurrentHealth(h.connected())

	w.Header().Set("Content-Type", "application/json")
	if health.Status != healthStatusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to write health response", "error", err)
	}
}
