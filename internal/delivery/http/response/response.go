package response

import "time"

// HealthResponse reports that the scraper process is alive and which run it is executing.
type HealthResponse struct {
	Status    string    `json:"status"`
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	UptimeSec int64     `json:"uptime_seconds"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
