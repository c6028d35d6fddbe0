package internal

import "time"

// LookupEvent records one upstream lookup served by the gateway. Events
// flow from the handlers to the audit worker over NATS.
type LookupEvent struct {
	RequestID  string    `json:"requestId"`
	Endpoint   string    `json:"endpoint"`
	Platform   string    `json:"platform"`
	Summoner   string    `json:"summoner,omitempty"`
	Team       string    `json:"team,omitempty"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"durationMs"`
	Timestamp  time.Time `json:"timestamp"`
}

type LookupStats struct {
	Total      int64            `json:"total"`
	Recent     int64            `json:"recent"`
	ByEndpoint map[string]int64 `json:"byEndpoint"`
}
