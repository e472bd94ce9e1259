package models

import "time"

type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload"`
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}
