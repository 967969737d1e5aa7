package models

import "time"

// SyncTask is a durable unit of work for the sheets sync worker.
type SyncTask struct {
	ID            int64      `json:"id"`
	TaskType      string     `json:"task_type"`
	ReservationID string     `json:"reservation_id"`
	Payload       string     `json:"payload"`
	Status        string     `json:"status"` // pending, retry, completed, failed
	RetryCount    int        `json:"retry_count"`
	LastError     string     `json:"last_error"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty"`
}
