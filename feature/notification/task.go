package notification

import (
	"strings"
	"time"

	"theaterwecker/core/utils"
)

// Status is the lifecycle state of a RetryTask.
type Status string

const (
	// StatusPending tasks are waiting for their next attempt.
	StatusPending Status = "pending"
	// StatusDelivered tasks were sent successfully.
	StatusDelivered Status = "delivered"
	// StatusAbandoned tasks exhausted their retries.
	StatusAbandoned Status = "abandoned"
	// StatusRejected tasks failed permanently (unknown recipient).
	StatusRejected Status = "rejected"
)

// RetryTask is a notification delivery with its retry state. At most one task
// exists per idempotency key.
type RetryTask struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	IdempotencyKey string    `gorm:"column:idempotency_key;size:64;not null;uniqueIndex" json:"idempotency_key"`
	Recipient      string    `gorm:"column:recipient;size:255;not null" json:"recipient"`
	Purpose        string    `gorm:"column:purpose;size:100;not null" json:"purpose"`
	Subject        string    `gorm:"column:subject;size:255;not null" json:"subject"`
	Body           string    `gorm:"column:body;type:text;not null" json:"body"`
	Attempt        int       `gorm:"column:attempt;not null;default:0" json:"attempt"`
	MaxRetries     int       `gorm:"column:max_retries;not null" json:"max_retries"`
	NextAttemptAt  time.Time `gorm:"column:next_attempt_at;not null;index:idx_retry_task_due,priority:2" json:"next_attempt_at"`
	Status         Status    `gorm:"column:status;size:20;not null;index:idx_retry_task_due,priority:1" json:"status"`
	LastError      string    `gorm:"column:last_error;type:text" json:"last_error,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (RetryTask) TableName() string {
	return "notification_tasks"
}

// Terminal reports whether the task will never be attempted again.
func (t RetryTask) Terminal() bool {
	return t.Status != StatusPending
}

// IdempotencyKey derives the task key from recipient and purpose.
func IdempotencyKey(recipient, purpose string) string {
	return utils.HashKey(strings.ToLower(strings.TrimSpace(recipient)), purpose)
}
