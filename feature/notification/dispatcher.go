package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theaterwecker/core/mail"
	"theaterwecker/core/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecipientUnknown marks a permanent delivery failure.
var ErrRecipientUnknown = mail.ErrRecipientUnknown

// ErrTaskNotFound is returned by Get for unknown keys.
var ErrTaskNotFound = errors.New("notification task not found")

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Request asks for a notification to be delivered once per recipient and purpose.
type Request struct {
	Recipient string `json:"recipient"`
	Purpose   string `json:"purpose"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Outcome is the result of a single delivery attempt.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeRetry     Outcome = "retry"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomeRejected  Outcome = "rejected"
)

// ProcessReport counts the outcomes of a processing run.
type ProcessReport struct {
	Delivered int `json:"delivered"`
	Retried   int `json:"retried"`
	Abandoned int `json:"abandoned"`
	Rejected  int `json:"rejected"`
}

// Dispatcher delivers notifications and retries transient failures with
// exponential backoff.
type Dispatcher struct {
	db      *gorm.DB
	sender  Sender
	cfg     Config
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(db *gorm.DB, sender Sender, cfg Config, rec *metrics.Recorder, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Dispatcher{db: db, sender: sender, cfg: cfg, metrics: rec, logger: logger}
}

// Migrate creates or updates the task table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RetryTask{})
}

// Enqueue stores a task for req unless one with the same idempotency key
// exists. It returns the stored task and whether it was created.
func (d *Dispatcher) Enqueue(ctx context.Context, req Request, now time.Time) (*RetryTask, bool, error) {
	if req.Recipient == "" || req.Purpose == "" {
		return nil, false, errors.New("recipient and purpose are required")
	}

	key := IdempotencyKey(req.Recipient, req.Purpose)
	task := RetryTask{
		IdempotencyKey: key,
		Recipient:      req.Recipient,
		Purpose:        req.Purpose,
		Subject:        req.Subject,
		Body:           req.Body,
		MaxRetries:     d.cfg.MaxRetries,
		NextAttemptAt:  now.UTC(),
		Status:         StatusPending,
	}

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "idempotency_key"}}, DoNothing: true}).
		Create(&task)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to enqueue notification: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return &task, true, nil
	}

	stored, err := d.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// Get loads a task by idempotency key.
func (d *Dispatcher) Get(ctx context.Context, key string) (*RetryTask, error) {
	var task RetryTask
	err := d.db.WithContext(ctx).Where("idempotency_key = ?", key).Take(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notification task: %w", err)
	}
	return &task, nil
}

// ProcessDue attempts every pending task whose next attempt is due.
func (d *Dispatcher) ProcessDue(ctx context.Context, now time.Time) (ProcessReport, error) {
	var report ProcessReport

	limit := d.cfg.BatchSize
	if limit <= 0 {
		limit = 100
	}

	var tasks []RetryTask
	err := d.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", StatusPending, now.UTC()).
		Order("next_attempt_at ASC, id ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return report, fmt.Errorf("failed to load due notifications: %w", err)
	}

	for i := range tasks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, err := d.Attempt(ctx, &tasks[i], now)
		if err != nil {
			return report, err
		}
		switch outcome {
		case OutcomeDelivered:
			report.Delivered++
		case OutcomeRetry:
			report.Retried++
		case OutcomeAbandoned:
			report.Abandoned++
		case OutcomeRejected:
			report.Rejected++
		}
	}

	return report, nil
}

// Attempt sends task once and records the outcome. The returned error is
// only set when the outcome could not be stored.
func (d *Dispatcher) Attempt(ctx context.Context, task *RetryTask, now time.Time) (Outcome, error) {
	l := d.logger.With(zap.String("idempotency_key", task.IdempotencyKey), zap.Int("attempt", task.Attempt))

	sendErr := d.sender.Send(ctx, mail.Message{Recipient: task.Recipient, Subject: task.Subject, Body: task.Body})

	var outcome Outcome
	switch {
	case sendErr == nil:
		outcome = OutcomeDelivered
		task.Status = StatusDelivered
		task.LastError = ""
		l.Info("Notification delivered")

	case errors.Is(sendErr, ErrRecipientUnknown):
		outcome = OutcomeRejected
		task.Status = StatusRejected
		task.LastError = sendErr.Error()
		l.Warn("Notification rejected, recipient unknown", zap.Error(sendErr))

	case task.Attempt >= task.MaxRetries:
		outcome = OutcomeAbandoned
		task.Status = StatusAbandoned
		task.LastError = sendErr.Error()
		l.Error("Notification abandoned after exhausting retries",
			zap.Int("max_retries", task.MaxRetries),
			zap.Error(sendErr))

	default:
		outcome = OutcomeRetry
		delay := RetryDelay(d.cfg.BaseDelay(), task.Attempt)
		task.NextAttemptAt = now.UTC().Add(delay)
		task.Attempt++
		task.LastError = sendErr.Error()
		l.Warn("Notification failed, retry scheduled",
			zap.Duration("delay", delay),
			zap.Time("next_attempt_at", task.NextAttemptAt),
			zap.Error(sendErr))
	}

	d.metrics.Delivery(string(outcome))

	err := d.db.WithContext(ctx).
		Model(task).
		Select("status", "attempt", "next_attempt_at", "last_error").
		Updates(task).Error
	if err != nil {
		return outcome, fmt.Errorf("failed to store notification outcome: %w", err)
	}
	return outcome, nil
}

// MaxRetryDelay caps the wait between two attempts.
const MaxRetryDelay = 30 * 24 * time.Hour

// RetryDelay returns the delay before retry number attempt+1: base * 2^attempt,
// capped at MaxRetryDelay.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = max(base, MaxRetryDelay)
	b.MaxElapsedTime = 0
	b.Reset()

	delay := b.NextBackOff()
	for i := 0; i < attempt; i++ {
		delay = b.NextBackOff()
	}
	return delay
}
