// Package notification delivers mails for the subscriber pipeline and retries
// transient failures.
//
// Every delivery is a RetryTask keyed by (recipient, purpose), so enqueuing
// the same notification twice is a no-op. A failed attempt is retried after
// base * 2^attempt (one minute, two, four, ...) until MaxRetries retries have
// failed, after which the task is abandoned and logged as an error. A
// recipient the relay does not know is rejected at once and never retried.
//
// # HTTP Endpoints
//
//   - POST /notifications : enqueue a notification.
//   - GET /notifications/:key : delivery state of a task.
package notification
