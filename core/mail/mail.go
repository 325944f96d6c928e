package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/jordan-wright/email"
)

// ErrRecipientUnknown is returned when the relay rejects the recipient
// mailbox permanently. Deliveries failing with it must not be retried.
var ErrRecipientUnknown = errors.New("recipient unknown")

// Message is a plain text mail.
type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	cfg  Config
	send func(e *email.Email, addr string, a smtp.Auth) error
}

// NewSMTPSender creates a sender for cfg.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		cfg: cfg,
		send: func(e *email.Email, addr string, a smtp.Auth) error {
			return e.Send(addr, a)
		},
	}
}

// Send delivers msg. Rejected mailboxes are reported as ErrRecipientUnknown,
// every other failure is transient.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{msg.Recipient}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := s.send(e, addr, auth)
		if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = s.send(e, addr, nil)
		}
		done <- err
	}()

	select {
	case err := <-done:
		return classify(err)
	case <-ctx.Done():
		return fmt.Errorf("failed to send mail to %s: %w", msg.Recipient, ctx.Err())
	}
}

// classify maps permanent mailbox rejections to ErrRecipientUnknown.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 550, 551, 553:
			return fmt.Errorf("%w: %s", ErrRecipientUnknown, tpErr.Msg)
		}
	}
	return fmt.Errorf("failed to send mail: %w", err)
}
