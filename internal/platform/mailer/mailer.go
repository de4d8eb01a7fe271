// Package mailer is the outbound notification boundary. Sending a budget,
// invoice or proposal delegates to an external mail relay; the services only
// care about success (then the entity moves to "sent") or failure (status is
// left untouched and the error surfaces).
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// Document is one outbound message about a business entity.
type Document struct {
	EntityID string // the budget/invoice/proposal being sent
	To       string
	Subject  string
	Body     string
}

// SendResult carries the relay's opaque send identifier.
type SendResult struct {
	MessageID string
}

// Sender delivers documents to clients.
type Sender interface {
	SendDocument(ctx context.Context, doc Document) (*SendResult, error)
}

// SMTPSender delivers via a plain SMTP relay.
type SMTPSender struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

// NewSMTPSender builds an SMTPSender; auth is skipped when username is empty.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	s := &SMTPSender{
		Addr: fmt.Sprintf("%s:%d", host, port),
		From: from,
	}
	if username != "" {
		s.Auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) SendDocument(ctx context.Context, doc Document) (*SendResult, error) {
	if doc.To == "" {
		return nil, fmt.Errorf("document %s has no recipient", doc.EntityID)
	}
	messageID := uuid.NewString()
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + doc.To,
		"Subject: " + doc.Subject,
		"Message-ID: <" + messageID + ">",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		doc.Body,
	}, "\r\n")

	if err := smtp.SendMail(s.Addr, s.Auth, s.From, []string{doc.To}, []byte(msg)); err != nil {
		return nil, fmt.Errorf("failed to send document %s: %w", doc.EntityID, err)
	}
	return &SendResult{MessageID: messageID}, nil
}

// NoopSender logs instead of sending. Used when no SMTP relay is configured,
// so development environments can still exercise the send flow.
type NoopSender struct {
	Logger *slog.Logger
}

var _ Sender = (*NoopSender)(nil)

func (s *NoopSender) SendDocument(ctx context.Context, doc Document) (*SendResult, error) {
	messageID := uuid.NewString()
	if s.Logger != nil {
		s.Logger.Info("Mail delivery skipped (no SMTP relay configured)",
			slog.String("entity_id", doc.EntityID),
			slog.String("to", doc.To),
			slog.String("subject", doc.Subject),
			slog.String("message_id", messageID),
		)
	}
	return &SendResult{MessageID: messageID}, nil
}
