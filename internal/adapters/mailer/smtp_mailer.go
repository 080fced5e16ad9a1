package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// ErrInvalidRecipient is returned for a malformed delivery address
var ErrInvalidRecipient = errors.New("invalid recipient address")

// SMTPMailer delivers samples into a training inbox through an SMTP relay
type SMTPMailer struct {
	address      string
	envelopeFrom string
	helo         string
	timeout      time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewSMTPMailer creates a mailer for the relay at address
func NewSMTPMailer(address, envelopeFrom, helo string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		address:      address,
		envelopeFrom: envelopeFrom,
		helo:         helo,
		timeout:      30 * time.Second,
		logger:       logger,
		now:          time.Now,
	}
}

// Deliver renders sample and sends it to the recipient to
func (m *SMTPMailer) Deliver(ctx context.Context, to string, sample core.EmailSample) error {
	rcpt, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", m.address)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP relay: %w", err)
	}

	deadline := m.now().Add(m.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(m.helo); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(m.envelopeFrom, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := c.Rcpt(rcpt.Address, nil); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := bytes.NewReader(RenderMessage(sample, rcpt.Address, m.now())).WriteTo(wc); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		m.logger.Warn("QUIT command failed", zap.Error(err))
	}

	m.logger.Info("Sample delivered",
		zap.String("to", rcpt.Address),
		zap.String("sample_id", sample.ID),
		zap.Bool("is_phishing", sample.IsPhishing))

	return nil
}
