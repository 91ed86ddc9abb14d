// Package mail sends account verification emails. The default sender only
// logs the verification link, which is what development deployments use; SMTP
// delivery is opt-in via configuration.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Sender delivers a verification link for the given address. Delivery is
// best-effort: registration proceeds even when Send fails.
type Sender interface {
	SendVerification(ctx context.Context, email, token string) error
}

// LogSender writes the verification URL to the log instead of sending mail.
type LogSender struct {
	logger  *logrus.Logger
	baseURL string
}

func NewLogSender(logger *logrus.Logger, baseURL string) *LogSender {
	return &LogSender{logger: logger, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LogSender) SendVerification(_ context.Context, email, token string) error {
	s.logger.WithFields(logrus.Fields{
		"email": email,
		"url":   fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, token),
	}).Info("verification email")
	return nil
}

// SMTPSender delivers verification mail over SMTP.
type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	from     string
	baseURL  string
	appTitle string
}

func NewSMTPSender(host string, port int, username, password, from, baseURL string) *SMTPSender {
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%d", host, port),
		auth:     smtp.PlainAuth("", username, password, host),
		from:     from,
		baseURL:  strings.TrimRight(baseURL, "/"),
		appTitle: "SL Notes",
	}
}

func (s *SMTPSender) SendVerification(_ context.Context, email, token string) error {
	url := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, token)
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + email,
		"Subject: Verify your " + s.appTitle + " account",
		"",
		"Welcome to " + s.appTitle + "!",
		"",
		"Open the link below to verify your email address:",
		url,
		"",
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

var (
	_ Sender = (*LogSender)(nil)
	_ Sender = (*SMTPSender)(nil)
)
