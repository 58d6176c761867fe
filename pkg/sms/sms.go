// Package sms delivers one-time passwords and alerts through an outbound SMS
// gateway. Twilio is the only real backend; when credentials are missing the
// log sender is used so development flows keep working.
package sms

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sender exposes the SMS operations the application needs.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
	SendMessage(ctx context.Context, phone, message string) error
}

// Config carries the Twilio gateway credentials.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string // defaults to the public Twilio API
}

func (c Config) configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// NewSender returns a Twilio-backed sender when credentials are configured,
// otherwise a sender that only logs outbound messages.
func NewSender(cfg Config, log *zap.Logger) Sender {
	if cfg.configured() {
		return NewTwilioClient(cfg, log)
	}
	log.Warn("sms gateway not configured, outbound messages will only be logged")
	return &LogSender{log: log}
}

// LogSender is the development fallback; it writes every message to the log
// instead of delivering it.
type LogSender struct {
	log *zap.Logger
}

func (s *LogSender) SendOTP(_ context.Context, phone, code string) error {
	s.log.Info("mock sms", zap.String("to", phone), zap.String("otp", code))
	return nil
}

func (s *LogSender) SendMessage(_ context.Context, phone, message string) error {
	s.log.Info("mock sms", zap.String("to", phone), zap.String("message", message))
	return nil
}

func otpBody(code string) string {
	return fmt.Sprintf("Your verification code is: %s\nValid for 10 minutes.\n\n- Inventory System", code)
}
