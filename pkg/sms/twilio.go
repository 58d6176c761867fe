package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioClient is a resty-backed implementation of Sender using the Twilio
// Messages REST API.
type TwilioClient struct {
	httpClient *resty.Client
	accountSID string
	fromNumber string
	log        *zap.Logger
}

func NewTwilioClient(cfg Config, log *zap.Logger) *TwilioClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetTimeout(15 * time.Second)

	return &TwilioClient{
		httpClient: restyClient,
		accountSID: cfg.AccountSID,
		fromNumber: cfg.FromNumber,
		log:        log,
	}
}

type messageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"message"`
}

func (c *TwilioClient) SendOTP(ctx context.Context, phone, code string) error {
	return c.SendMessage(ctx, phone, otpBody(code))
}

func (c *TwilioClient) SendMessage(ctx context.Context, phone, message string) error {
	result := new(messageResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   phone,
			"From": c.fromNumber,
			"Body": message,
		}).
		SetResult(result).
		SetError(result).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", c.accountSID))
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("twilio rejected message (status %d): %s", resp.StatusCode(), result.ErrorMessage)
	}

	c.log.Info("sms delivered", zap.String("to", phone), zap.String("sid", result.SID))
	return nil
}
