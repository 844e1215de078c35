// Package notification delivers weekly report digests outside the process.
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	appreport "github.com/crmdesk/backend/internal/application/report"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
)

const defaultWebhookTimeout = 15 * time.Second

// ErrWebhookURLRequired is returned when a webhook sender has no target
var ErrWebhookURLRequired = errors.New("webhook url is required")

// digestPayload is the JSON body posted for every digest
type digestPayload struct {
	Event    string `json:"event"`
	UserID   string `json:"user_id"`
	Period   string `json:"period"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
	SentAt   string `json:"sent_at"`
}

type webhookError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WebhookSender posts digests as JSON to a configured URL
type WebhookSender struct {
	client *resty.Client
	url    string
	now    func() time.Time
}

// NewWebhookSender builds a resty backed sender. A token, when set, is sent
// as a bearer Authorization header.
func NewWebhookSender(cfg config.SchedulerConfig) (*WebhookSender, error) {
	if cfg.WebhookURL == "" {
		return nil, ErrWebhookURLRequired
	}

	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultWebhookTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.WebhookToken != "" {
		client.SetAuthToken(cfg.WebhookToken)
	}

	return &WebhookSender{client: client, url: cfg.WebhookURL, now: time.Now}, nil
}

// Send implements report.DigestSender
func (s *WebhookSender) Send(ctx context.Context, d appreport.Digest) error {
	payload := digestPayload{
		Event:    "report.weekly_digest",
		UserID:   d.UserID.String(),
		Period:   string(d.Period),
		Filename: d.Filename,
		Content:  d.Content,
		SentAt:   s.now().UTC().Format(time.RFC3339),
	}

	apiErr := new(webhookError)
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(apiErr).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("post digest: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		if apiErr.Error.Message != "" {
			return fmt.Errorf("digest webhook error: status=%d, message=%s", resp.StatusCode(), apiErr.Error.Message)
		}
		return fmt.Errorf("digest webhook error: status=%d", resp.StatusCode())
	}
	return nil
}

var _ appreport.DigestSender = (*WebhookSender)(nil)
