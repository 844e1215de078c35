package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appreport "github.com/crmdesk/backend/internal/application/report"
	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDigest() appreport.Digest {
	return appreport.Digest{
		UserID:   uuid.MustParse("6f1c3a1e-0000-4000-8000-000000000001"),
		Period:   report.PeriodWeek,
		Filename: "crm-report-week.txt",
		Content:  "Leads: 4",
	}
}

func TestNewWebhookSender_RequiresURL(t *testing.T) {
	_, err := NewWebhookSender(config.SchedulerConfig{})
	assert.ErrorIs(t, err, ErrWebhookURLRequired)
}

func TestWebhookSender_Send(t *testing.T) {
	var got digestPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hooks/digest", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender, err := NewWebhookSender(config.SchedulerConfig{WebhookURL: srv.URL + "/hooks/digest", WebhookToken: "s3cret"})
	require.NoError(t, err)
	sender.now = func() time.Time { return time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC) }

	require.NoError(t, sender.Send(context.Background(), testDigest()))

	assert.Equal(t, "Bearer s3cret", auth)
	assert.Equal(t, "report.weekly_digest", got.Event)
	assert.Equal(t, "6f1c3a1e-0000-4000-8000-000000000001", got.UserID)
	assert.Equal(t, "week", got.Period)
	assert.Equal(t, "crm-report-week.txt", got.Filename)
	assert.Equal(t, "Leads: 4", got.Content)
	assert.Equal(t, "2026-03-06T20:00:00Z", got.SentAt)
}

func TestWebhookSender_ClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_PAYLOAD","message":"content too large"}}`))
	}))
	defer srv.Close()

	sender, err := NewWebhookSender(config.SchedulerConfig{WebhookURL: srv.URL})
	require.NoError(t, err)

	err = sender.Send(context.Background(), testDigest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
	assert.Contains(t, err.Error(), "content too large")
}

func TestWebhookSender_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender, err := NewWebhookSender(config.SchedulerConfig{WebhookURL: srv.URL})
	require.NoError(t, err)
	sender.client.SetRetryWaitTime(time.Millisecond)

	require.NoError(t, sender.Send(context.Background(), testDigest()))
	assert.Equal(t, int32(2), calls.Load())
}
