package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Digest is one user's rendered weekly report
type Digest struct {
	UserID   uuid.UUID
	Period   report.Period
	Filename string
	Content  string
}

// DigestSender delivers a digest to its destination
type DigestSender interface {
	Send(ctx context.Context, d Digest) error
}

// UserLister enumerates the accounts that receive digests
type UserLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// WeeklyDigest renders the weekly report for every user and sends it
type WeeklyDigest struct {
	reports *ReportService
	users   UserLister
	sender  DigestSender
	logger  *zap.Logger
}

// NewWeeklyDigest creates a new WeeklyDigest
func NewWeeklyDigest(reports *ReportService, users UserLister, sender DigestSender, logger *zap.Logger) *WeeklyDigest {
	return &WeeklyDigest{
		reports: reports,
		users:   users,
		sender:  sender,
		logger:  logger,
	}
}

// Run sends one digest per user. A failure for one user does not stop the
// others; all failures are returned joined.
func (w *WeeklyDigest) Run(ctx context.Context) error {
	ids, err := w.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var errs []error
	sent := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		export, err := w.reports.ExportText(ctx, id, string(report.PeriodWeek))
		if err != nil {
			w.logger.Error("weekly digest render failed", zap.String("user_id", id.String()), zap.Error(err))
			errs = append(errs, fmt.Errorf("render digest for %s: %w", id, err))
			continue
		}
		d := Digest{UserID: id, Period: report.PeriodWeek, Filename: export.Filename, Content: export.Content}
		if err := w.sender.Send(ctx, d); err != nil {
			w.logger.Error("weekly digest delivery failed", zap.String("user_id", id.String()), zap.Error(err))
			errs = append(errs, fmt.Errorf("send digest for %s: %w", id, err))
			continue
		}
		sent++
	}

	w.logger.Info("weekly digest finished", zap.Int("users", len(ids)), zap.Int("sent", sent))
	return errors.Join(errs...)
}
