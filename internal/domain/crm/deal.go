package crm

import (
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStage is the pipeline stage of a deal
type DealStage string

const (
	DealStageProspecting   DealStage = "prospecting"
	DealStageQualification DealStage = "qualification"
	DealStageProposal      DealStage = "proposal"
	DealStageNegotiation   DealStage = "negotiation"
	DealStageClosedWon     DealStage = "closed_won"
	DealStageClosedLost    DealStage = "closed_lost"
)

// IsValid reports whether s is a known stage
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageProspecting, DealStageQualification, DealStageProposal,
		DealStageNegotiation, DealStageClosedWon, DealStageClosedLost:
		return true
	}
	return false
}

// Deal is a sales opportunity with an expected value
type Deal struct {
	shared.OwnedEntity
	Title             string
	CustomerID        *uuid.UUID
	Value             decimal.Decimal
	Stage             DealStage
	ExpectedCloseDate *time.Time
	Notes             string
}

// NewDeal creates a deal in the prospecting stage
func NewDeal(userID uuid.UUID, title string, value decimal.Decimal) (*Deal, error) {
	d := &Deal{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Stage:       DealStageProspecting,
	}
	if err := d.SetTitle(title); err != nil {
		return nil, err
	}
	if err := d.SetValue(value); err != nil {
		return nil, err
	}
	return d, nil
}

// SetTitle sets the deal title
func (d *Deal) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Deal title cannot be empty")
	}
	d.Title = title
	d.Touch()
	return nil
}

// SetValue sets the expected deal value
func (d *Deal) SetValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}
	d.Value = value
	d.Touch()
	return nil
}

// MoveTo changes the stage
func (d *Deal) MoveTo(stage DealStage) error {
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Unknown deal stage: "+string(stage))
	}
	d.Stage = stage
	d.Touch()
	return nil
}

// IsWon reports a closed-won deal
func (d *Deal) IsWon() bool { return d.Stage == DealStageClosedWon }

// IsLost reports a closed-lost deal
func (d *Deal) IsLost() bool { return d.Stage == DealStageClosedLost }

// IsActive reports a deal that is still open
func (d *Deal) IsActive() bool { return !d.IsWon() && !d.IsLost() }
