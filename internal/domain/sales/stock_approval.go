package sales

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ApprovalStatus is the state of a stock approval
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// StockApproval gates the stock deduction of a confirmed order
type StockApproval struct {
	shared.OwnedEntity
	SalesOrderID uuid.UUID
	Status       ApprovalStatus
	ApprovedBy   *uuid.UUID
	ApprovedAt   *time.Time
	Notes        string
}

// NewStockApproval opens a pending approval for an order
func NewStockApproval(userID, salesOrderID uuid.UUID) *StockApproval {
	return &StockApproval{
		OwnedEntity:  shared.NewOwnedEntity(userID),
		SalesOrderID: salesOrderID,
		Status:       ApprovalStatusPending,
	}
}

// IsPending reports whether a decision is still outstanding
func (a *StockApproval) IsPending() bool {
	return a.Status == ApprovalStatusPending
}

// Approve records the approver and time
func (a *StockApproval) Approve(approvedBy uuid.UUID, at time.Time, notes string) error {
	if !a.IsPending() {
		return shared.NewDomainError("INVALID_STATE", "Stock approval is already "+string(a.Status))
	}
	a.Status = ApprovalStatusApproved
	a.ApprovedBy = &approvedBy
	a.ApprovedAt = &at
	if notes != "" {
		a.Notes = notes
	}
	a.Touch()
	return nil
}

// Reject closes the approval without moving stock
func (a *StockApproval) Reject(notes string) error {
	if !a.IsPending() {
		return shared.NewDomainError("INVALID_STATE", "Stock approval is already "+string(a.Status))
	}
	a.Status = ApprovalStatusRejected
	if notes != "" {
		a.Notes = notes
	}
	a.Touch()
	return nil
}
