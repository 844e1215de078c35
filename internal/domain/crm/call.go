package crm

import (
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CallType distinguishes phone calls from meetings
type CallType string

const (
	CallTypeCall    CallType = "call"
	CallTypeMeeting CallType = "meeting"
)

// CallStatus is the state of a scheduled interaction
type CallStatus string

const (
	CallStatusScheduled CallStatus = "scheduled"
	CallStatusCompleted CallStatus = "completed"
	CallStatusCancelled CallStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s CallStatus) IsValid() bool {
	switch s {
	case CallStatusScheduled, CallStatusCompleted, CallStatusCancelled:
		return true
	}
	return false
}

// Call is a phone call or meeting with a customer or lead
type Call struct {
	shared.OwnedEntity
	Subject         string
	CustomerID      *uuid.UUID
	LeadID          *uuid.UUID
	CallType        CallType
	Status          CallStatus
	ScheduledAt     *time.Time
	DurationMinutes int
	Notes           string
}

// NewCall schedules a call
func NewCall(userID uuid.UUID, subject string, callType CallType) (*Call, error) {
	c := &Call{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Status:      CallStatusScheduled,
	}
	if err := c.SetSubject(subject); err != nil {
		return nil, err
	}
	if err := c.SetType(callType); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSubject sets the subject line
func (c *Call) SetSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Call subject cannot be empty")
	}
	c.Subject = subject
	c.Touch()
	return nil
}

// SetType sets call or meeting; empty means call
func (c *Call) SetType(t CallType) error {
	switch t {
	case "":
		t = CallTypeCall
	case CallTypeCall, CallTypeMeeting:
	default:
		return shared.NewDomainError("INVALID_CALL_TYPE", "Call type must be call or meeting")
	}
	c.CallType = t
	c.Touch()
	return nil
}

// SetStatus sets the call status
func (c *Call) SetStatus(status CallStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown call status: "+string(status))
	}
	c.Status = status
	c.Touch()
	return nil
}

// SetDuration sets the duration in minutes
func (c *Call) SetDuration(minutes int) error {
	if minutes < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}
	c.DurationMinutes = minutes
	c.Touch()
	return nil
}

// IsCompleted reports a completed call
func (c *Call) IsCompleted() bool { return c.Status == CallStatusCompleted }
