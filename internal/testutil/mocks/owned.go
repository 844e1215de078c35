// Package mocks holds testify mocks for the domain repository interfaces.
package mocks

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// OwnedRepo mocks shared.OwnedRepository for any entity type
type OwnedRepo[T any] struct {
	mock.Mock
}

func (m *OwnedRepo[T]) FindByID(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *OwnedRepo[T]) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *OwnedRepo[T]) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OwnedRepo[T]) Save(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *OwnedRepo[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
