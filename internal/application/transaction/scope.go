// Package transaction defines the unit of work used by services that must
// change more than one aggregate atomically.
package transaction

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/crmdesk/backend/internal/domain/sales"
)

// Scope runs a function inside a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories exposes the repositories that take part in multi-aggregate writes.
// All repositories returned share the same underlying database transaction.
//
//   - Leads and Customers: lead conversion writes the new customer and the lead status.
//   - Products, SalesOrders and StockApprovals: approving stock deducts product stock
//     and ships the order.
//   - Quotations: conversion writes the new order and the accepted quotation.
//   - PurchaseOrders: receiving a purchase order adds product stock.
type Repositories interface {
	Leads() crm.LeadRepository
	Customers() crm.CustomerRepository
	Products() catalog.ProductRepository
	Quotations() sales.QuotationRepository
	SalesOrders() sales.SalesOrderRepository
	StockApprovals() sales.StockApprovalRepository
	PurchaseOrders() purchasing.PurchaseOrderRepository
}

// RepositorySet is a plain Repositories value
type RepositorySet struct {
	LeadRepo          crm.LeadRepository
	CustomerRepo      crm.CustomerRepository
	ProductRepo       catalog.ProductRepository
	QuotationRepo     sales.QuotationRepository
	SalesOrderRepo    sales.SalesOrderRepository
	StockApprovalRepo sales.StockApprovalRepository
	PurchaseOrderRepo purchasing.PurchaseOrderRepository
}

func (r RepositorySet) Leads() crm.LeadRepository                     { return r.LeadRepo }
func (r RepositorySet) Customers() crm.CustomerRepository             { return r.CustomerRepo }
func (r RepositorySet) Products() catalog.ProductRepository           { return r.ProductRepo }
func (r RepositorySet) Quotations() sales.QuotationRepository         { return r.QuotationRepo }
func (r RepositorySet) SalesOrders() sales.SalesOrderRepository       { return r.SalesOrderRepo }
func (r RepositorySet) StockApprovals() sales.StockApprovalRepository { return r.StockApprovalRepo }
func (r RepositorySet) PurchaseOrders() purchasing.PurchaseOrderRepository {
	return r.PurchaseOrderRepo
}

// NoOpScope runs the function against the given repositories without a transaction.
// This is useful for testing.
type NoOpScope struct {
	repos RepositorySet
}

// NewNoOpScope creates a NoOpScope
func NewNoOpScope(repos RepositorySet) *NoOpScope {
	return &NoOpScope{repos: repos}
}

// Execute runs fn directly
func (s *NoOpScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s.repos)
}

var (
	_ Scope        = (*NoOpScope)(nil)
	_ Repositories = RepositorySet{}
)
