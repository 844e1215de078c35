// Package models contains the GORM persistence models. Domain entities carry no
// ORM tags; each model converts to and from its entity with ToDomain and FromDomain.
//
//   - base.go: BaseModel and OwnedModel
//   - identity.go, company.go: users and company settings
//   - crm.go: leads, customers, deals, calls
//   - catalog.go: categories, products, price books
//   - sales.go: quotations, sales orders, line items, stock approvals
//   - purchasing.go: vendors, purchase orders
//   - hr.go: employees, departments, payroll
//   - bookkeeping.go: daily logs
package models

// All lists every model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&CompanySettingsModel{},
		&LeadModel{},
		&CustomerModel{},
		&DealModel{},
		&CallModel{},
		&CategoryModel{},
		&ProductModel{},
		&PriceBookModel{},
		&PriceBookItemModel{},
		&QuotationModel{},
		&QuotationItemModel{},
		&SalesOrderModel{},
		&SalesOrderItemModel{},
		&StockApprovalModel{},
		&VendorModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
		&DepartmentModel{},
		&EmployeeModel{},
		&DepartmentMemberModel{},
		&PayrollRecordModel{},
		&DailyLogModel{},
	}
}
