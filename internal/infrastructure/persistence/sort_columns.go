package persistence

import "strings"

// sortColumns whitelists the columns a list endpoint may order by.
// Filter.OrderBy comes straight from the query string and never reaches
// SQL unless it is listed here.
type sortColumns map[string]bool

func newSortColumns(cols ...string) sortColumns {
	s := sortColumns{"id": true, "created_at": true, "updated_at": true}
	for _, c := range cols {
		s[c] = true
	}
	return s
}

// orderClause builds "<column> ASC|DESC". Unknown columns fall back to
// fallback and anything other than asc sorts descending.
func (s sortColumns) orderClause(column, dir, fallback string) string {
	column = strings.TrimSpace(column)
	if !s[column] {
		column = fallback
	}
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return column + " ASC"
	}
	return column + " DESC"
}

var (
	LeadSortFields          = newSortColumns("name", "email", "company", "source", "status", "interest_level")
	CustomerSortFields      = newSortColumns("name", "email", "company", "city")
	DealSortFields          = newSortColumns("title", "value", "stage", "expected_close_date")
	CallSortFields          = newSortColumns("subject", "status", "scheduled_at", "call_type")
	CategorySortFields      = newSortColumns("name")
	ProductSortFields       = newSortColumns("name", "sku", "catalogue", "unit_price", "cost_price", "quantity_in_stock")
	PriceBookSortFields     = newSortColumns("name", "is_active")
	QuotationSortFields     = newSortColumns("quotation_number", "quotation_date", "valid_until", "status", "total_amount")
	SalesOrderSortFields    = newSortColumns("order_number", "order_date", "status", "payment_status", "total_amount")
	VendorSortFields        = newSortColumns("name", "company")
	PurchaseOrderSortFields = newSortColumns("po_number", "order_date", "status", "total_amount")
	EmployeeSortFields      = newSortColumns("employee_code", "first_name", "last_name", "position", "salary", "hire_date", "status")
	DepartmentSortFields    = newSortColumns("name")
	PayrollSortFields       = newSortColumns("year", "month", "net_salary", "payment_date", "status")
	DailyLogSortFields      = newSortColumns("log_date", "sales_amount", "income_amount", "expense_amount")
)
