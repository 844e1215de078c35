package shared

import (
	"fmt"
	"time"
)

// Document number prefixes
const (
	QuotationPrefix     = "QUO"
	SalesOrderPrefix    = "SO"
	PurchaseOrderPrefix = "PO"
)

// NewDocumentNumber builds a number like "SO-1718000000000" from the
// millisecond timestamp of now.
func NewDocumentNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}
