package persistence

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerScope restricts a query to rows owned by userID
func OwnerScope(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// SearchScope matches search case-insensitively against any of the column
// expressions. LOWER/LIKE is used instead of ILIKE so the query also runs on sqlite.
func SearchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		cond := searchCondition(db, search, columns...)
		if cond == nil {
			return db
		}
		return db.Where(cond)
	}
}

// searchCondition builds the OR group behind SearchScope, nil when there is
// nothing to match
func searchCondition(db *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return nil
	}
	pattern := likePattern(search)
	cond := db.Session(&gorm.Session{NewDB: true})
	for i, col := range columns {
		expr := likeExpr(col)
		if i == 0 {
			cond = cond.Where(expr, pattern)
		} else {
			cond = cond.Or(expr, pattern)
		}
	}
	return cond
}

func likeExpr(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '\\'"
}

func likePattern(search string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range search {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
