package persistence

import (
	"errors"
	"fmt"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto domain errors. resource names the
// entity for not-found messages.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError("ALREADY_EXISTS", resource+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.InvalidInput("Referenced record does not exist")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return shared.NewDomainError("ALREADY_EXISTS", resource+" already exists")
		case pgForeignKeyViolation:
			return shared.InvalidInput("Referenced record does not exist")
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return shared.NewDomainError("ALREADY_EXISTS", resource+" already exists")
		case sqlite3.ErrConstraintForeignKey:
			return shared.InvalidInput("Referenced record does not exist")
		}
	}

	return fmt.Errorf("%s: %w", resource, err)
}
