package repository

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"flightops/internal/domain/errs"
)

// translateError maps gorm and driver errors onto the domain error kinds
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound(op, "record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Validation(op, "value already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteForeignKeyFailure(err):
		return errs.Conflict(op, "record is referenced by or references another record")
	default:
		return errs.Internal(op, err)
	}
}

// isSQLiteForeignKeyFailure catches the foreign key failures the sqlite
// dialector leaves untranslated. ON DELETE RESTRICT is enforced as a trigger
// constraint and reports SQLITE_CONSTRAINT_TRIGGER instead of
// SQLITE_CONSTRAINT_FOREIGNKEY.
func isSQLiteForeignKeyFailure(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return false
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return true
	case sqlite3.ErrConstraintTrigger:
		return strings.Contains(sqliteErr.Error(), "FOREIGN KEY")
	}
	return false
}
