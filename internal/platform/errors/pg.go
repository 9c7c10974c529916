package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the repos care about
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlNotNullViolation    = "23502"
	sqlCheckViolation      = "23514"
	sqlExclusionViolation  = "23P01"
	sqlStringTooLong       = "22001"
	sqlBadTextValue        = "22P02"
	sqlSerialization       = "40001"
	sqlDeadlock            = "40P01"
	sqlLockNotAvailable    = "55P03"
	sqlReadOnly            = "25006"
	sqlCannotConnectNow    = "57P03"
)

var codeBySQLState = map[string]ErrorCode{
	sqlUniqueViolation:     ErrorCodeDuplicateKey,
	sqlExclusionViolation:  ErrorCodeConflict,
	sqlForeignKeyViolation: ErrorCodeInvalidArgument,
	sqlStringTooLong:       ErrorCodeInvalidArgument,
	sqlBadTextValue:        ErrorCodeInvalidArgument,
	sqlNotNullViolation:    ErrorCodeValidation,
	sqlCheckViolation:      ErrorCodeValidation,
	sqlReadOnly:            ErrorCodeUnavailable,
	sqlCannotConnectNow:    ErrorCodeUnavailable,
}

// PgError returns the *pgconn.PgError inside err, if any
func PgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	if stderrs.As(err, &pg) {
		return pg, true
	}
	return nil, false
}

// IsSQLState reports whether err is a postgres error with the given SQLSTATE
func IsSQLState(err error, state string) bool {
	pg, ok := PgError(err)
	return ok && pg.Code == state
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, sqlUniqueViolation) }

// IsCheckViolation reports a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, sqlCheckViolation) }

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, sqlForeignKeyViolation) }

// IsRetryable reports contention errors a caller may retry as a whole transaction
func IsRetryable(err error) bool {
	pg, ok := PgError(err)
	if !ok {
		return false
	}
	switch pg.Code {
	case sqlSerialization, sqlDeadlock, sqlLockNotAvailable:
		return true
	}
	return false
}

// FromPostgres classifies a database error under msg; nil stays nil
// errors that are already ours keep their code, everything unmapped is ErrorCodeDB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code := ErrorCodeDB
	if pg, ok := PgError(err); ok {
		if c, ok := codeBySQLState[pg.Code]; ok {
			code = c
		}
		if pg.ColumnName != "" && (code == ErrorCodeValidation || code == ErrorCodeInvalidArgument) {
			return &Error{code: code, msg: msg, field: pg.ColumnName, cause: err}
		}
	}
	return &Error{code: code, msg: msg, cause: err}
}
