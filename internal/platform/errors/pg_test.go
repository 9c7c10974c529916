package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		code  ErrorCode
		field string
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey, ""},
		{"check with column", &pgconn.PgError{Code: "23514", ColumnName: "end_time"}, ErrorCodeValidation, "end_time"},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, ErrorCodeConflict, ""},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrorCodeInvalidArgument, ""},
		{"read only", &pgconn.PgError{Code: "25006"}, ErrorCodeUnavailable, ""},
		{"other sqlstate", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB, ""},
		{"wrapped pg", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23505"}), ErrorCodeDuplicateKey, ""},
		{"plain", stderrs.New("broken pipe"), ErrorCodeDB, ""},
		{"ours kept", NotFoundf("appointment not found"), ErrorCodeNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromPostgres(tc.err, "op")
			e, ok := As(got)
			if !ok || e.Code() != tc.code || e.Field() != tc.field {
				t.Fatalf("got %v (ok=%v)", got, ok)
			}
		})
	}
	if FromPostgres(nil, "op") != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestPredicates(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsDuplicateKey(dup) || IsCheckViolation(dup) || IsForeignKeyViolation(dup) {
		t.Fatalf("predicates disagree")
	}
	if !IsRetryable(&pgconn.PgError{Code: "40001"}) || !IsRetryable(&pgconn.PgError{Code: "40P01"}) {
		t.Fatalf("contention must be retryable")
	}
	if IsRetryable(stderrs.New("timeout")) || IsRetryable(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("non contention must not be retryable")
	}
}
