package lib_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"tindahan_server/lib"
)

func TestAsError_Unwraps(t *testing.T) {
	base := lib.NewError(lib.KindNotFound, "product not found")
	wrapped := fmt.Errorf("fetching product: %w", base)

	e, ok := lib.AsError(wrapped)
	if !ok || e.Kind != lib.KindNotFound {
		t.Fatalf("want not_found through wrapping, got %v, %v", e, ok)
	}

	if _, ok := lib.AsError(errors.New("plain")); ok {
		t.Fatal("plain errors must not unwrap to the domain type")
	}
}

func TestIsKind(t *testing.T) {
	err := lib.NewError(lib.KindInUse, "referenced by a cart")
	if !lib.IsKind(err, lib.KindInUse) {
		t.Fatal("IsKind should match")
	}
	if lib.IsKind(err, lib.KindNotFound) {
		t.Fatal("IsKind should not match other kinds")
	}
	if lib.IsKind(nil, lib.KindNotFound) {
		t.Fatal("nil is no kind")
	}
}

func TestValidationFailed_Message(t *testing.T) {
	err := lib.ValidationFailed(
		lib.FieldError{Field: "price", Message: "must be a decimal number"},
		lib.FieldError{Field: "category", Message: "is required"},
	)

	want := "validation_failed: price must be a decimal number; category is required"
	if err.Error() != want {
		t.Fatalf("message: %q", err.Error())
	}
	if len(err.Fields) != 2 {
		t.Fatalf("fields: %+v", err.Fields)
	}
}

func TestAlreadyCommitted(t *testing.T) {
	err := lib.AlreadyCommitted("0d9f6b2e-1111-2222-3333-444455556666")
	if err.Kind != lib.KindAlreadyCommitted {
		t.Fatalf("kind: %s", err.Kind)
	}
	if err.ProductID == "" {
		t.Fatal("product id must be carried")
	}
}

func TestRetryable(t *testing.T) {
	if !lib.Retryable(lib.NewError(lib.KindStorageUnavailable, "redis down")) {
		t.Fatal("storage outages are retryable")
	}
	if lib.Retryable(lib.NewError(lib.KindValidationFailed, "bad input")) {
		t.Fatal("validation failures are not retryable")
	}
}

// wireError mimics the value-typed error the pgdriver connector returns,
// where message fields are read through Field keyed by protocol byte codes.
type wireError struct {
	fields map[byte]string
}

func (e wireError) Error() string       { return "ERROR: " + e.fields['M'] }
func (e wireError) Field(k byte) string { return e.fields[k] }

func TestSQLState(t *testing.T) {
	driverErr := wireError{fields: map[byte]string{'C': "23505", 'M': "duplicate key value"}}
	if got := lib.SQLState(driverErr); got != "23505" {
		t.Fatalf("pgdriver-shaped error: %q", got)
	}
	if got := lib.SQLState(fmt.Errorf("insert: %w", error(driverErr))); got != "23505" {
		t.Fatalf("wrapped driver error: %q", got)
	}
	if got := lib.SQLState(&pgconn.PgError{Code: "40001"}); got != "40001" {
		t.Fatalf("pgx error: %q", got)
	}
	if got := lib.SQLState(errors.New("plain")); got != "" {
		t.Fatalf("plain error: %q", got)
	}
}

func TestMapPgError_DriverErrors(t *testing.T) {
	cases := []struct {
		code string
		kind lib.ErrorKind
	}{
		{"23503", lib.KindInUse},
		{"23505", lib.KindValidationFailed},
		{"23514", lib.KindValidationFailed},
		{"08006", lib.KindStorageUnavailable},
		{"53300", lib.KindStorageUnavailable},
	}
	for _, tc := range cases {
		err := lib.MapPgError(wireError{fields: map[byte]string{'C': tc.code, 'M': "boom"}})
		if !lib.IsKind(err, tc.kind) {
			t.Fatalf("code %s: want %s, got %v", tc.code, tc.kind, err)
		}
	}

	err := lib.MapPgError(wireError{fields: map[byte]string{'C': "23514", 'M': "stock must be positive"}})
	if e, ok := lib.AsError(err); !ok || e.Msg != "stock must be positive" {
		t.Fatalf("server message not carried: %v", err)
	}
}

func TestMapPgError(t *testing.T) {
	cases := []struct {
		code string
		kind lib.ErrorKind
	}{
		{"23503", lib.KindInUse},
		{"23505", lib.KindValidationFailed},
		{"23502", lib.KindValidationFailed},
		{"23514", lib.KindValidationFailed},
		{"08006", lib.KindStorageUnavailable},
		{"53300", lib.KindStorageUnavailable},
		{"57P03", lib.KindStorageUnavailable},
	}
	for _, tc := range cases {
		err := lib.MapPgError(&pgconn.PgError{Code: tc.code, Message: "boom"})
		if !lib.IsKind(err, tc.kind) {
			t.Fatalf("code %s: want %s, got %v", tc.code, tc.kind, err)
		}
	}

	// Unclassified failures pass through untouched.
	plain := errors.New("something else")
	if got := lib.MapPgError(plain); got != plain {
		t.Fatalf("pass-through: %v", got)
	}
	if lib.MapPgError(nil) != nil {
		t.Fatal("nil stays nil")
	}
}
