package lib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies every failure the composition core can surface.
type ErrorKind string

const (
	KindUnauthorized         ErrorKind = "unauthorized"
	KindForbidden            ErrorKind = "forbidden"
	KindNotFound             ErrorKind = "not_found"
	KindValidationFailed     ErrorKind = "validation_failed"
	KindDuplicateVariantCell ErrorKind = "duplicate_variant_cell"
	KindInvalidColorHex      ErrorKind = "invalid_color_hex"
	KindMalformedVariants    ErrorKind = "malformed_variants"
	KindNegativeStock        ErrorKind = "negative_stock"
	KindUnsupportedMediaType ErrorKind = "unsupported_media_type"
	KindPayloadTooLarge      ErrorKind = "payload_too_large"
	KindInvalidEncoding      ErrorKind = "invalid_encoding"
	KindMediaFailed          ErrorKind = "media_failed"
	KindStorageUnavailable   ErrorKind = "storage_unavailable"
	KindInUse                ErrorKind = "in_use"
	KindAlreadyCommitted     ErrorKind = "already_committed"
	KindNoDraft              ErrorKind = "no_draft"
)

// FieldError represents a clean validation error for APIs
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the one error type services return across the seller and catalog
// surfaces. Fields is populated for validation-class kinds; ProductID is
// populated for AlreadyCommitted.
type Error struct {
	Kind      ErrorKind    `json:"kind"`
	Msg       string       `json:"message"`
	Fields    []FieldError `json:"fields,omitempty"`
	ProductID string       `json:"product_id,omitempty"`
	Err       error        `json:"-"`
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// ValidationFailed builds a per-field validation error.
func ValidationFailed(fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Msg: "validation failed", Fields: fields}
}

// AlreadyCommitted reports the product id a prior commit of the same draft produced.
func AlreadyCommitted(productID string) *Error {
	return &Error{Kind: KindAlreadyCommitted, Msg: "draft already committed", ProductID: productID}
}

// AsError unwraps err to the domain error type if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if e, ok := AsError(err); ok {
		return e.Kind == kind
	}
	return false
}

// Retryable reports whether the client may safely retry the failed request.
func Retryable(err error) bool {
	return IsKind(err, KindStorageUnavailable) || IsKind(err, KindMediaFailed)
}

// pgFielder is the shape of pgdriver's server error: message fields are
// exposed through Field, keyed by the protocol's single-byte field codes.
type pgFielder interface {
	error
	Field(k byte) string
}

// SQLState extracts the SQLSTATE code from a PostgreSQL error, whether it
// came from pgdriver (the bun connector this server runs on) or from pgx.
// Returns "" when err carries no code.
func SQLState(err error) string {
	var fielder pgFielder
	if errors.As(err, &fielder) {
		return fielder.Field('C')
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// pgMessage returns the server-supplied error message, when one is present.
func pgMessage(err error) string {
	var fielder pgFielder
	if errors.As(err, &fielder) {
		return fielder.Field('M')
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return ""
}

// MapPgError translates PostgreSQL SQLSTATE failures into domain errors.
// Foreign-key violations on delete mean an external collaborator (cart,
// order rows) still references the product.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	switch SQLState(err) {
	case "23503": // foreign_key_violation
		return WrapError(KindInUse, "referenced by another record", err)
	case "23505": // unique_violation
		return WrapError(KindValidationFailed, "duplicate value", err)
	case "23502", "23514": // not_null_violation, check_violation
		msg := pgMessage(err)
		if msg == "" {
			msg = "constraint violation"
		}
		return WrapError(KindValidationFailed, msg, err)
	case "08000", "08003", "08006", "08001", "08004", "57P03",
		"53000", "53100", "53200", "53300":
		return WrapError(KindStorageUnavailable, "database unavailable", err)
	}
	return err
}
