package directory

import (
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced alongside error messages in API responses.
const (
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeDuplicateCredential = "DUPLICATE_CREDENTIAL"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodeProfileNotFound     = "PROFILE_NOT_FOUND"
	TextCodeStoreUnavailable    = "STORE_UNAVAILABLE"
)

// ErrMismatchedHashAndPassword is the constant failure for bad login
// credentials. It deliberately does not distinguish an unknown email from
// a wrong password.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrDuplicateCredential is returned when registering an email that already
// has a credential record.
var ErrDuplicateCredential = errors.New("email is already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateCredential)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrProfileNotFound is returned by profile operations on an unknown id.
var ErrProfileNotFound = errors.New("profile not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProfileNotFound)

// ErrTokenExpired flags a token presented past its expiry.
var ErrTokenExpired = errors.New("authentication token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed flags a token that failed signature or shape checks.
var ErrTokenMalformed = errors.New("authentication token is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrNoEmptyString rejects empty input where a value is required
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "authentication token is invalid") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolation reports whether err is a store-level unique constraint
// failure. Both the sqlite and postgres drivers surface these as driver
// errors with stable message prefixes.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storeError wraps a collaborator failure. These are surfaced as-is and
// never retried by this layer.
func storeError(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryOperation, msg).
		WithTextCode(TextCodeStoreUnavailable)
}
