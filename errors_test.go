package directory_test

import (
	"errors"
	"testing"

	directory "github.com/goliatone/go-directory"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{
			name:     "mismatched credentials",
			err:      directory.ErrMismatchedHashAndPassword,
			category: goerrors.CategoryAuth,
			textCode: directory.TextCodeInvalidCreds,
		},
		{
			name:     "duplicate credential",
			err:      directory.ErrDuplicateCredential,
			category: goerrors.CategoryConflict,
			textCode: directory.TextCodeDuplicateCredential,
		},
		{
			name:     "profile not found",
			err:      directory.ErrProfileNotFound,
			category: goerrors.CategoryNotFound,
			textCode: directory.TextCodeProfileNotFound,
		},
		{
			name:     "token expired",
			err:      directory.ErrTokenExpired,
			category: goerrors.CategoryAuth,
			textCode: directory.TextCodeTokenExpired,
		},
		{
			name:     "token malformed",
			err:      directory.ErrTokenMalformed,
			category: goerrors.CategoryAuth,
			textCode: directory.TextCodeTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
		})
	}
}

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured token expired error",
			err:      directory.ErrTokenExpired,
			expected: true,
		},
		{
			name:     "Legacy token expired error (string match)",
			err:      errors.New("some wrapper: token is expired"),
			expected: true,
		},
		{
			name:     "Different structured error",
			err:      directory.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "Different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := directory.IsTokenExpiredError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsMalformedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured malformed error",
			err:      directory.ErrTokenMalformed,
			expected: true,
		},
		{
			name:     "Legacy malformed error (string match)",
			err:      errors.New("token is malformed: could not base64 decode"),
			expected: true,
		},
		{
			name:     "Middleware missing token error",
			err:      errors.New("missing or malformed JWT"),
			expected: true,
		},
		{
			name:     "Unrelated error",
			err:      errors.New("database is on fire"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := directory.IsMalformedError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "sqlite message",
			err:      errors.New("UNIQUE constraint failed: credentials.email"),
			expected: true,
		},
		{
			name:     "postgres message",
			err:      errors.New(`duplicate key value violates unique constraint "credentials_email_key"`),
			expected: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, directory.IsUniqueViolation(tt.err))
		})
	}
}
