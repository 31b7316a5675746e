package users

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeMissingIdentifier = "users_missing_identifier"
	TextCodeInvalidIdentifier = "users_invalid_identifier"
	TextCodeMissingCredential = "users_missing_credential"
	TextCodeEmptyPassword     = "users_empty_password"
	TextCodeConfirmMismatch   = "users_password_confirm_mismatch"
	TextCodeUserExists        = "users_already_exists"
	TextCodeUserNotFound      = "users_not_found"
	TextCodeNotRecordOwner    = "users_not_record_owner"
	TextCodeForbiddenFields   = "users_forbidden_fields"
	TextCodeInvalidCreds      = "users_invalid_credentials"
	TextCodeEmptyPatch        = "users_empty_patch"
	TextCodeMissingCaller     = "users_missing_caller"
)

// ErrMissingIdentifier is returned when a route carries no identifier token.
var ErrMissingIdentifier = errors.New("missing user identifier", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingIdentifier).
	WithCode(errors.CodeBadRequest)

// ErrInvalidIdentifier is returned when an identifier token cannot be parsed.
var ErrInvalidIdentifier = errors.New("invalid user identifier", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidIdentifier).
	WithCode(errors.CodeBadRequest)

// ErrMissingCredential is returned when a new account has neither username
// nor email address.
var ErrMissingCredential = errors.New("missing username or email address", errors.CategoryValidation).
	WithTextCode(TextCodeMissingCredential).
	WithCode(errors.CodeBadRequest)

// ErrNoEmptyPassword is returned when a plaintext password is empty.
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrPasswordConfirmMismatch is returned when the password confirmation does
// not match the new password.
var ErrPasswordConfirmMismatch = errors.New("password confirmation does not match", errors.CategoryValidation).
	WithTextCode(TextCodeConfirmMismatch).
	WithCode(errors.CodeBadRequest)

// ErrUserExists is returned when a username or email is already taken.
var ErrUserExists = errors.New("user already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeConflict)

// ErrUserNotFound is returned when no record matches the identifier.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrNotRecordOwner is returned when a non administrator targets a record
// other than their own.
var ErrNotRecordOwner = errors.New("not allowed to modify this record", errors.CategoryAuthz).
	WithTextCode(TextCodeNotRecordOwner).
	WithCode(errors.CodeForbidden)

// ErrMismatchedHashAndPassword is returned when the given cleartext password
// does not verify against the stored hash. Distinct from a primitive failure,
// which surfaces as an internal error.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeForbidden)

// ErrEmptyPatch is returned when a patch request carries no fields.
var ErrEmptyPatch = errors.New("no fields to update", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPatch).
	WithCode(errors.CodeBadRequest)

// ErrMissingCaller is returned when no caller identity was injected by the
// authentication gateway.
var ErrMissingCaller = errors.New("missing caller identity", errors.CategoryAuth).
	WithTextCode(TextCodeMissingCaller).
	WithCode(errors.CodeUnauthorized)

// NewForbiddenFieldsError builds the all-or-nothing authorization denial,
// listing every field the caller may not touch.
func NewForbiddenFieldsError(fields []string) *errors.Error {
	return errors.New("fields not allowed for this caller", errors.CategoryAuthz).
		WithTextCode(TextCodeForbiddenFields).
		WithCode(errors.CodeForbidden).
		WithMetadata(map[string]any{
			"fields": fields,
		})
}

// IsNotFound reports whether err represents a missing record, ours or the
// repository layer's.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}

// IsDuplicateRecord reports whether err is a store-level unique constraint
// violation. This is the backstop for the advisory duplicate check racing a
// concurrent insert.
func IsDuplicateRecord(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
