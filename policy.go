package users

import (
	"sort"

	"github.com/google/uuid"
)

// Field names a caller may propose in a patch request. They double as the
// store column names, so the gate is the single source of truth for what a
// partial update may touch.
const (
	FieldDisplayName  = "display_name"
	FieldPasswordHash = "password_hash"
	FieldAdmin        = "admin"
	FieldLocked       = "locked"
)

var baseMutableFields = map[string]bool{
	FieldDisplayName:  true,
	FieldPasswordHash: true,
}

var adminMutableFields = map[string]bool{
	FieldAdmin:  true,
	FieldLocked: true,
}

// AllowedFields returns the set of record fields the caller may mutate.
func AllowedFields(caller Caller) map[string]bool {
	allowed := make(map[string]bool, len(baseMutableFields)+len(adminMutableFields))
	for field := range baseMutableFields {
		allowed[field] = true
	}

	if caller.Admin {
		for field := range adminMutableFields {
			allowed[field] = true
		}
	}

	return allowed
}

// AuthorizePatch decides whether the caller may apply the proposed fields to
// the target record. Non administrators may only patch their own record.
// Evaluation is all or nothing: a single disallowed key rejects the whole
// request, with every offending field named in the error metadata.
func AuthorizePatch(caller Caller, targetID uuid.UUID, fields map[string]any) error {
	if caller.IsZero() {
		return ErrMissingCaller
	}

	if !caller.Admin && !caller.Owns(targetID) {
		return ErrNotRecordOwner
	}

	allowed := AllowedFields(caller)

	var rejected []string
	for field := range fields {
		if !allowed[field] {
			rejected = append(rejected, field)
		}
	}

	if len(rejected) > 0 {
		sort.Strings(rejected)
		return NewForbiddenFieldsError(rejected)
	}

	return nil
}
