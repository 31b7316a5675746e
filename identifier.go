package users

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// SelfIdentifier is the route alias that resolves to the caller's own id.
const SelfIdentifier = "self"

// ResolveRouteID turns a route supplied identifier token into a record id.
// The literal alias "self" resolves to the caller's own id; anything else
// must parse as a uuid.
func ResolveRouteID(token string, caller Caller) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, ErrMissingIdentifier
	}

	if token == SelfIdentifier {
		if caller.IsZero() {
			return uuid.Nil, ErrMissingCaller
		}
		return caller.ID, nil
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, ErrInvalidIdentifier
	}

	return id, nil
}

type identifierOption struct {
	column string
	value  string
}

// resolveUserIdentifier expands a free form lookup token into the ordered
// column probes used by FindByIdentifier: id when it parses as a uuid, email
// when it parses as an address, username always. If a value happens to match
// more than one column the first probe wins; callers should treat that as
// undefined behavior.
func resolveUserIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 3)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "email_address",
			value:  trimmed,
		})
	}

	options = append(options, identifierOption{
		column: "username",
		value:  trimmed,
	})

	return options
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
