// Package users implements an identity record service: account creation,
// retrieval, gated patching, idempotent deletion, password rotation and the
// idempotent bootstrap of a single administrator account. Token verification
// belongs to the authentication gateway in front of this service; handlers
// trust the caller identity it injects.
package users

// ServiceName and Version identify the service on the /info endpoint.
const (
	ServiceName = "go-users"
	Version     = "0.1.0"
)
