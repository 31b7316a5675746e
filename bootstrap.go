package users

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// DefaultAdminUsername is used when no administrator username is configured.
const DefaultAdminUsername = "admin"

// DefaultAdminPassword is the fail closed fallback applied when no
// administrator password is configured. Rotate it after first login.
const DefaultAdminPassword = "admin"

// BootstrapConfig carries the administrator account settings consumed at
// startup.
type BootstrapConfig struct {
	Username string
	Password string
}

// EnsureAdminAccount guarantees exactly one administrator account exists,
// creating it when absent. It runs once at process startup, is idempotent,
// and is best effort: failures are logged and swallowed, never retried, and
// never crash the process.
func EnsureAdminAccount(ctx context.Context, store UserStore, hasher PasswordAuthenticator, cfg BootstrapConfig, logger Logger) {
	if logger == nil {
		logger = defLogger{}
	}
	if hasher == nil {
		hasher = BcryptAuthenticator{}
	}

	username := cfg.Username
	if username == "" {
		username = DefaultAdminUsername
	}

	existing, err := store.FindByIdentifier(ctx, username)
	if err != nil && !errors.IsNotFound(err) {
		logger.Error("admin bootstrap lookup failed: %v", err)
		return
	}

	if existing != nil {
		logger.Info("admin account %s already exists", username)
		return
	}

	password := cfg.Password
	if password == "" {
		password = DefaultAdminPassword
	}

	hash, err := hasher.HashPassword(password)
	if err != nil {
		logger.Error("admin bootstrap could not hash password: %v", err)
		return
	}

	admin := &User{
		Username:     username,
		PasswordHash: hash,
		Admin:        true,
	}

	// Deterministic id so repeated bootstraps on a fresh store converge on
	// the same account identity.
	if id, err := hashid.NewUUID(username); err == nil {
		admin.ID = id
	}

	if _, err := store.Register(ctx, admin); err != nil {
		logger.Error("admin bootstrap could not create account: %v", err)
		return
	}

	logger.Info("admin account %s created", username)
}
