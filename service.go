package users

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultListLimit is applied when a list request carries no explicit limit.
// UnlimitedList disables the limit altogether.
const (
	DefaultListLimit = 500
	UnlimitedList    = -1
)

// UserStore is the slice of the repository the lifecycle service needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Count(ctx context.Context) (int, error)
	Register(ctx context.Context, user *User) (*User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// CreateUserMessage is the account registration payload.
type CreateUserMessage struct {
	Username string `json:"username"`
	Email    string `json:"email_address"`
	Password string `json:"password"`
}

func (m CreateUserMessage) Type() string { return "user.create" }

func (m CreateUserMessage) Validate() error {
	if m.Username == "" && m.Email == "" {
		return ErrMissingCredential
	}

	if m.Password == "" {
		return ErrNoEmptyPassword
	}

	if m.Email != "" {
		if err := validation.Validate(m.Email, is.Email); err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "invalid email address").
				WithCode(errors.CodeBadRequest)
		}
	}

	return nil
}

// Identifier returns the value used for the duplicate account lookup.
func (m CreateUserMessage) Identifier() string {
	if m.Username != "" {
		return m.Username
	}
	return m.Email
}

// RotatePasswordMessage is the password rotation payload. The current
// password authorizes the change, the confirmation guards against typos.
type RotatePasswordMessage struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

func (m RotatePasswordMessage) Type() string { return "user.rotate_password" }

func (m RotatePasswordMessage) Validate() error {
	err := validation.ValidateStruct(&m,
		validation.Field(&m.CurrentPassword, validation.Required),
		validation.Field(&m.NewPassword, validation.Required),
		validation.Field(&m.NewPasswordConfirm, validation.Required),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid password rotation request").
			WithCode(errors.CodeBadRequest)
	}

	if m.NewPasswordConfirm != m.NewPassword {
		return ErrPasswordConfirmMismatch
	}

	return nil
}

// UserService orchestrates the account lifecycle: registration, lookup,
// listing, gated patching, idempotent deletion and password rotation.
type UserService struct {
	store  UserStore
	hasher PasswordAuthenticator
	logger Logger
}

type UserServiceOption func(*UserService)

func NewUserService(store UserStore, opts ...UserServiceOption) *UserService {
	svc := &UserService{
		store:  store,
		hasher: BcryptAuthenticator{},
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}

	return svc
}

func WithServiceLogger(l Logger) UserServiceOption {
	return func(s *UserService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPasswordAuthenticator(h PasswordAuthenticator) UserServiceOption {
	return func(s *UserService) {
		if h != nil {
			s.hasher = h
		}
	}
}

// Create registers a new account. The duplicate lookup is advisory; the
// store's unique constraints are the real guarantee under concurrency.
func (s *UserService) Create(ctx context.Context, msg CreateUserMessage) (*User, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByIdentifier(ctx, msg.Identifier())
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing user").
			WithCode(errors.CodeInternal)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.HashPassword(msg.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     msg.Username,
		Email:        msg.Email,
		PasswordHash: hash,
		Admin:        false,
		Locked:       false,
	}

	created, err := s.store.Register(ctx, user)
	if err != nil {
		if IsDuplicateRecord(err) {
			return nil, ErrUserExists
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create user").
			WithCode(errors.CodeInternal)
	}

	s.logger.Info("user %s created", created.Identifier())

	return created, nil
}

// Get resolves the route identifier and fetches the record.
func (s *UserService) Get(ctx context.Context, token string, caller Caller) (*User, error) {
	id, err := ResolveRouteID(token, caller)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user").
			WithCode(errors.CodeInternal)
	}

	return user, nil
}

// List returns up to limit records starting at skip, in store native order.
// A limit of UnlimitedList disables the cap.
func (s *UserService) List(ctx context.Context, limit, skip int) ([]*User, error) {
	if skip < 0 {
		skip = 0
	}

	records, err := s.store.List(ctx, limit, skip)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users").
			WithCode(errors.CodeInternal)
	}

	return records, nil
}

// Count returns the total number of records irrespective of limit/skip.
func (s *UserService) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count users").
			WithCode(errors.CodeInternal)
	}

	return count, nil
}

// Delete removes the record keyed by the route identifier. Deleting an id
// that does not exist still succeeds.
func (s *UserService) Delete(ctx context.Context, token string, caller Caller) (uuid.UUID, error) {
	id, err := ResolveRouteID(token, caller)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete user").
			WithCode(errors.CodeInternal)
	}

	s.logger.Info("user %s deleted", id)

	return id, nil
}

// Patch applies a partial update after the field authorization gate clears
// every proposed field for the caller. No partial application occurs.
func (s *UserService) Patch(ctx context.Context, token string, caller Caller, fields map[string]any) (uuid.UUID, error) {
	id, err := ResolveRouteID(token, caller)
	if err != nil {
		return uuid.Nil, err
	}

	if len(fields) == 0 {
		return uuid.Nil, ErrEmptyPatch
	}

	if err := AuthorizePatch(caller, id, fields); err != nil {
		return uuid.Nil, err
	}

	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user").
			WithCode(errors.CodeInternal)
	}

	return id, nil
}

// RotatePassword verifies the current password and swaps in the new hash as
// a single field patch. Verification pre-authorizes the write, so the
// general field gate is not consulted here.
func (s *UserService) RotatePassword(ctx context.Context, token string, caller Caller, msg RotatePasswordMessage) (uuid.UUID, error) {
	if err := msg.Validate(); err != nil {
		return uuid.Nil, err
	}

	id, err := ResolveRouteID(token, caller)
	if err != nil {
		return uuid.Nil, err
	}

	if !caller.Admin && !caller.Owns(id) {
		return uuid.Nil, ErrNotRecordOwner
	}

	target, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user").
			WithCode(errors.CodeInternal)
	}

	if err := s.hasher.ComparePasswordAndHash(msg.CurrentPassword, target.PasswordHash); err != nil {
		return uuid.Nil, err
	}

	hash, err := s.hasher.HashPassword(msg.NewPassword)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.SetPassword(ctx, id, hash); err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user password").
			WithCode(errors.CodeInternal)
	}

	s.logger.Info("password rotated for user %s", id)

	return id, nil
}
