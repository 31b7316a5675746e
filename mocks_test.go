package users_test

import (
	"context"

	users "github.com/goliatone/go-users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements users.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	args := m.Called(ctx, id)
	var user *users.User
	if v := args.Get(0); v != nil {
		user = v.(*users.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) FindByIdentifier(ctx context.Context, identifier string) (*users.User, error) {
	args := m.Called(ctx, identifier)
	var user *users.User
	if v := args.Get(0); v != nil {
		user = v.(*users.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, limit, offset int) ([]*users.User, error) {
	args := m.Called(ctx, limit, offset)
	var records []*users.User
	if v := args.Get(0); v != nil {
		records = v.([]*users.User)
	}
	return records, args.Error(1)
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) Register(ctx context.Context, user *users.User) (*users.User, error) {
	args := m.Called(ctx, user)
	var record *users.User
	if v := args.Get(0); v != nil {
		record = v.(*users.User)
	}
	return record, args.Error(1)
}

func (m *MockUserStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserStore) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ users.UserStore = (*MockUserStore)(nil)

// MockPasswordAuthenticator implements users.PasswordAuthenticator
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordAuthenticator) ComparePasswordAndHash(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

var _ users.PasswordAuthenticator = (*MockPasswordAuthenticator)(nil)
