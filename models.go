package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user record model. PasswordHash is excluded from JSON so no
// outward representation can carry it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username     string     `bun:"username,nullzero,unique" json:"username,omitempty"`
	Email        string     `bun:"email_address,nullzero,unique" json:"email_address,omitempty"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	DisplayName  string     `bun:"display_name" json:"display_name,omitempty"`
	Admin        bool       `bun:"admin" json:"admin"`
	Locked       bool       `bun:"locked" json:"locked"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identifier returns the value used to look the user up before insertion,
// username when present, email otherwise.
func (u *User) Identifier() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// HasLoginCredential reports whether the record carries at least one of
// username or email address.
func (u *User) HasLoginCredential() bool {
	return u.Username != "" || u.Email != ""
}

// Caller is the authenticated actor performing a request. It is established
// by the authentication gateway and trusted as-is.
type Caller struct {
	ID    uuid.UUID `json:"id"`
	Admin bool      `json:"admin"`
}

// IsZero reports whether the caller identity is missing.
func (c Caller) IsZero() bool {
	return c.ID == uuid.Nil
}

// Owns reports whether the caller is the owner of the target record.
func (c Caller) Owns(targetID uuid.UUID) bool {
	return c.ID != uuid.Nil && c.ID == targetID
}
