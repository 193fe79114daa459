package entity

import (
	"time"
)

// User is the aggregate root for accounts.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserSummary is the public projection of a user embedded in events and registrations.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string // already hashed
	Role     *Role
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Role == nil
}
