// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Email             string     `db:"email"`
	PasswordHash      string     `db:"password_hash"`
	Role              string     `db:"role"`
	IsVerified        bool       `db:"is_verified"`
	ResetToken        *string    `db:"reset_token"`
	ResetTokenExpires *time.Time `db:"reset_token_expires"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

const (
	RoleAdmin  = "Admin"
	RoleAuthor = "Author"
	RoleReader = "Reader"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
