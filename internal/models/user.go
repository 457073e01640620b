package models

import "time"

// User represents an account that can sign in and own or receive evolutions.
type User struct {
	Base
	Username            string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password            string     `gorm:"not null" json:"-"`
	Role                Role       `gorm:"size:20;not null;default:'colaborador'" json:"tipo_usuario"`
	IsActive            bool       `gorm:"default:true" json:"-"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"-"`
}

// IsLocked reports whether the account is inside a lockout window at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
