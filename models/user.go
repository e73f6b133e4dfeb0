// models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Subscription plan tiers
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null;size:120" json:"name"`
	Email    string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string  `json:"-"`
	GoogleID *string `gorm:"uniqueIndex" json:"-"`
	Avatar   string  `gorm:"size:255" json:"avatar"`
	Plan     string  `gorm:"default:'free';size:20" json:"plan"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	Achievements []Achievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. Accounts created through Google OAuth have no password and always
// fail this check.
func (u *User) CheckPassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
