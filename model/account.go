package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NormalizeEmail lowercases and trims the email string
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var (
	ErrInvalidPassword = fmt.Errorf("invalid password")
	ErrUnauthorized    = fmt.Errorf("unauthorized")
)

// Account represents a login to the application. Authentication itself
// is handled upstream; this is only the session glue.
type Account struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"` // always stored lowercase
	FullName    string
	Password    string `gorm:"not null"` // bcrypt hash
	IsAdmin     bool   `gorm:"not null;default:false"`
	LastLoginAt *time.Time
	OwnerID     uint
}

// Normalize email before saving
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// SetPassword hashes and stores the given plain-text password.
func (a *Account) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hash)
	return nil
}

// CheckPassword compares a plain-text password against the stored hash.
func (a *Account) CheckPassword(plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// FindAccountByEmail looks up an account by (normalized) email.
func (s *Store) FindAccountByEmail(email string) (*Account, error) {
	var a Account
	err := s.db.Where("email = ?", NormalizeEmail(email)).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SaveAccount creates or updates an account.
func (s *Store) SaveAccount(a *Account) error {
	return s.db.Save(a).Error
}

func (s *Store) TouchLastLogin(a *Account) error {
	now := time.Now().UTC()
	a.LastLoginAt = &now
	return s.db.Model(a).Update("last_login_at", now).Error
}
