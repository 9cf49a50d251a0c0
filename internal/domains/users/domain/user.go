package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
)

// User is a storefront account. Only the bcrypt hash of the password is kept.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user with a freshly hashed password.
func NewUser(username, password string, cost int) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := HashPassword(password, cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		errs := FieldErrors{}
		errs.Add(FieldPassword, msgPasswordTooLong)
		return nil, errs
	}
	if err != nil {
		return nil, err
	}
	return &User{Username: username, PasswordHash: hash}, nil
}

// HashPassword returns the bcrypt hash of password. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u == nil || u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate checks the invariants required for persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}
