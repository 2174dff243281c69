package users

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// User is an entry of the login app's user directory.
type User struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // bcrypt, never serialise to clients
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Blocked      bool      `json:"blocked,omitempty"`
	LastLogin    time.Time `json:"last_login,omitempty"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// dummyHash keeps unknown-email logins about as slow as wrong-password logins.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// Authenticate verifies email and password against the directory. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func Authenticate(repo UserRepo, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	user, err := repo.GetByEmail(email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Blocked {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, apperrors.ErrUserBlocked)
	}
	if err := repo.SetLastLogin(user.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("[users Authenticate] failed to record login: %w", err)
	}
	return user, nil
}
