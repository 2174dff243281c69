package users

import "time"

type UserRepo interface {
	Upsert(user *User) error
	GetByEmail(email string) (*User, error)
	SetLastLogin(ID string, at time.Time) error
}
