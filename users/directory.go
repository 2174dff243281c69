package users

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DirectoryEntry is one user as written in a users file. Exactly one of
// Password and PasswordHash is expected; plain passwords are hashed on load.
type DirectoryEntry struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	Blocked      bool   `yaml:"blocked"`
}

type directoryFile struct {
	Users []DirectoryEntry `yaml:"users"`
}

// DemoDirectory is used when no users file is configured.
var DemoDirectory = []DirectoryEntry{
	{ID: "1", Email: "user@example.com", Password: "password123"},
	{ID: "2", Email: "admin@example.com", Password: "admin123"},
}

// LoadDirectoryFile parses a YAML users file:
//
//	users:
//	  - id: "1"
//	    email: user@example.com
//	    password_hash: $2a$10$...
func LoadDirectoryFile(path string) ([]DirectoryEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[users LoadDirectoryFile] %w", err)
	}
	var f directoryFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("[users LoadDirectoryFile] invalid users file %s: %w", path, err)
	}
	return f.Users, nil
}

// Seed stores every entry in repo, hashing plain passwords.
func Seed(repo UserRepo, entries []DirectoryEntry) error {
	for i, e := range entries {
		if e.Email == "" {
			return fmt.Errorf("[users Seed] entry %d has no email", i)
		}
		hash := e.PasswordHash
		if hash == "" {
			if e.Password == "" {
				return fmt.Errorf("[users Seed] %s has neither password nor password_hash", e.Email)
			}
			var err error
			if hash, err = HashPassword(e.Password); err != nil {
				return fmt.Errorf("[users Seed] failed to hash password for %s: %w", e.Email, err)
			}
		}
		user := &User{
			ID:           e.ID,
			Email:        e.Email,
			PasswordHash: hash,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Blocked:      e.Blocked,
		}
		if err := repo.Upsert(user); err != nil {
			return fmt.Errorf("[users Seed] failed to store %s: %w", e.Email, err)
		}
	}
	return nil
}
