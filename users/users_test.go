package users_test

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/users"
	fakeuserrepo "github.com/jrsteele09/go-oauth-demo-apps/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepo(t *testing.T) *fakeuserrepo.FakeUserRepo {
	t.Helper()
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, users.DemoDirectory))
	return repo
}

func TestAuthenticate(t *testing.T) {
	repo := seededRepo(t)

	user, err := users.Authenticate(repo, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)

	stored, err := repo.GetByEmail("user@example.com")
	require.NoError(t, err)
	assert.False(t, stored.LastLogin.IsZero())
}

func TestAuthenticateFailures(t *testing.T) {
	repo := seededRepo(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "user@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "password123"},
		{"empty password", "user@example.com", ""},
		{"other user's password", "admin@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Authenticate(repo, tt.email, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestBlockedUserCannotAuthenticate(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, []users.DirectoryEntry{{Email: "blocked@example.com", Password: "pw", Blocked: true}}))

	_, err := users.Authenticate(repo, "blocked@example.com", "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
}

func TestSeedStoresHashesOnly(t *testing.T) {
	repo := seededRepo(t)

	user, err := repo.GetByEmail("admin@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", user.PasswordHash)
	assert.True(t, users.CheckPasswordHash("admin123", user.PasswordHash))
}

func TestSeedAssignsIDs(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, []users.DirectoryEntry{{Email: "new@example.com", Password: "pw"}}))

	user, err := repo.GetByEmail("new@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestSeedRejectsEntriesWithoutPassword(t *testing.T) {
	err := users.Seed(fakeuserrepo.NewFakeUserRepo(), []users.DirectoryEntry{{Email: "a@example.com"}})
	assert.Error(t, err)
}

func TestLoadDirectoryFile(t *testing.T) {
	hash, err := users.HashPassword("s3cret")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users.yaml")
	content := "users:\n" +
		"  - id: \"42\"\n" +
		"    email: jane@example.com\n" +
		"    password_hash: " + hash + "\n" +
		"    first_name: Jane\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	entries, err := users.LoadDirectoryFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "42", entries[0].ID)
	assert.Equal(t, "Jane", entries[0].FirstName)

	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, entries))
	user, err := users.Authenticate(repo, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
}

func TestLoadDirectoryFileMissing(t *testing.T) {
	_, err := users.LoadDirectoryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
