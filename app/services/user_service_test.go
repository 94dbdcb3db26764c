package services

import (
	"path/filepath"
	"testing"

	"kbase/app/models"
	"kbase/app/repo"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Entry{}))
	return gdb
}

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(repo.NewUserRepository(testDB(t)))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newUserService(t)

	u, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.False(t, u.IsAdmin)

	_, err = svc.Register("alice", "other")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	svc := newUserService(t)

	u, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", u.PasswordHash)
	require.NotContains(t, u.PasswordHash, "pw1")
}

func TestValidateCredentials(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	u, err := svc.ValidateCredentials("alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = svc.ValidateCredentials("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user yields the same error as a wrong password
	_, err = svc.ValidateCredentials("nobody", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc := newUserService(t)

	require.NoError(t, svc.EnsureAdmin("admin", "first-password"))
	require.NoError(t, svc.EnsureAdmin("admin", "second-password"))

	u, err := svc.ValidateCredentials("admin", "first-password")
	require.NoError(t, err)
	require.True(t, u.IsAdmin)

	// the second call must not have overwritten the credential
	_, err = svc.ValidateCredentials("admin", "second-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_RequiresFields(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("", "pw")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register("alice", "")
	require.ErrorIs(t, err, ErrValidation)
}
