package services

import (
	"testing"

	"kbase/app/models"
	"kbase/app/repo"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	entries *EntryService
	alice   *models.User
	bob     *models.User
	admin   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testDB(t)
	users := NewUserService(repo.NewUserRepository(gdb))

	alice, err := users.Register("alice", "pw1")
	require.NoError(t, err)
	bob, err := users.Register("bob", "pw2")
	require.NoError(t, err)
	require.NoError(t, users.EnsureAdmin("admin", "adminpw"))
	admin, err := users.ValidateCredentials("admin", "adminpw")
	require.NoError(t, err)

	return &fixture{
		entries: NewEntryService(repo.NewEntryRepository(gdb)),
		alice:   alice,
		bob:     bob,
		admin:   admin,
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	for _, fields := range []EntryFields{
		{Title: "", Category: "C", Content: "X"},
		{Title: "T", Category: "", Content: "X"},
		{Title: "T", Category: "C", Content: ""},
	} {
		_, err := f.entries.Create(f.alice, fields)
		require.ErrorIs(t, err, ErrValidation)
	}

	e, err := f.entries.Create(f.alice, EntryFields{Title: "T", Category: "C", Content: "X"})
	require.NoError(t, err)
	require.Equal(t, f.alice.ID, e.UserID)
}

func TestListAll_DescendingByID(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"first", "second", "third"} {
		_, err := f.entries.Create(f.alice, EntryFields{Title: title, Category: "C", Content: "X"})
		require.NoError(t, err)
	}

	entries, err := f.entries.ListAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "third", entries[0].Title)
	require.Equal(t, "second", entries[1].Title)
	require.Equal(t, "first", entries[2].Title)
	require.Greater(t, entries[0].ID, entries[1].ID)
}

func TestUpdate_OwnershipRule(t *testing.T) {
	f := newFixture(t)

	e, err := f.entries.Create(f.alice, EntryFields{Title: "T", Category: "C", Content: "X"})
	require.NoError(t, err)

	fields := EntryFields{Title: "T2", Category: "C2", Content: "X2"}

	_, err = f.entries.Update(e.ID, f.bob, fields)
	require.ErrorIs(t, err, ErrForbidden)

	got, err := f.entries.Update(e.ID, f.alice, fields)
	require.NoError(t, err)
	require.Equal(t, "T2", got.Title)

	_, err = f.entries.Update(e.ID, f.admin, EntryFields{Title: "T3", Category: "C3", Content: "X3"})
	require.NoError(t, err)
}

func TestDelete_OwnershipRule(t *testing.T) {
	f := newFixture(t)

	e, err := f.entries.Create(f.alice, EntryFields{Title: "T", Category: "C", Content: "X"})
	require.NoError(t, err)

	require.ErrorIs(t, f.entries.Delete(e.ID, f.bob), ErrForbidden)

	// still there after the forbidden attempt
	_, err = f.entries.Get(e.ID)
	require.NoError(t, err)

	require.NoError(t, f.entries.Delete(e.ID, f.admin))

	_, err = f.entries.Get(e.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.entries.Get(999)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.entries.Update(999, f.admin, EntryFields{Title: "T", Category: "C", Content: "X"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.entries.Delete(999, f.admin), ErrNotFound)
}

func TestCanModify(t *testing.T) {
	f := newFixture(t)

	e := &models.Entry{UserID: f.alice.ID}
	require.True(t, CanModify(e, f.alice))
	require.True(t, CanModify(e, f.admin))
	require.False(t, CanModify(e, f.bob))
	require.False(t, CanModify(e, nil))
}
