package group

import (
	"context"
	"testing"

	"expense_tracker/internal/model"
	"expense_tracker/internal/service/servicetest"
	"expense_tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = model.Identity{Username: "alice", Email: "alice@example.com", Role: model.RoleRegular}

func newTestService(t *testing.T) (*serv, *servicetest.Store) {
	t.Helper()
	store := servicetest.NewStore()
	store.AddUser("alice", "alice@example.com", model.RoleRegular)
	store.AddUser("bob", "bob@example.com", model.RoleRegular)
	store.AddUser("carol", "carol@example.com", model.RoleRegular)
	store.AddUser("dave", "dave@example.com", model.RoleRegular)
	return NewService(&servicetest.TxManager{}, store, store, logger.NewNop()), store
}

func seedGroup(t *testing.T, store *servicetest.Store, name string, emails ...string) {
	t.Helper()
	users, err := store.GetUsersByEmails(context.Background(), emails)
	require.NoError(t, err)
	members := make([]model.Member, 0, len(users))
	for _, e := range emails {
		for _, u := range users {
			if u.Email == e {
				members = append(members, model.Member{Email: u.Email, UserID: u.ID})
			}
		}
	}
	require.NoError(t, store.CreateGroup(context.Background(), name, members))
}

func TestCreate_AddsCreatorAndReports(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "other", "dave@example.com")

	change, err := s.Create(context.Background(), alice, "family",
		[]string{"bob@example.com", "dave@example.com", "ghost@example.com", "bob@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "family", change.Group.Name)
	assert.Equal(t, []string{"bob@example.com", "alice@example.com"}, change.Group.Emails())
	assert.Equal(t, []string{"dave@example.com"}, change.AlreadyInGroup)
	assert.Equal(t, []string{"ghost@example.com"}, change.MembersNotFound)
}

func TestCreate_CreatorListedKeepsOrder(t *testing.T) {
	s, _ := newTestService(t)

	change, err := s.Create(context.Background(), alice, "family", []string{"alice@example.com", "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, change.Group.Emails())
	assert.Empty(t, change.AlreadyInGroup)
	assert.Empty(t, change.MembersNotFound)
}

func TestCreate_Errors(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "taken", "carol@example.com")

	_, err := s.Create(context.Background(), alice, "taken", []string{"bob@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = s.Create(context.Background(), alice, "", []string{"bob@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Create(context.Background(), alice, "family", nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Create(context.Background(), alice, "family", []string{"carol@example.com", "ghost@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)

	carol := model.Identity{Username: "carol", Email: "carol@example.com", Role: model.RoleRegular}
	_, err = s.Create(context.Background(), carol, "family", []string{"bob@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Len(t, store.Groups, 1)
}

func TestCreate_NeedsListedMember(t *testing.T) {
	s, store := newTestService(t)

	for _, emails := range [][]string{{}, {"  "}, {"ghost@example.com"}} {
		_, err := s.Create(context.Background(), alice, "solo", emails)
		assert.ErrorIs(t, err, model.ErrValidation, "emails %q", emails)
	}
	assert.Empty(t, store.Groups)

	// себя можно указать явно
	change, err := s.Create(context.Background(), alice, "solo", []string{"alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, change.Group.Emails())
}

func TestMembers(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com", "bob@example.com")

	emails, err := s.Members(context.Background(), "family")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, emails)

	_, err = s.Members(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddMembers(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com")
	seedGroup(t, store, "other", "dave@example.com")

	change, err := s.AddMembers(context.Background(), "family",
		[]string{"bob@example.com", "dave@example.com", "alice@example.com", "ghost@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, change.Group.Emails())
	assert.Equal(t, []string{"dave@example.com", "alice@example.com"}, change.AlreadyInGroup)
	assert.Equal(t, []string{"ghost@example.com"}, change.MembersNotFound)

	_, err = s.AddMembers(context.Background(), "family", []string{"dave@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.AddMembers(context.Background(), "missing", []string{"carol@example.com"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.AddMembers(context.Background(), "family", nil)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRemoveMembers(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com", "bob@example.com", "carol@example.com")

	change, err := s.RemoveMembers(context.Background(), "family",
		[]string{"bob@example.com", "dave@example.com", "ghost@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "carol@example.com"}, change.Group.Emails())
	assert.Equal(t, []string{"dave@example.com"}, change.NotInGroup)
	assert.Equal(t, []string{"ghost@example.com"}, change.MembersNotFound)
}

func TestRemoveMembers_KeepsFirstMember(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com", "bob@example.com")

	change, err := s.RemoveMembers(context.Background(), "family", []string{"bob@example.com", "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, change.Group.Emails())

	_, err = s.RemoveMembers(context.Background(), "family", []string{"alice@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRemoveMembers_NothingToRemove(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com", "bob@example.com")

	_, err := s.RemoveMembers(context.Background(), "family", []string{"carol@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Len(t, store.Groups[0].Members, 2)
}

func TestDelete(t *testing.T) {
	s, store := newTestService(t)
	seedGroup(t, store, "family", "alice@example.com")

	require.NoError(t, s.Delete(context.Background(), "family"))
	assert.Empty(t, store.Groups)

	err := s.Delete(context.Background(), "family")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
