package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"expense_tracker/internal/model"
	"expense_tracker/internal/service/servicetest"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/pass"
	"expense_tracker/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jwtConfig struct{}

func (jwtConfig) AccessTokenSecretKey() []byte        { return []byte("secret") }
func (jwtConfig) AccessTokenDuration() time.Duration  { return time.Hour }
func (jwtConfig) RefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }

type failingSigner struct{}

func (failingSigner) Sign(model.Identity, time.Duration) (string, error) {
	return "", errors.New("sign failed")
}

func newTestService(t *testing.T) (*serv, *servicetest.Store, *token.Codec) {
	t.Helper()
	store := servicetest.NewStore()
	codec := token.NewCodec([]byte("secret"))
	s := NewService(&servicetest.TxManager{}, store, store, codec, jwtConfig{}, logger.NewNop())
	return s, store, codec
}

func TestRegister_CreatesRegularUser(t *testing.T) {
	s, store, _ := newTestService(t)

	err := s.Register(context.Background(), &model.User{Username: " alice ", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	require.Len(t, store.Users, 1)
	u := store.Users[0]
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, model.RoleRegular, u.Role)
	assert.NotEqual(t, "pw", u.Password)
	assert.True(t, pass.VerifyPassword(u.Password, "pw"))
}

func TestRegisterAdmin_SetsAdminRole(t *testing.T) {
	s, store, _ := newTestService(t)

	err := s.RegisterAdmin(context.Background(), &model.User{Username: "root", Email: "root@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, store.Users[0].Role)
}

func TestRegister_Validation(t *testing.T) {
	s, store, _ := newTestService(t)

	cases := map[string]model.User{
		"empty username": {Username: " ", Email: "a@example.com", Password: "pw"},
		"empty email":    {Username: "a", Email: "", Password: "pw"},
		"empty password": {Username: "a", Email: "a@example.com"},
		"bad email":      {Username: "a", Email: "not-an-email", Password: "pw"},
	}
	for name, u := range cases {
		t.Run(name, func(t *testing.T) {
			err := s.Register(context.Background(), &u)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
	assert.Empty(t, store.Users)
}

func TestRegister_Duplicates(t *testing.T) {
	s, store, _ := newTestService(t)
	store.AddUser("alice", "alice@example.com", model.RoleRegular)

	err := s.Register(context.Background(), &model.User{Username: "alice", Email: "other@example.com", Password: "pw"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "username")

	err = s.Register(context.Background(), &model.User{Username: "bob", Email: "alice@example.com", Password: "pw"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "email")

	assert.Len(t, store.Users, 1)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	s, store, codec := newTestService(t)
	require.NoError(t, s.Register(context.Background(), &model.User{Username: "alice", Email: "alice@example.com", Password: "pw"}))

	data, err := s.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	access, err := codec.Verify(data.AccessToken)
	require.NoError(t, err)
	refresh, err := codec.Verify(data.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, model.RoleRegular, refresh.Role)
	assert.Equal(t, time.Hour, access.ExpiresAt.Sub(access.IssuedAt.Time))
	assert.Equal(t, 7*24*time.Hour, refresh.ExpiresAt.Sub(refresh.IssuedAt.Time))
	assert.Equal(t, token.HashRefreshToken(data.RefreshToken), store.Users[0].RefreshToken)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), data.RefreshExpiresAt, time.Minute)
}

func TestLogin_WrongCredentials(t *testing.T) {
	s, _, _ := newTestService(t)
	require.NoError(t, s.Register(context.Background(), &model.User{Username: "alice", Email: "alice@example.com", Password: "pw"}))

	_, err := s.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidLogin)

	_, err = s.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, model.ErrInvalidLogin)

	_, err = s.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, model.ErrInvalidLogin)
}

func TestLogin_SignerError(t *testing.T) {
	s, store, _ := newTestService(t)
	require.NoError(t, s.Register(context.Background(), &model.User{Username: "alice", Email: "alice@example.com", Password: "pw"}))
	s.signer = failingSigner{}

	_, err := s.Login(context.Background(), "alice@example.com", "pw")
	require.Error(t, err)
	assert.Empty(t, store.Users[0].RefreshToken)
}

func TestLogout(t *testing.T) {
	s, store, _ := newTestService(t)
	require.NoError(t, s.Register(context.Background(), &model.User{Username: "alice", Email: "alice@example.com", Password: "pw"}))
	data, err := s.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), data.RefreshToken))
	assert.Empty(t, store.Users[0].RefreshToken)

	err = s.Logout(context.Background(), data.RefreshToken)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = s.Logout(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrValidation)
}
