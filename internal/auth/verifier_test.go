package auth

import (
	"testing"
	"time"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secret = []byte("test-secret")
	now    = time.Date(2023, 4, 30, 12, 0, 0, 0, time.UTC)

	alice = model.Identity{Username: "alice", Email: "alice@example.com", Role: model.RoleRegular}
	admin = model.Identity{Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
)

// signAt выпускает токен так, будто он подписан в момент at
func signAt(t *testing.T, id model.Identity, at time.Time, ttl time.Duration) string {
	t.Helper()
	tok, err := token.NewCodec(secret, token.WithClock(func() time.Time { return at })).Sign(id, ttl)
	require.NoError(t, err)
	return tok
}

func valid(t *testing.T, id model.Identity) string {
	return signAt(t, id, now, time.Hour)
}

func expired(t *testing.T, id model.Identity) string {
	return signAt(t, id, now.Add(-2*time.Hour), time.Hour)
}

func newTestVerifier() (*Verifier, *token.Codec) {
	codec := token.NewCodec(secret, token.WithClock(func() time.Time { return now }))
	return NewVerifier(codec, time.Hour), codec
}

func TestVerify_MissingTokens(t *testing.T) {
	v, _ := newTestVerifier()
	tok := valid(t, alice)

	for _, tc := range []struct {
		name            string
		access, refresh string
	}{
		{"both missing", "", ""},
		{"access missing", "", tok},
		{"refresh missing", tok, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := v.Verify(tc.access, tc.refresh, Simple{})
			assert.False(t, res.Authorized)
			assert.Equal(t, CauseUnauthorized, res.Cause)
			assert.False(t, res.Renewed())
		})
	}
}

func TestVerify_SimpleValidPair(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(valid(t, alice), valid(t, alice), Simple{})
	assert.True(t, res.Authorized)
	assert.Equal(t, CauseAuthorized, res.Cause)
	assert.Equal(t, alice, res.Identity)
	assert.False(t, res.Renewed())
	assert.Empty(t, res.RefreshedMessage)
}

func TestVerify_NilRequirementBehavesAsSimple(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(valid(t, alice), valid(t, alice), nil)
	assert.True(t, res.Authorized)
}

func TestVerify_MismatchedUsers(t *testing.T) {
	v, _ := newTestVerifier()

	other := []model.Identity{
		{Username: "bob", Email: alice.Email, Role: alice.Role},
		{Username: alice.Username, Email: "bob@example.com", Role: alice.Role},
		{Username: alice.Username, Email: alice.Email, Role: model.RoleAdmin},
	}
	reqs := []Requirement{Simple{}, User{Username: "alice"}, Admin{}, Group{Emails: []string{alice.Email}}}

	for _, o := range other {
		for _, req := range reqs {
			res := v.Verify(valid(t, alice), valid(t, o), req)
			assert.False(t, res.Authorized)
			assert.Equal(t, CauseMismatchedUsers, res.Cause)
		}
	}
}

func TestVerify_MissingInformation(t *testing.T) {
	v, _ := newTestVerifier()

	incomplete := []model.Identity{
		{Email: alice.Email, Role: alice.Role},
		{Username: alice.Username, Role: alice.Role},
		{Username: alice.Username, Email: alice.Email},
	}
	for _, id := range incomplete {
		res := v.Verify(valid(t, id), valid(t, alice), Simple{})
		assert.False(t, res.Authorized)
		assert.Equal(t, CauseMissingInfo, res.Cause)

		res = v.Verify(valid(t, alice), valid(t, id), Simple{})
		assert.False(t, res.Authorized)
		assert.Equal(t, CauseMissingInfo, res.Cause)
	}
}

func TestVerify_RequirementTable(t *testing.T) {
	v, _ := newTestVerifier()

	tests := []struct {
		name      string
		id        model.Identity
		req       Requirement
		want      bool
		wantCause string
	}{
		{"user match", alice, User{Username: "alice"}, true, CauseAuthorized},
		{"user other", alice, User{Username: "bob"}, false, CauseAnotherUser},
		{"admin ok", admin, Admin{}, true, CauseAuthorized},
		{"admin denied", alice, Admin{}, false, CauseNotAdmin},
		{"group member", alice, Group{Emails: []string{"x@example.com", alice.Email}}, true, CauseAuthorized},
		{"group outsider", alice, Group{Emails: []string{"x@example.com"}}, false, CauseNotInGroup},
		{"group empty", alice, Group{}, false, CauseNotInGroup},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := v.Verify(valid(t, tc.id), valid(t, tc.id), tc.req)
			assert.Equal(t, tc.want, res.Authorized)
			assert.Equal(t, tc.wantCause, res.Cause)
		})
	}
}

func TestVerify_Idempotent(t *testing.T) {
	v, _ := newTestVerifier()
	access, refresh := valid(t, alice), valid(t, alice)

	first := v.Verify(access, refresh, User{Username: "alice"})
	second := v.Verify(access, refresh, User{Username: "alice"})
	assert.Equal(t, first, second)
}

func TestVerify_RefreshOnExpiredAccess(t *testing.T) {
	v, codec := newTestVerifier()

	res := v.Verify(expired(t, alice), valid(t, alice), User{Username: "alice"})
	require.True(t, res.Authorized)
	assert.Equal(t, CauseAuthorized, res.Cause)
	assert.Equal(t, RefreshedMessage, res.RefreshedMessage)
	require.True(t, res.Renewed())

	claims, err := codec.Verify(res.RenewedAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(time.Hour)))
}

func TestVerify_RefreshUsesRefreshIdentityOnly(t *testing.T) {
	v, _ := newTestVerifier()

	// просроченный access токен другого пользователя не сверяется с refresh токеном
	res := v.Verify(expired(t, admin), valid(t, alice), Simple{})
	assert.True(t, res.Authorized)
	assert.Equal(t, alice, res.Identity)

	res = v.Verify(expired(t, admin), valid(t, alice), Admin{})
	assert.False(t, res.Authorized)
	assert.Equal(t, CauseNotAdmin, res.Cause)
	assert.False(t, res.Renewed())
}

func TestVerify_RefreshWithIncompleteRefreshToken(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(expired(t, alice), valid(t, model.Identity{Username: "alice"}), Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, CauseMissingInfo, res.Cause)
}

func TestVerify_BothExpired(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(expired(t, alice), expired(t, alice), Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, CauseLoginAgain, res.Cause)
	assert.False(t, res.Renewed())
}

func TestVerify_ValidAccessExpiredRefresh(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(valid(t, alice), expired(t, alice), Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, CauseLoginAgain, res.Cause)
}

func TestVerify_ExpiredAccessMalformedRefresh(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(expired(t, alice), "garbage", Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, "TokenMalformed", res.Cause)
}

func TestVerify_MalformedAccess(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify("garbage", valid(t, alice), Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, "TokenMalformed", res.Cause)

	forged, err := token.NewCodec([]byte("other")).Sign(alice, time.Hour)
	require.NoError(t, err)
	res = v.Verify(forged, valid(t, alice), Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, "TokenMalformed", res.Cause)
}

func TestVerify_ValidAccessMalformedRefresh(t *testing.T) {
	v, _ := newTestVerifier()

	res := v.Verify(valid(t, alice), "garbage", Simple{})
	assert.False(t, res.Authorized)
	assert.Equal(t, "TokenMalformed", res.Cause)
}
