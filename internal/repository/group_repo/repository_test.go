package group_repo

import (
	"testing"

	"expense_tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMembers(t *testing.T) {
	t.Run("all groups", func(t *testing.T) {
		sql, args, err := selectMembers(nil).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT group_name, email, user_id FROM group_members ORDER BY position", sql)
		assert.Empty(t, args)
	})

	t.Run("one group", func(t *testing.T) {
		sql, args, err := selectMembers(sq.Eq{colGroupName: "trip"}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT group_name, email, user_id FROM group_members WHERE group_name = $1 ORDER BY position", sql)
		assert.Equal(t, []any{"trip"}, args)
	})
}

func TestInsertMembers(t *testing.T) {
	members := []model.Member{
		{Email: "a@mail.com", UserID: 1},
		{Email: "b@mail.com", UserID: 2},
	}

	sql, args, err := insertMembers("trip", members).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO group_members (group_name,email,user_id) VALUES ($1,$2,$3),($4,$5,$6)", sql)
	assert.Equal(t, []any{"trip", "a@mail.com", 1, "trip", "b@mail.com", 2}, args)
}

func TestDeleteMembers(t *testing.T) {
	sql, args, err := deleteMembers("trip", []string{"a@mail.com", "b@mail.com"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM group_members WHERE email IN ($1,$2) AND group_name = $3", sql)
	assert.Equal(t, []any{"a@mail.com", "b@mail.com", "trip"}, args)
}
