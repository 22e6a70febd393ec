package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestRun_UsesEmbeddedDir(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	var gotDB *sql.DB
	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDB, gotDir = d, dir
		return nil
	}

	require.NoError(t, Run(context.Background(), db))
	assert.Equal(t, ".", gotDir)
	assert.Same(t, db, gotDB)
}

func TestRun_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	require.ErrorIs(t, Run(context.Background(), db), boom)
}
