package repo

import (
	"context"
	"testing"

	"github.com/harked/alfresco-bulk-import/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	r := NewRepository(db)
	require.NoError(t, r.Migrate())
	return r
}

func TestEnsureRoot(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	first, err := r.EnsureRoot(ctx, "imported")
	require.NoError(t, err)

	// Idempotent: second call finds the same node.
	second, err := r.EnsureRoot(ctx, "imported")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolvePath(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	root, err := r.EnsureRoot(ctx, "imported")
	require.NoError(t, err)

	a, err := r.EnsureFolder(ctx, root, "a", "", "")
	require.NoError(t, err)
	b, err := r.EnsureFolder(ctx, a, "b", "", "")
	require.NoError(t, err)

	t.Run("FullResolution", func(t *testing.T) {
		ref, err := r.ResolvePath(ctx, root, []string{"a", "b"}, false)
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, b, *ref)
	})

	t.Run("NonCreatingMissReturnsNil", func(t *testing.T) {
		ref, err := r.ResolvePath(ctx, root, []string{"a", "missing", "deep"}, false)
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("CreateMissingVivifiesFolders", func(t *testing.T) {
		ref, err := r.ResolvePath(ctx, root, []string{"a", "x", "y"}, true)
		require.NoError(t, err)
		require.NotNil(t, ref)

		// Now resolvable without creating.
		again, err := r.ResolvePath(ctx, root, []string{"a", "x", "y"}, false)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, *ref, *again)
	})
}

func TestEnsureDocumentAndVersions(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	root, err := r.EnsureRoot(ctx, "imported")
	require.NoError(t, err)

	doc, err := r.EnsureDocument(ctx, root, "doc.txt", "cm:content", "cm")
	require.NoError(t, err)

	// Ensure is find-or-create, not duplicate.
	same, err := r.EnsureDocument(ctx, root, "doc.txt", "cm:content", "cm")
	require.NoError(t, err)
	assert.Equal(t, doc, same)

	err = r.AddVersion(ctx, doc, VersionRecord{
		Label:       "1",
		ContentKey:  "content/doc/1",
		ContentType: "text/plain",
		Encoding:    "utf-8",
		SizeBytes:   42,
		Properties:  map[string]any{"cm:title": "Doc"},
		Aspects:     []string{"cm:versionable"},
	})
	require.NoError(t, err)
}

func TestVerifySchema(t *testing.T) {
	t.Run("MigratedSchemaPasses", func(t *testing.T) {
		r := newTestRepository(t)
		assert.NoError(t, r.VerifySchema(context.Background()))
	})

	t.Run("MissingColumnFails", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE nodes (id TEXT PRIMARY KEY, name TEXT)").Error)

		r := NewRepository(db)
		err = r.VerifySchema(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parent_id")
	})
}

// TestResolvePathQueryError drives the mysql dialect against sqlmock
// to verify that database failures surface as errors rather than
// being mistaken for an out-of-order miss.
func TestResolvePathQueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `nodes`").
		WillReturnError(assert.AnError)

	r := NewRepository(db)
	ref, err := r.ResolvePath(context.Background(), NewNodeRef(), []string{"a"}, false)
	assert.Nil(t, ref)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
