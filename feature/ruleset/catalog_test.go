package ruleset

import (
	"context"
	"testing"

	"ruleset-combiner/core/database"
	"ruleset-combiner/core/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

var testManifest = Manifest{
	{Kind: entity.KindBuilding, SourceName: "Monument", Name: "Tnemunom"},
	{Kind: entity.KindUnit, SourceName: "Warrior", Name: "Roirraw (Spearman)"},
	{Kind: entity.KindUnit, SourceName: "Warrior", Name: "Roirraw"},
}

func TestCatalog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(setupSQLite(t), zap.NewNop())
	require.NoError(t, catalog.Migrate(ctx))

	_, err := catalog.LatestRunID(ctx)
	assert.ErrorIs(t, err, ErrNoRuns)

	require.NoError(t, catalog.Save(ctx, "run-1", testManifest[:1]))
	require.NoError(t, catalog.Save(ctx, "run-2", testManifest))

	latest, err := catalog.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest)

	m, err := catalog.Run(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, testManifest, m)

	m, err = catalog.Run(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, m, 1)

	_, err = catalog.Run(ctx, "run-3")
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestCatalog_SaveEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	catalog := NewCatalog(db, zap.NewNop())

	require.NoError(t, catalog.Save(context.Background(), "run-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalog_Verify(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		ctx := context.Background()
		catalog := NewCatalog(setupSQLite(t), zap.NewNop())
		require.NoError(t, catalog.Migrate(ctx))

		missing, err := catalog.Verify(ctx)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("MySQL", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "auto_increment").
			AddRow("run_id", "varchar(36)", "YES", "MUL", nil, "").
			AddRow("name", "varchar(255)", "YES", "", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `ruleset_manifest`").WillReturnRows(rows)

		missing, err := NewCatalog(db, zap.NewNop()).Verify(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"kind", "source_name", "created_at"}, missing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalog_LatestRunID_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT `run_id` FROM `ruleset_manifest` ORDER BY id DESC LIMIT .+").
		WillReturnRows(sqlmock.NewRows([]string{"run_id"}).AddRow("run-7"))

	id, err := NewCatalog(db, zap.NewNop()).LatestRunID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-7", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
