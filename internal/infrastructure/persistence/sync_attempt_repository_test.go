package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brownstreet/backend/internal/domain/catalog"
)

// newMockSyncAttemptRepository creates a repository over a mocked SQL connection
func newMockSyncAttemptRepository(t *testing.T) (*GormSyncAttemptRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSyncAttemptRepository(gormDB), mock, mockDB
}

func TestGormSyncAttemptRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSyncAttemptRepository(newTestDB(t))

	attempts := []*catalog.SyncAttempt{
		catalog.NewSyncAttempt("1001", "item one", "WORKWEAR_ARCHIVE", catalog.SyncSuccess, false, "", "operator-1"),
		catalog.NewSyncAttempt("1002", "item two", "MILITARY_ARCHIVE", catalog.SyncFail, false, "upstream status 500", "operator-1"),
		catalog.NewSyncAttempt("1003", "item three", "WORKWEAR_ARCHIVE", catalog.SyncSuccess, true, "", "operator-2"),
	}
	for _, a := range attempts {
		require.NoError(t, repo.Append(ctx, a))
	}

	got, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, got, 2)

	got, total, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, got, 1)

	// The skipped attempt still landed as its own audit row.
	all, _, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	skipped := 0
	for _, a := range all {
		if a.Skipped {
			skipped++
			assert.Equal(t, catalog.SyncSuccess, a.Outcome)
		}
	}
	assert.Equal(t, 1, skipped)
}

func TestGormSyncAttemptRepository_ListDefaultsPaging(t *testing.T) {
	repo, mock, mockDB := newMockSyncAttemptRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "exhibition_sync_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "product_no", "product_name", "target_category", "outcome", "skipped", "error_message", "synced_by"}).
		AddRow(uuid.New(), "1001", "item one", "WORKWEAR_ARCHIVE", "SUCCESS", false, "", "operator-1")
	mock.ExpectQuery(`SELECT \* FROM "exhibition_sync_logs" ORDER BY created_at DESC LIMIT .*`).
		WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "1001", got[0].ProductNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
