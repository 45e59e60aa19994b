package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBranchRepository creates a GormBranchRepository against a mocked SQL
// connection
func newMockBranchRepository(t *testing.T) (*GormBranchRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormBranchRepository(gormDB), mock, mockDB
}

func branchRows(id uuid.UUID, name, code string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "name", "code", "address", "is_active"}).
		AddRow(id, now, now, 1, name, code, "", true)
}

func TestGormBranchRepository_FindByID(t *testing.T) {
	t.Run("finds existing branch", func(t *testing.T) {
		repo, mock, mockDB := newMockBranchRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "branches" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(branchID, 1).
			WillReturnRows(branchRows(branchID, "Quezon City", "QC01"))

		branch, err := repo.FindByID(context.Background(), branchID)

		require.NoError(t, err)
		assert.Equal(t, branchID, branch.GetID())
		assert.Equal(t, "QC01", branch.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockBranchRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "branches" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(branchID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		branch, err := repo.FindByID(context.Background(), branchID)

		assert.Nil(t, branch)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBranchRepository_FindByCode(t *testing.T) {
	t.Run("normalizes the code before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockBranchRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "branches" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("QC01", 1).
			WillReturnRows(branchRows(branchID, "Quezon City", "QC01"))

		branch, err := repo.FindByCode(context.Background(), "  qc01 ")

		require.NoError(t, err)
		assert.Equal(t, branchID, branch.GetID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBranchRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockBranchRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()
		mock.ExpectExec(`DELETE FROM "branches" WHERE id = \$1`).
			WithArgs(branchID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), branchID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
