package persistence

import (
	"context"
	"testing"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJobOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.Branch{},
		&workorder.JobOrder{},
		&workorder.JobOrderItem{},
		&workorder.ThirdPartyRepair{},
	)
	require.NoError(t, err)
	return db
}

func seedBranch(t *testing.T, db *gorm.DB, code string) *identity.Branch {
	t.Helper()
	branch, err := identity.NewBranch("Branch "+code, code)
	require.NoError(t, err)
	require.NoError(t, db.Save(branch).Error)
	return branch
}

func resolvedLine(t *testing.T, name string, base, labor float64, quantity int64) workorder.OrderLine {
	t.Helper()
	item, err := catalog.NewGlobalCatalogItem(name, catalog.ItemTypeService, decimal.NewFromFloat(base))
	require.NoError(t, err)

	laborPrice := decimal.NewFromFloat(labor)
	return workorder.OrderLine{
		Resolved: catalog.ResolvedPrice{
			Item:  item,
			Base:  item.BasePrice,
			Labor: &laborPrice,
		},
		Quantity: quantity,
	}
}

func seedOrder(t *testing.T, db *gorm.DB, repo *GormJobOrderRepository, branchID uuid.UUID) *workorder.JobOrder {
	t.Helper()
	number, err := repo.NextOrderNumber(context.Background(), branchID)
	require.NoError(t, err)

	order, err := workorder.NewJobOrder(branchID, uuid.New(), uuid.New(), uuid.New(), number,
		[]workorder.OrderLine{resolvedLine(t, "Oil Change", 450, 150, 1)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestGormJobOrderRepository_SaveAndFind(t *testing.T) {
	db := setupJobOrderTestDB(t)
	repo := NewGormJobOrderRepository(db)
	ctx := context.Background()
	branch := seedBranch(t, db, "QC01")

	t.Run("round trips an order with items and repairs", func(t *testing.T) {
		order, err := workorder.NewJobOrder(branch.GetID(), uuid.New(), uuid.New(), uuid.New(), "JO-QC01-0001",
			[]workorder.OrderLine{
				resolvedLine(t, "Oil Change", 450, 150, 1),
				resolvedLine(t, "Brake Pads", 80, 20, 2),
			})
		require.NoError(t, err)

		_, err = order.AddThirdPartyRepair("MachineWorks", "crankshaft grinding", decimal.NewFromInt(1200), nil, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByID(ctx, order.GetID())
		require.NoError(t, err)
		assert.Equal(t, "JO-QC01-0001", found.OrderNumber)
		assert.Len(t, found.Items, 2)
		assert.Len(t, found.ThirdPartyRepairs, 1)
		assert.True(t, decimal.NewFromInt(800).Equal(found.TotalAmount), "total %s", found.TotalAmount)
		assert.True(t, decimal.NewFromInt(1200).Equal(found.RepairsTotal()))

		byNumber, err := repo.FindByOrderNumber(ctx, "JO-QC01-0001")
		require.NoError(t, err)
		assert.Equal(t, order.GetID(), byNumber.GetID())
	})

	t.Run("replaces item lines on save without duplicating", func(t *testing.T) {
		order := seedOrder(t, db, repo, branch.GetID())

		require.NoError(t, order.AddItem(uuid.New(), resolvedLine(t, "Coolant Flush", 300, 100, 1)))
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByID(ctx, order.GetID())
		require.NoError(t, err)
		assert.Len(t, found.Items, 2)
		assert.True(t, decimal.NewFromInt(1000).Equal(found.TotalAmount))
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormJobOrderRepository_SaveTransition(t *testing.T) {
	db := setupJobOrderTestDB(t)
	repo := NewGormJobOrderRepository(db)
	ctx := context.Background()
	branch := seedBranch(t, db, "QC02")

	t.Run("persists a status change", func(t *testing.T) {
		order := seedOrder(t, db, repo, branch.GetID())

		require.NoError(t, order.RequestApproval(uuid.New()))
		require.NoError(t, repo.SaveTransition(ctx, order, workorder.StatusCreated))

		found, err := repo.FindByID(ctx, order.GetID())
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusPendingApproval, found.Status)
	})

	t.Run("persists the approval decision fields", func(t *testing.T) {
		order := seedOrder(t, db, repo, branch.GetID())
		require.NoError(t, order.RequestApproval(uuid.New()))
		require.NoError(t, repo.SaveTransition(ctx, order, workorder.StatusCreated))

		require.NoError(t, order.RecordApproval(uuid.New(), true, "customer confirmed by phone"))
		require.NoError(t, repo.SaveTransition(ctx, order, workorder.StatusPendingApproval))

		found, err := repo.FindByID(ctx, order.GetID())
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusApproved, found.Status)
		require.NotNil(t, found.ApprovedAt)
		assert.Equal(t, "customer confirmed by phone", found.ApprovalNotes)
	})

	t.Run("detects a lost race on the previous status", func(t *testing.T) {
		order := seedOrder(t, db, repo, branch.GetID())

		// Another session already moved the order along
		require.NoError(t, db.Model(&workorder.JobOrder{}).
			Where("id = ?", order.GetID()).
			Update("status", workorder.StatusCancelled).Error)

		require.NoError(t, order.RequestApproval(uuid.New()))
		err := repo.SaveTransition(ctx, order, workorder.StatusCreated)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormJobOrderRepository_NextOrderNumber(t *testing.T) {
	db := setupJobOrderTestDB(t)
	repo := NewGormJobOrderRepository(db)
	ctx := context.Background()
	branch := seedBranch(t, db, "MKT1")

	number, err := repo.NextOrderNumber(ctx, branch.GetID())
	require.NoError(t, err)
	assert.Equal(t, "JO-MKT1-0001", number)

	seedOrder(t, db, repo, branch.GetID())
	seedOrder(t, db, repo, branch.GetID())

	number, err = repo.NextOrderNumber(ctx, branch.GetID())
	require.NoError(t, err)
	assert.Equal(t, "JO-MKT1-0003", number)

	_, err = repo.NextOrderNumber(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormJobOrderRepository_FindByBranches(t *testing.T) {
	db := setupJobOrderTestDB(t)
	repo := NewGormJobOrderRepository(db)
	ctx := context.Background()

	first := seedBranch(t, db, "BR01")
	second := seedBranch(t, db, "BR02")
	seedOrder(t, db, repo, first.GetID())
	seedOrder(t, db, repo, first.GetID())
	orderAtSecond := seedOrder(t, db, repo, second.GetID())

	t.Run("restricts to the given branches", func(t *testing.T) {
		orders, err := repo.FindByBranches(ctx, []uuid.UUID{second.GetID()}, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, orderAtSecond.GetID(), orders[0].GetID())

		count, err := repo.CountByBranches(ctx, []uuid.UUID{first.GetID()}, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty slice means no restriction", func(t *testing.T) {
		count, err := repo.CountByBranches(ctx, nil, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("status filter narrows results", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = workorder.StatusPendingApproval

		count, err := repo.CountByBranches(ctx, nil, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
