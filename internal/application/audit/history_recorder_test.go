package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) FindByJobOrder(ctx context.Context, jobOrderID uuid.UUID) ([]audit.JobOrderHistory, error) {
	args := m.Called(ctx, jobOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.JobOrderHistory), args.Error(1)
}

func (m *MockHistoryRepository) Save(ctx context.Context, entry *audit.JobOrderHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]audit.AuditLog, error) {
	args := m.Called(ctx, branchIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, branchIDs, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditLogRepository) Save(ctx context.Context, entry *audit.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newOrderForEvents(t *testing.T) *workorder.JobOrder {
	t.Helper()
	item, err := catalog.NewGlobalCatalogItem("Oil Change", catalog.ItemTypeService, decimal.NewFromInt(500))
	require.NoError(t, err)
	order, err := workorder.NewJobOrder(uuid.New(), uuid.New(), uuid.New(), uuid.New(), "JO-MAIN-0001",
		[]workorder.OrderLine{{Resolved: catalog.ResolvedPrice{Item: item, Base: item.BasePrice}, Quantity: 1}})
	require.NoError(t, err)
	return order
}

func TestHistoryRecorder(t *testing.T) {
	ctx := context.Background()
	order := newOrderForEvents(t)
	actorID := uuid.New()

	cases := []struct {
		event  shared.DomainEvent
		action audit.HistoryAction
	}{
		{workorder.NewJobOrderCreatedEvent(order, actorID), audit.ActionCreate},
		{workorder.NewJobOrderItemsChangedEvent(order, actorID), audit.ActionUpdate},
		{workorder.NewApprovalRequestedEvent(order, actorID), audit.ActionRequestApproval},
		{workorder.NewJobOrderApprovedEvent(order, actorID), audit.ActionApprove},
		{workorder.NewJobOrderRejectedEvent(order, actorID), audit.ActionReject},
		{workorder.NewJobOrderCancelledEvent(order, actorID), audit.ActionCancel},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			repo := new(MockHistoryRepository)
			recorder := NewHistoryRecorder(repo, zap.NewNop())

			var saved *audit.JobOrderHistory
			repo.On("Save", ctx, mock.AnythingOfType("*audit.JobOrderHistory")).
				Run(func(args mock.Arguments) {
					saved = args.Get(1).(*audit.JobOrderHistory)
				}).
				Return(nil)

			require.NoError(t, recorder.Handle(ctx, tc.event))
			require.NotNil(t, saved)
			assert.Equal(t, tc.action, saved.Action)
			assert.Equal(t, order.GetID(), saved.JobOrderID)
			assert.Equal(t, actorID, saved.ActorID)
			assert.NotEmpty(t, saved.Description)
		})
	}

	t.Run("save failure is returned for the bus to log", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		recorder := NewHistoryRecorder(repo, zap.NewNop())
		repo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		err := recorder.Handle(ctx, workorder.NewJobOrderCreatedEvent(order, actorID))
		assert.Error(t, err)
	})

	t.Run("foreign events are ignored", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		recorder := NewHistoryRecorder(repo, zap.NewNop())

		event := audit.NewAdminActionEvent("User", "CREATE", uuid.New(), actorID, uuid.New(), nil, nil)
		assert.NoError(t, recorder.Handle(ctx, event))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuditRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("persists before and after snapshots", func(t *testing.T) {
		repo := new(MockAuditLogRepository)
		recorder := NewAuditRecorder(repo, zap.NewNop())

		var saved *audit.AuditLog
		repo.On("Save", ctx, mock.AnythingOfType("*audit.AuditLog")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*audit.AuditLog)
			}).
			Return(nil)

		entityID := uuid.New()
		event := audit.NewAdminActionEvent("Branch", "UPDATE", entityID, uuid.New(), uuid.New(),
			map[string]string{"name": "Main"}, map[string]string{"name": "Main Branch"})

		require.NoError(t, recorder.Handle(ctx, event))
		require.NotNil(t, saved)
		assert.Equal(t, "Branch", saved.EntityType)
		assert.Equal(t, entityID, saved.EntityID)
		assert.JSONEq(t, `{"name":"Main"}`, string(saved.OldValues))
		assert.JSONEq(t, `{"name":"Main Branch"}`, string(saved.NewValues))
	})
}
