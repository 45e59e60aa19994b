package workorder

import (
	"context"
	"errors"
	"testing"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockJobOrderRepository struct {
	mock.Mock
}

func (m *MockJobOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.JobOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.JobOrder), args.Error(1)
}

func (m *MockJobOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*workorder.JobOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.JobOrder), args.Error(1)
}

func (m *MockJobOrderRepository) FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]workorder.JobOrder, error) {
	args := m.Called(ctx, branchIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workorder.JobOrder), args.Error(1)
}

func (m *MockJobOrderRepository) CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, branchIDs, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobOrderRepository) Save(ctx context.Context, order *workorder.JobOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockJobOrderRepository) SaveTransition(ctx context.Context, order *workorder.JobOrder, from workorder.OrderStatus) error {
	args := m.Called(ctx, order, from)
	return args.Error(0)
}

func (m *MockJobOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobOrderRepository) NextOrderNumber(ctx context.Context, branchID uuid.UUID) (string, error) {
	args := m.Called(ctx, branchID)
	return args.String(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]partner.Vehicle, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, branchID uuid.UUID, plateNumber string) (*partner.Vehicle, error) {
	args := m.Called(ctx, branchID, plateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *partner.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPriceResolver struct {
	mock.Mock
}

func (m *MockPriceResolver) Resolve(ctx context.Context, catalogItemID, branchID uuid.UUID) (catalog.ResolvedPrice, error) {
	args := m.Called(ctx, catalogItemID, branchID)
	return args.Get(0).(catalog.ResolvedPrice), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type serviceFixture struct {
	orderRepo    *MockJobOrderRepository
	customerRepo *MockCustomerRepository
	vehicleRepo  *MockVehicleRepository
	pricing      *MockPriceResolver
	events       *MockEventPublisher
	service      *JobOrderService

	branchID uuid.UUID
	customer *partner.Customer
	vehicle  *partner.Vehicle
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		orderRepo:    new(MockJobOrderRepository),
		customerRepo: new(MockCustomerRepository),
		vehicleRepo:  new(MockVehicleRepository),
		pricing:      new(MockPriceResolver),
		events:       new(MockEventPublisher),
		branchID:     uuid.New(),
	}
	f.service = NewJobOrderService(f.orderRepo, f.customerRepo, f.vehicleRepo, f.pricing, f.events, zap.NewNop())

	var err error
	f.customer, err = partner.NewCustomer(f.branchID, uuid.New(), "Juan", "Dela Cruz")
	require.NoError(t, err)
	f.vehicle, err = partner.NewVehicle(f.branchID, uuid.New(), f.customer.GetID(), "ABC-1234", "Toyota", "Vios")
	require.NoError(t, err)
	return f
}

func (f *serviceFixture) supervisor() identity.Actor {
	return identity.Actor{
		UserID:    uuid.New(),
		Roles:     []identity.Role{identity.RoleJobSupervisor},
		BranchIDs: []uuid.UUID{f.branchID},
	}
}

func (f *serviceFixture) receptionist() identity.Actor {
	return identity.Actor{
		UserID:    uuid.New(),
		Roles:     []identity.Role{identity.RoleReceptionist},
		BranchIDs: []uuid.UUID{f.branchID},
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func resolvedFor(t *testing.T, name, base, labor, packaging string) catalog.ResolvedPrice {
	t.Helper()
	item, err := catalog.NewGlobalCatalogItem(name, catalog.ItemTypeService, dec(base))
	require.NoError(t, err)
	resolved := catalog.ResolvedPrice{Item: item, Base: item.BasePrice}
	if labor != "" {
		l := dec(labor)
		resolved.Labor = &l
	} else {
		resolved.Warnings = append(resolved.Warnings, catalog.MissingRuleWarning(catalog.PricingTypeLabor, name))
	}
	if packaging != "" {
		p := dec(packaging)
		resolved.Packaging = &p
	} else {
		resolved.Warnings = append(resolved.Warnings, catalog.MissingRuleWarning(catalog.PricingTypePackaging, name))
	}
	return resolved
}

func TestJobOrderServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path with mixed resolution", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()

		fullyPriced := resolvedFor(t, "Oil Change", "500.00", "150.00", "25.00")
		baseOnly := resolvedFor(t, "Wiper Blade", "100.00", "", "")

		f.customerRepo.On("FindByID", ctx, f.customer.GetID()).Return(f.customer, nil)
		f.vehicleRepo.On("FindByID", ctx, f.vehicle.GetID()).Return(f.vehicle, nil)
		f.pricing.On("Resolve", ctx, fullyPriced.Item.GetID(), f.branchID).Return(fullyPriced, nil)
		f.pricing.On("Resolve", ctx, baseOnly.Item.GetID(), f.branchID).Return(baseOnly, nil)
		f.orderRepo.On("NextOrderNumber", ctx, f.branchID).Return("JO-MAIN-0001", nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*workorder.JobOrder")).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: f.customer.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Items: []OrderItemRequest{
				{CatalogItemID: fullyPriced.Item.GetID(), Quantity: 1},
				{CatalogItemID: baseOnly.Item.GetID(), Quantity: 2},
			},
		})
		require.NoError(t, err)

		// 675 + 200, repairs excluded
		assert.True(t, resp.TotalAmount.Equal(dec("875.00")))
		assert.Equal(t, workorder.StatusCreated, resp.Status)
		assert.Equal(t, "JO-MAIN-0001", resp.OrderNumber)
		assert.Len(t, resp.Warnings, 2)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("technician cannot create", func(t *testing.T) {
		f := newFixture(t)
		actor := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleTechnician},
			BranchIDs: []uuid.UUID{f.branchID},
		}

		_, err := f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: f.customer.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Items:      []OrderItemRequest{{CatalogItemID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("branch isolation", func(t *testing.T) {
		f := newFixture(t)
		otherBranch := uuid.New()
		actor := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleJobSupervisor},
			BranchIDs: []uuid.UUID{otherBranch},
		}

		_, err := f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: f.customer.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Items:      []OrderItemRequest{{CatalogItemID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("customer from another branch rejected", func(t *testing.T) {
		f := newFixture(t)
		actor := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleHeadManager},
			BranchIDs: nil,
		}
		stranger, err := partner.NewCustomer(uuid.New(), uuid.New(), "Pedro", "Penduko")
		require.NoError(t, err)

		f.customerRepo.On("FindByID", ctx, stranger.GetID()).Return(stranger, nil)

		_, err = f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: stranger.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Items:      []OrderItemRequest{{CatalogItemID: uuid.New(), Quantity: 1}},
		})
		assert.Error(t, err)
	})

	t.Run("creation notes produce no update event", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		resolved := resolvedFor(t, "Oil Change", "500.00", "", "")

		f.customerRepo.On("FindByID", ctx, f.customer.GetID()).Return(f.customer, nil)
		f.vehicleRepo.On("FindByID", ctx, f.vehicle.GetID()).Return(f.vehicle, nil)
		f.pricing.On("Resolve", ctx, resolved.Item.GetID(), f.branchID).Return(resolved, nil)
		f.orderRepo.On("NextOrderNumber", ctx, f.branchID).Return("JO-MAIN-0003", nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil)

		var published []shared.DomainEvent
		f.events.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		resp, err := f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: f.customer.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Notes:      "  customer waiting in lobby  ",
			Items:      []OrderItemRequest{{CatalogItemID: resolved.Item.GetID(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, "customer waiting in lobby", resp.Notes)

		// a single created event; the notes ride along with creation instead
		// of registering as a follow-up edit
		require.Len(t, published, 1)
		assert.Equal(t, workorder.EventJobOrderCreated, published[0].EventType())
	})

	t.Run("publish failure does not fail the create", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		resolved := resolvedFor(t, "Oil Change", "500.00", "", "")

		f.customerRepo.On("FindByID", ctx, f.customer.GetID()).Return(f.customer, nil)
		f.vehicleRepo.On("FindByID", ctx, f.vehicle.GetID()).Return(f.vehicle, nil)
		f.pricing.On("Resolve", ctx, resolved.Item.GetID(), f.branchID).Return(resolved, nil)
		f.orderRepo.On("NextOrderNumber", ctx, f.branchID).Return("JO-MAIN-0002", nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(errors.New("bus down"))

		resp, err := f.service.Create(ctx, actor, CreateOrderRequest{
			BranchID:   f.branchID,
			CustomerID: f.customer.GetID(),
			VehicleID:  f.vehicle.GetID(),
			Items:      []OrderItemRequest{{CatalogItemID: resolved.Item.GetID(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusCreated, resp.Status)
	})
}

func TestJobOrderServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("cross-branch lookup matches a missing id", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		outsider := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleJobSupervisor},
			BranchIDs: []uuid.UUID{uuid.New()},
		}

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		_, err := f.service.Get(ctx, outsider, order.GetID())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		missing := uuid.New()
		f.orderRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
		_, err = f.service.Get(ctx, outsider, missing)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestJobOrderServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped actor queries only its branches", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		filter := shared.DefaultFilter()

		f.orderRepo.On("FindByBranches", ctx, []uuid.UUID{f.branchID}, filter).
			Return([]workorder.JobOrder{}, nil)
		f.orderRepo.On("CountByBranches", ctx, []uuid.UUID{f.branchID}, filter).
			Return(int64(0), nil)

		_, err := f.service.List(ctx, actor, filter)
		require.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("actor without branch assignments sees nothing", func(t *testing.T) {
		f := newFixture(t)
		unassigned := identity.Actor{
			UserID: uuid.New(),
			Roles:  []identity.Role{identity.RoleJobSupervisor},
		}

		resp, err := f.service.List(ctx, unassigned, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Total)
		// the repository treats an empty branch list as unrestricted, so the
		// service must never reach it with one
		f.orderRepo.AssertNotCalled(t, "FindByBranches", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("head manager sees every branch", func(t *testing.T) {
		f := newFixture(t)
		hm := identity.Actor{UserID: uuid.New(), Roles: []identity.Role{identity.RoleHeadManager}}
		filter := shared.DefaultFilter()

		f.orderRepo.On("FindByBranches", ctx, []uuid.UUID(nil), filter).
			Return([]workorder.JobOrder{}, nil)
		f.orderRepo.On("CountByBranches", ctx, []uuid.UUID(nil), filter).
			Return(int64(0), nil)

		_, err := f.service.List(ctx, hm, filter)
		require.NoError(t, err)
	})
}

func newPersistedOrder(t *testing.T, f *serviceFixture) *workorder.JobOrder {
	t.Helper()
	resolved := resolvedFor(t, "Oil Change", "500.00", "150.00", "25.00")
	order, err := workorder.NewJobOrder(f.branchID, uuid.New(), f.customer.GetID(), f.vehicle.GetID(),
		"JO-MAIN-0100", []workorder.OrderLine{{Resolved: resolved, Quantity: 1}})
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestJobOrderServiceApprovalFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("request then record approval", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("SaveTransition", ctx, order, workorder.StatusCreated).Return(nil)
		f.orderRepo.On("SaveTransition", ctx, order, workorder.StatusPendingApproval).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.RequestApproval(ctx, f.supervisor(), order.GetID())
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusPendingApproval, resp.Status)

		// front desk records the decision
		resp, err = f.service.RecordApproval(ctx, f.receptionist(), order.GetID(), RecordApprovalRequest{
			Approved: true,
			Notes:    "accepted in person",
		})
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedAt)

		// second decision conflicts
		_, err = f.service.RecordApproval(ctx, f.receptionist(), order.GetID(), RecordApprovalRequest{Approved: true})
		assert.Error(t, err)
	})

	t.Run("receptionist cannot request approval", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		_ = order

		_, err := f.service.RequestApproval(ctx, f.receptionist(), order.GetID())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("supervisor cannot record approval", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		_ = order

		_, err := f.service.RecordApproval(ctx, f.supervisor(), order.GetID(), RecordApprovalRequest{Approved: true})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("rejection allows re-request", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("SaveTransition", ctx, order, mock.Anything).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := f.service.RequestApproval(ctx, f.supervisor(), order.GetID())
		require.NoError(t, err)

		resp, err := f.service.RecordApproval(ctx, f.receptionist(), order.GetID(), RecordApprovalRequest{
			Approved: false,
			Notes:    "too expensive",
		})
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusRejected, resp.Status)

		resp, err = f.service.RequestApproval(ctx, f.supervisor(), order.GetID())
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusPendingApproval, resp.Status)
	})

	t.Run("concurrent transition surfaces conflict", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("SaveTransition", ctx, order, workorder.StatusCreated).
			Return(shared.ErrConcurrencyConflict)

		_, err := f.service.RequestApproval(ctx, f.supervisor(), order.GetID())
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("order in another branch is invisible", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)

		outsider := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleJobSupervisor},
			BranchIDs: []uuid.UUID{uuid.New()},
		}
		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)

		// reads as missing, not forbidden, so the response cannot confirm
		// the order exists elsewhere
		_, err := f.service.RequestApproval(ctx, outsider, order.GetID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestJobOrderServiceCancelAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel is terminal", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("SaveTransition", ctx, order, workorder.StatusCreated).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Cancel(ctx, f.supervisor(), order.GetID())
		require.NoError(t, err)
		assert.Equal(t, workorder.StatusCancelled, resp.Status)

		_, err = f.service.RequestApproval(ctx, f.supervisor(), order.GetID())
		assert.Error(t, err)
	})

	t.Run("supervisor cannot delete", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		_ = order

		err := f.service.Delete(ctx, f.supervisor(), order.GetID())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("branch POC can delete", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		poc := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleBranchPOC},
			BranchIDs: []uuid.UUID{f.branchID},
		}

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("Delete", ctx, order.GetID()).Return(nil)

		assert.NoError(t, f.service.Delete(ctx, poc, order.GetID()))
		f.orderRepo.AssertExpectations(t)
	})
}

func TestJobOrderServiceRepairs(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	order := newPersistedOrder(t, f)
	actor := f.supervisor()

	f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	resp, err := f.service.AddRepair(ctx, actor, order.GetID(), CreateRepairRequest{
		ProviderName: "Machine Shop",
		Description:  "crankshaft grinding",
		Cost:         dec("2000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Machine Shop", resp.ProviderName)

	// repairs never move the order total
	assert.True(t, order.TotalAmount.Equal(dec("675.00")))
	assert.True(t, order.RepairsTotal().Equal(dec("2000.00")))

	repairs, err := f.service.ListRepairs(ctx, actor, order.GetID())
	require.NoError(t, err)
	require.Len(t, repairs, 1)

	require.NoError(t, f.service.RemoveRepair(ctx, actor, order.GetID(), repairs[0].ID))
	assert.Empty(t, order.ThirdPartyRepairs)
}

func TestJobOrderServiceItemEditing(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a line and recomputes the total", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		order := newPersistedOrder(t, f)
		extra := resolvedFor(t, "Coolant Flush", "300.00", "100.00", "")

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.pricing.On("Resolve", ctx, extra.Item.GetID(), f.branchID).Return(extra, nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.AddItem(ctx, actor, order.GetID(),
			OrderItemRequest{CatalogItemID: extra.Item.GetID(), Quantity: 1})
		require.NoError(t, err)

		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.TotalAmount.Equal(dec("1075.00")))
		assert.Len(t, resp.Warnings, 1)
	})

	t.Run("removing the last line is rejected", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		order := newPersistedOrder(t, f)

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)

		_, err := f.service.RemoveItem(ctx, actor, order.GetID(), order.Items[0].ID)
		assert.Error(t, err)
	})

	t.Run("removes a line once another remains", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		order := newPersistedOrder(t, f)
		extra := resolvedFor(t, "Coolant Flush", "300.00", "100.00", "50.00")
		require.NoError(t, order.AddItem(actor.UserID, workorder.OrderLine{Resolved: extra, Quantity: 1}))
		order.ClearDomainEvents()

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.RemoveItem(ctx, actor, order.GetID(), order.Items[1].ID)
		require.NoError(t, err)

		assert.Len(t, resp.Items, 1)
		assert.True(t, resp.TotalAmount.Equal(dec("675.00")))
	})

	t.Run("items are frozen after approval is requested", func(t *testing.T) {
		f := newFixture(t)
		actor := f.supervisor()
		order := newPersistedOrder(t, f)
		require.NoError(t, order.RequestApproval(actor.UserID))
		order.ClearDomainEvents()
		extra := resolvedFor(t, "Coolant Flush", "300.00", "100.00", "50.00")

		f.orderRepo.On("FindByID", ctx, order.GetID()).Return(order, nil)
		f.pricing.On("Resolve", ctx, extra.Item.GetID(), f.branchID).Return(extra, nil)

		_, err := f.service.AddItem(ctx, actor, order.GetID(),
			OrderItemRequest{CatalogItemID: extra.Item.GetID(), Quantity: 1})
		assert.Error(t, err)
	})

	t.Run("technician cannot edit items", func(t *testing.T) {
		f := newFixture(t)
		order := newPersistedOrder(t, f)
		actor := identity.Actor{
			UserID:    uuid.New(),
			Roles:     []identity.Role{identity.RoleTechnician},
			BranchIDs: []uuid.UUID{f.branchID},
		}

		_, err := f.service.AddItem(ctx, actor, order.GetID(),
			OrderItemRequest{CatalogItemID: uuid.New(), Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
