package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPacing = time.Millisecond

// expectSnapshot wires a read-only unit of work that returns the given
// backlog from GetAllPending.
func expectSnapshot(t *testing.T, factory *MockOrderUoWFactory, backlog []*order.Order) {
	t.Helper()
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Return(backlog, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory.On("Create").Return(uow).Once()
}

// expectAssignSuccess wires one full successful assignment transaction.
func expectAssignSuccess(t *testing.T, o *order.Order, pool []*driver.Driver,
	notifier *MockNotifier) *MockUoW {
	t.Helper()
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return(pool, nil).Once(),
		notifier.On("NotifyAssignment", ctx, mock.AnythingOfType("*driver.Driver"),
			mock.AnythingOfType("*order.Order"), mock.AnythingOfType("float64")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	return uow
}

// expectAssignNoMatch wires an assignment transaction that finds no
// dispatchable driver in the pool.
func expectAssignNoMatch(t *testing.T, o *order.Order, pool []*driver.Driver) *MockUoW {
	t.Helper()
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return(pool, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	return uow
}

func TestProcessPendingOrdersCommandHandler_Handle_OneDriverTwoOrders(t *testing.T) {
	ctx := t.Context()

	orderA := testPendingOrder(t)
	orderB := testPendingOrder(t)
	onlyDriver := testDispatchableDriver(t, 10, 10.5)
	pool := []*driver.Driver{onlyDriver}

	snapshotFactory := new(MockOrderUoWFactory)
	expectSnapshot(t, snapshotFactory, []*order.Order{orderA, orderB})

	notifier := new(MockNotifier)
	uowA := expectAssignSuccess(t, orderA, pool, notifier)
	// The driver is busy by the time order B is processed; the same pool
	// slice now holds a non-dispatchable driver.
	uowB := expectAssignNoMatch(t, orderB, pool)

	assignFactory := new(MockUoWFactory)
	assignFactory.On("Create").Return(uowA).Once()
	assignFactory.On("Create").Return(uowB).Once()

	handler := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory,
		newAssignHandler(assignFactory, notifier, &recordingPublisher{}),
		testPacing,
		testLogger(),
	)

	assigned, err := handler.Handle(ctx, commands.NewProcessPendingOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)

	// Oldest order won the only driver; the younger one stayed pending.
	assert.Equal(t, order.Assigned, orderA.Status())
	assert.Equal(t, order.Pending, orderB.Status())

	uowA.AssertExpectations(t)
	uowB.AssertExpectations(t)
	assignFactory.AssertExpectations(t)
}

func TestProcessPendingOrdersCommandHandler_Handle_EmptyBacklog(t *testing.T) {
	ctx := t.Context()

	snapshotFactory := new(MockOrderUoWFactory)
	expectSnapshot(t, snapshotFactory, []*order.Order{})

	assignFactory := new(MockUoWFactory)
	handler := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory,
		newAssignHandler(assignFactory, new(MockNotifier), &recordingPublisher{}),
		testPacing,
		testLogger(),
	)

	assigned, err := handler.Handle(ctx, commands.NewProcessPendingOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, assigned)
	assignFactory.AssertNotCalled(t, "Create")
}

func TestProcessPendingOrdersCommandHandler_Handle_FailureIsolation(t *testing.T) {
	ctx := t.Context()

	orderA := testPendingOrder(t)
	orderB := testPendingOrder(t)
	pool := []*driver.Driver{testDispatchableDriver(t, 10, 10.5)}

	snapshotFactory := new(MockOrderUoWFactory)
	expectSnapshot(t, snapshotFactory, []*order.Order{orderA, orderB})

	// Order A hits an infrastructure failure; order B still gets served.
	orderRepoA := new(MockOrderRepository)
	driverRepoA := new(MockDriverRepository)
	assignmentRepoA := new(MockAssignmentRepository)
	uowA := new(MockUoW)
	mock.InOrder(
		uowA.On("Begin", ctx).Return(nil).Once(),
		uowA.On("OrderRepository").Return(orderRepoA).Once(),
		uowA.On("DriverRepository").Return(driverRepoA).Once(),
		uowA.On("AssignmentRepository").Return(assignmentRepoA).Once(),
		assignmentRepoA.On("GetByOrderID", ctx, orderA.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepoA.On("Get", ctx, orderA.ID()).Return(nil, errors.New("database error")).Once(),
		uowA.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := new(MockNotifier)
	uowB := expectAssignSuccess(t, orderB, pool, notifier)

	assignFactory := new(MockUoWFactory)
	assignFactory.On("Create").Return(uowA).Once()
	assignFactory.On("Create").Return(uowB).Once()

	handler := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory,
		newAssignHandler(assignFactory, notifier, &recordingPublisher{}),
		testPacing,
		testLogger(),
	)

	assigned, err := handler.Handle(ctx, commands.NewProcessPendingOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Equal(t, order.Pending, orderA.Status())
	assert.Equal(t, order.Assigned, orderB.Status())
}

func TestProcessPendingOrdersCommandHandler_Handle_SingleFlight(t *testing.T) {
	ctx := t.Context()

	started := make(chan struct{})
	release := make(chan struct{})

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	snapshotFactory := new(MockOrderUoWFactory)
	snapshotFactory.On("Create").Return(uow).Once()

	assignFactory := new(MockUoWFactory)
	handler := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory,
		newAssignHandler(assignFactory, new(MockNotifier), &recordingPublisher{}),
		testPacing,
		testLogger(),
	)

	done := make(chan error, 1)
	go func() {
		_, err := handler.Handle(ctx, commands.NewProcessPendingOrdersCommand())
		done <- err
	}()

	<-started

	// A trigger during a running cycle is a silent no-op.
	assigned, err := handler.Handle(ctx, commands.NewProcessPendingOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, assigned)

	close(release)
	require.NoError(t, <-done)

	// Once the cycle finished the guard is released again.
	snapshotFactory2 := new(MockOrderUoWFactory)
	expectSnapshot(t, snapshotFactory2, []*order.Order{})
	handler2 := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory2,
		newAssignHandler(assignFactory, new(MockNotifier), &recordingPublisher{}),
		testPacing,
		testLogger(),
	)
	_, err = handler2.Handle(ctx, commands.NewProcessPendingOrdersCommand())
	require.NoError(t, err)

	snapshotFactory.AssertExpectations(t)
}

func TestProcessPendingOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	snapshotFactory := new(MockOrderUoWFactory)
	handler := commands.NewProcessPendingOrdersCommandHandler(
		snapshotFactory,
		newAssignHandler(new(MockUoWFactory), new(MockNotifier), &recordingPublisher{}),
		testPacing,
		testLogger(),
	)

	_, err := handler.Handle(ctx, commands.ProcessPendingOrdersCommand{})
	require.ErrorIs(t, err, commands.ErrProcessPendingOrdersCommandIsNotConstructed)
	snapshotFactory.AssertNotCalled(t, "Create")
}
