package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLocation(t *testing.T, lat, lon kernel.Degrees) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func testPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-7", "Burger Barn",
		testLocation(t, 10, 10), "12 Elm St",
		testLocation(t, 11, 11), "18.00",
	)
	require.NoError(t, err)
	return o
}

func testDispatchableDriver(t *testing.T, lat, lon kernel.Degrees) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam Lee", "@samlee", "",
		testLocation(t, lat, lon))
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	require.NoError(t, d.SetOnline(true))
	return d
}

func newAssignHandler(factory commands.UoWFactory, notifier ports.AssignmentNotifier,
	publisher ports.EventPublisher) commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(
		factory, services.NewDriverMatcher(), notifier, publisher, testLogger())
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	testDriver := testDispatchableDriver(t, 10, 10.5)
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{testDriver}, nil).Once(),
		notifier.On("NotifyAssignment", ctx, testDriver,
			mock.AnythingOfType("*order.Order"), 55.5).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := newAssignHandler(factory, notifier, publisher)

	assigned, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, assigned)

	// Both aggregates changed state.
	assert.Equal(t, order.Assigned, testOrder.Status())
	require.NotNil(t, testOrder.DriverID())
	assert.True(t, testOrder.DriverID().IsEqual(testDriver.ID()))
	assert.False(t, testDriver.IsAvailable())

	// The persisted record carries the sent outcome.
	record := assignmentRepo.Calls[1].Arguments[1].(*assignment.Assignment)
	assert.Equal(t, assignment.NotificationSent, record.Notification())
	assert.InDelta(t, 55.5, record.DistanceKm(), 0.001)

	assert.Equal(t, []ports.EventKind{
		ports.EventOrderUpdated,
		ports.EventDriverUpdated,
		ports.EventNewAssignment,
	}, publisher.kinds())

	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	existing, err := assignment.NewAssignment(
		kernel.NewUUID(), testOrder.ID(), kernel.NewUUID(), 1.0)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := newAssignHandler(factory, new(MockNotifier), publisher)

	assigned, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Empty(t, publisher.kinds())
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAssignOrderCommandHandler_Handle_OrderNotPending(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	require.NoError(t, testOrder.Assign(kernel.NewUUID()))
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newAssignHandler(factory, new(MockNotifier), &recordingPublisher{})

	assigned, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, assigned)
	driverRepo.AssertNotCalled(t, "GetAllDispatchable", mock.Anything)
}

func TestAssignOrderCommandHandler_Handle_NoDispatchableDriver(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := newAssignHandler(factory, new(MockNotifier), publisher)

	assigned, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, order.Pending, testOrder.Status())
	assert.Empty(t, publisher.kinds())
}

func TestAssignOrderCommandHandler_Handle_NotificationFailure(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	testDriver := testDispatchableDriver(t, 10, 10.5)
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{testDriver}, nil).Once(),
		notifier.On("NotifyAssignment", ctx, testDriver,
			mock.AnythingOfType("*order.Order"), mock.AnythingOfType("float64")).
			Return(errors.New("chat unreachable")).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newAssignHandler(factory, notifier, &recordingPublisher{})

	// The match survives the failed send.
	assigned, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, assigned)

	record := assignmentRepo.Calls[1].Arguments[1].(*assignment.Assignment)
	assert.Equal(t, assignment.NotificationFailed, record.Notification())
}

func TestAssignOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockUoWFactory)
	handler := newAssignHandler(factory, new(MockNotifier), &recordingPublisher{})

	_, err := handler.Handle(ctx, commands.AssignOrderCommand{})
	require.ErrorIs(t, err, commands.ErrAssignOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	testOrder := testPendingOrder(t)
	testDriver := testDispatchableDriver(t, 10, 10.5)
	cmd, err := commands.NewAssignOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	assignmentRepo := new(MockAssignmentRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByOrderID", ctx, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{testDriver}, nil).Once(),
		notifier.On("NotifyAssignment", ctx, testDriver,
			mock.AnythingOfType("*order.Order"), mock.AnythingOfType("float64")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := newAssignHandler(factory, notifier, publisher)

	_, err = handler.Handle(ctx, cmd)
	require.EqualError(t, err, "commit error")
	assert.Empty(t, publisher.kinds())
}
