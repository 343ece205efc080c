package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM unit of work against a
// real PostgreSQL database, in particular that the assignment workflow's
// multi-aggregate writes are atomic.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{}, &assignmentrepo.AssignmentDTO{}))

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, drivers, assignments").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func createTestOrder(orderNumber string) *order.Order {
	pickup, _ := kernel.NewLocation(40.7589, -73.9851)
	delivery, _ := kernel.NewLocation(40.7484, -73.9857)
	testOrder, _ := order.NewOrder(kernel.NewUUID(), orderNumber, "Pasta Palace",
		pickup, "350 5th Ave, New York", delivery, "24.50")
	return testOrder
}

func createDispatchableDriver(name string) *driver.Driver {
	location, _ := kernel.NewLocation(40.7505, -73.9934)
	testDriver, _ := driver.NewDriver(kernel.NewUUID(), name, "@"+name, "+15550100", location)
	_ = testDriver.Approve()
	_ = testDriver.SetOnline(true)
	return testDriver
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.AssignmentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// A second begin on an active transaction is a no-op.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentWorkflow_CommitsAtomically() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder("ORD-3001")
	testDriver := createDispatchableDriver("alex")

	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	suite.Require().NoError(testOrder.Assign(testDriver.ID()))
	suite.Require().NoError(testDriver.MarkBusy())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Update(ctx, testDriver))

	record, err := assignment.NewAssignment(kernel.NewUUID(), testOrder.ID(), testDriver.ID(), 1.25)
	suite.Require().NoError(err)
	suite.Require().NoError(record.RecordNotification(true))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, record))

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()

	restoredOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restoredOrder.Status())
	suite.Require().NotNil(restoredOrder.DriverID())
	suite.True(restoredOrder.DriverID().IsEqual(testDriver.ID()))

	restoredDriver, err := newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.False(restoredDriver.IsAvailable())

	restoredRecord, err := newUow.AssignmentRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(restoredRecord.DriverID().IsEqual(testDriver.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllAggregates() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder("ORD-3002")
	testDriver := createDispatchableDriver("sam")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))
	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)
	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder("ORD-3003")
	order2 := createTestOrder("ORD-3004")

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicateAssignment_FailsInsideTransaction() {
	ctx := context.Background()

	testOrder := createTestOrder("ORD-3005")

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))

	first, err := assignment.NewAssignment(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID(), 1.0)
	suite.Require().NoError(err)
	suite.Require().NoError(setupUow.AssignmentRepository().Add(ctx, first))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	second, err := assignment.NewAssignment(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID(), 2.0)
	suite.Require().NoError(err)
	suite.Require().Error(uow.AssignmentRepository().Add(ctx, second))

	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&assignmentrepo.AssignmentDTO{}).
		Where("order_id = ?", testOrder.ID().Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_AutoCommits() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder("ORD-3006")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	newUow := suite.factory.Create()
	restored, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(testOrder.ID()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
