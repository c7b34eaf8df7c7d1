package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}, &stockrepo.VariantDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE variants").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.StockRepository(), "First instance should provide stock repository")
	suite.NotNil(uow2.VoucherRepository(), "Second instance should provide voucher repository")
	suite.NotNil(uow2.DeliveryRepository(), "Second instance should provide delivery repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_CommitWithoutBegin verifies committing outside a transaction fails.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Commit without an open transaction should fail")
}

// TestUnitOfWork_CommitPersistsAllWrites verifies that writes made through
// different repositories of one unit of work land together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAllWrites() {
	ctx := context.Background()

	variantID := suite.insertVariant(100000, 10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.StockRepository().Decrement(ctx, variantID, 2)
	suite.Require().NoError(err)

	testOrder := suite.createTestOrder(variantID, 2)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	// Both writes are visible after commit
	suite.assertStock(variantID, 8)
	suite.assertOrderCount(1)
}

// TestUnitOfWork_RollbackDiscardsAllWrites verifies that a rollback leaves
// no partial effect of a multi-repository command.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllWrites() {
	ctx := context.Background()

	variantID := suite.insertVariant(100000, 10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.StockRepository().Decrement(ctx, variantID, 2)
	suite.Require().NoError(err)

	testOrder := suite.createTestOrder(variantID, 2)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	// Neither write survived
	suite.assertStock(variantID, 10)
	suite.assertOrderCount(0)
}

// TestUnitOfWork_RepositoriesShareTransaction verifies a repository read
// observes a write made earlier in the same transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoriesShareTransaction() {
	ctx := context.Background()

	variantID := suite.insertVariant(100000, 10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.StockRepository().Decrement(ctx, variantID, 4))

	snapshot, err := uow.StockRepository().GetSnapshot(ctx, variantID)
	suite.Require().NoError(err)
	suite.Equal(6, snapshot.Stock, "Read inside the transaction should observe the decrement")

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertStock(variantID, 10)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(variantID kernel.UUID, quantity int) *order.Order {
	price, err := kernel.NewMoneyFromInt(100000)
	suite.Require().NoError(err)

	line, err := order.NewLine(kernel.NewUUID(), variantID, quantity, price, price)
	suite.Require().NoError(err)

	total := price.MulInt(quantity)
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		[]*order.Line{line},
		total, kernel.ZeroMoney(), total,
		nil,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) insertVariant(price int64, stock int) kernel.UUID {
	id := kernel.NewUUID()
	dto := stockrepo.VariantDTO{
		VariantID:  id.Bytes(),
		ProductID:  kernel.NewUUID().Bytes(),
		CategoryID: kernel.NewUUID().Bytes(),
		BrandID:    kernel.NewUUID().Bytes(),
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) assertStock(variantID kernel.UUID, expected int) {
	var dto stockrepo.VariantDTO
	err := suite.db.First(&dto, "variant_id = ?", variantID.Bytes()).Error
	suite.Require().NoError(err)
	suite.Equal(expected, dto.Stock)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
