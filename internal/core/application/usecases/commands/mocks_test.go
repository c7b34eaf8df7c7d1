package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Update(ctx context.Context, o *order.Order, from order.Status) error {
	args := m.Called(ctx, o, from)
	return args.Error(0)
}

func (m *OrderRepoMock) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetFirstShippedUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) SumCompletedTotals(ctx context.Context, customerID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type PromotionRepoMock struct{ mock.Mock }

func (m *PromotionRepoMock) GetCandidates(
	ctx context.Context,
	target promotion.TargetContext,
) ([]*promotion.Promotion, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*promotion.Promotion), args.Error(1)
}

func (m *PromotionRepoMock) AddUsage(ctx context.Context, usage *promotion.Usage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *PromotionRepoMock) DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type VoucherRepoMock struct{ mock.Mock }

func (m *VoucherRepoMock) FindIssueByCode(
	ctx context.Context,
	code string,
) (*voucher.Issue, *voucher.Voucher, error) {
	args := m.Called(ctx, code)
	var issue *voucher.Issue
	var v *voucher.Voucher
	if args.Get(0) != nil {
		issue = args.Get(0).(*voucher.Issue)
	}
	if args.Get(1) != nil {
		v = args.Get(1).(*voucher.Voucher)
	}
	return issue, v, args.Error(2)
}

func (m *VoucherRepoMock) FindPublicByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voucher.Voucher), args.Error(1)
}

func (m *VoucherRepoMock) FindRankByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voucher.Voucher), args.Error(1)
}

func (m *VoucherRepoMock) HasCustomerUsage(ctx context.Context, voucherID, customerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, voucherID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *VoucherRepoMock) AddUsage(ctx context.Context, usage *voucher.Usage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *VoucherRepoMock) DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type DeliveryRepoMock struct{ mock.Mock }

func (m *DeliveryRepoMock) Add(ctx context.Context, a *delivery.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *DeliveryRepoMock) Update(ctx context.Context, a *delivery.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *DeliveryRepoMock) Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *DeliveryRepoMock) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *DeliveryRepoMock) CountDeliveringByShipper(ctx context.Context, shipperID kernel.UUID) (int, error) {
	args := m.Called(ctx, shipperID)
	return args.Int(0), args.Error(1)
}

func (m *DeliveryRepoMock) GetFreeShippers(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type StockRepoMock struct{ mock.Mock }

func (m *StockRepoMock) GetSnapshot(ctx context.Context, variantID kernel.UUID) (catalog.VariantSnapshot, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).(catalog.VariantSnapshot), args.Error(1)
}

func (m *StockRepoMock) Decrement(ctx context.Context, variantID kernel.UUID, quantity int) error {
	args := m.Called(ctx, variantID, quantity)
	return args.Error(0)
}

func (m *StockRepoMock) Restore(ctx context.Context, variantID kernel.UUID, quantity int) error {
	args := m.Called(ctx, variantID, quantity)
	return args.Error(0)
}

type txMock struct{ mock.Mock }

func (m *txMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type OrderUoWMock struct{ txMock }

func (m *OrderUoWMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type OrderUoWFactoryMock struct{ mock.Mock }

func (m *OrderUoWFactoryMock) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type CheckoutUoWMock struct{ txMock }

func (m *CheckoutUoWMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *CheckoutUoWMock) PromotionRepository() ports.PromotionRepository {
	args := m.Called()
	return args.Get(0).(ports.PromotionRepository)
}

func (m *CheckoutUoWMock) VoucherRepository() ports.VoucherRepository {
	args := m.Called()
	return args.Get(0).(ports.VoucherRepository)
}

func (m *CheckoutUoWMock) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *CheckoutUoWMock) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type CheckoutUoWFactoryMock struct{ mock.Mock }

func (m *CheckoutUoWFactoryMock) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type CompletionUoWMock struct{ txMock }

func (m *CompletionUoWMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *CompletionUoWMock) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

type CompletionUoWFactoryMock struct{ mock.Mock }

func (m *CompletionUoWFactoryMock) Create() commands.CompletionUoW {
	args := m.Called()
	return args.Get(0).(commands.CompletionUoW)
}

type DeliveryUoWMock struct{ txMock }

func (m *DeliveryUoWMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *DeliveryUoWMock) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type DeliveryUoWFactoryMock struct{ mock.Mock }

func (m *DeliveryUoWFactoryMock) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) OrderStatusChanged(ctx context.Context, orderID kernel.UUID, status order.Status) {
	m.Called(ctx, orderID, status)
}

func (m *PublisherMock) DeliveryStatusChanged(
	ctx context.Context,
	assignmentID, orderID kernel.UUID,
	status delivery.Status,
) {
	m.Called(ctx, assignmentID, orderID, status)
}

type PolicyMock struct{ mock.Mock }

func (m *PolicyMock) OrderDelivered(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
