package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// MockProductRepository is a mock implementation of portsrepo.ProductRepositoryFacade
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, code string, stock int) error {
	args := m.Called(ctx, code, stock)
	return args.Error(0)
}

func (m *MockProductRepository) UpdatePrice(ctx context.Context, code string, price decimal.Decimal) error {
	args := m.Called(ctx, code, price)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of portsrepo.SaleRepositoryFacade
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByNumber(ctx context.Context, saleNumber int64) (*domain.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByDate(ctx context.Context, date time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) ListSalesByCashier(ctx context.Context, cashier string) ([]domain.Sale, error) {
	args := m.Called(ctx, cashier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindLineItemsBySale(ctx context.Context, saleNumber int64) ([]domain.LineItem, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockSaleRepository) NextSaleNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, stockDecrements map[string]int) error {
	args := m.Called(ctx, sale, stockDecrements)
	return args.Error(0)
}

// MockReportingRepository is a mock implementation of portsrepo.ReportingRepository
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDailyTotals(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyReport), args.Error(1)
}

func (m *MockReportingRepository) GetTopSellers(ctx context.Context, n int) ([]domain.TopSellerRow, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopSellerRow), args.Error(1)
}

func (m *MockReportingRepository) GetSalesByCashier(ctx context.Context) ([]domain.CashierReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashierReport), args.Error(1)
}

func (m *MockReportingRepository) GetGeneralSummary(ctx context.Context) (*domain.GeneralSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralSummary), args.Error(1)
}

// MockActivityRepository is a mock implementation of portsrepo.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) RecordActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListRecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// dec is a test helper for building decimals from strings.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
