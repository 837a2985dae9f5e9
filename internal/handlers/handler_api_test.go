package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	"github.com/elaroma/cafeteria_pos/internal/core/services"
	"github.com/elaroma/cafeteria_pos/internal/dto"
	"github.com/elaroma/cafeteria_pos/internal/handlers"
	"github.com/elaroma/cafeteria_pos/internal/platform/config"
)

// --- Mock ProductRepository ---
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

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

// --- Mock SaleRepository ---
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

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

// The provider carries the ledger facade, not the pgx transaction wrapper,
// so the suite runs against mocks without a database.
var _ = portsrepo.RepositoryProvider{SaleRepo: (*MockSaleRepository)(nil)}

// --- Mock ReportingRepository ---
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

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// APITestSuite runs the HTTP surface against real services over mocked
// persistence, which is how the engine runs in production minus the database.
type APITestSuite struct {
	suite.Suite
	router        *gin.Engine
	productRepo   *MockProductRepository
	saleRepo      *MockSaleRepository
	reportingRepo *MockReportingRepository
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		s.Require().NoError(dto.RegisterCustomValidators(v))
	}

	s.productRepo = new(MockProductRepository)
	s.saleRepo = new(MockSaleRepository)
	s.reportingRepo = new(MockReportingRepository)

	seed := []domain.Product{
		{Code: "CAF001", Name: "Espresso", Cost: decimal.RequireFromString("2.00"), SalePrice: decimal.RequireFromString("5.00"), Stock: 10, Category: "drinks", Active: true},
		{Code: "SAN001", Name: "Ham Sandwich", Cost: decimal.RequireFromString("3.00"), SalePrice: decimal.RequireFromString("7.50"), Stock: 4, Category: "food", Active: true},
	}
	s.productRepo.On("LoadProducts", mock.Anything).Return(seed, nil).Once()

	cfg := &config.Config{
		MaxDiscountPct:    decimal.NewFromInt(50),
		LowStockThreshold: 10,
	}
	container := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{
		ProductRepo:   s.productRepo,
		SaleRepo:      s.saleRepo,
		ReportingRepo: s.reportingRepo,
	})
	s.Require().NoError(container.Catalog.LoadFromStore(context.Background()))

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *APITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestCreateProduct() {
	s.productRepo.On("SaveProduct", mock.Anything, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	w := s.request(http.MethodPost, "/api/v1/products", gin.H{
		"code": "TEA001", "name": "Green Tea",
		"cost": "1.00", "salePrice": "3.00",
		"stock": 20, "category": "drinks",
	})
	s.Equal(http.StatusCreated, w.Code)

	var resp dto.ProductResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("TEA001", resp.Code)
	s.True(resp.Active)
}

func (s *APITestSuite) TestCreateProduct_InvalidCode() {
	w := s.request(http.MethodPost, "/api/v1/products", gin.H{
		"code": "tea-1", "name": "Green Tea",
		"cost": "1.00", "salePrice": "3.00",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestGetProduct() {
	w := s.request(http.MethodGet, "/api/v1/products/CAF001", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp dto.ProductResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Espresso", resp.Name)

	w = s.request(http.MethodGet, "/api/v1/products/NOPE001", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestCartLifecycleAndCommit() {
	// Open a cart.
	w := s.request(http.MethodPost, "/api/v1/carts", gin.H{"cashier": "maria"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var cart dto.CartResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))

	// Add two lines.
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items", cart.CartID), gin.H{"productCode": "CAF001", "quantity": 2})
	s.Require().Equal(http.StatusOK, w.Code)
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items", cart.CartID), gin.H{"productCode": "SAN001", "quantity": 1})
	s.Require().Equal(http.StatusOK, w.Code)

	// 10% discount on subtotal 17.50 -> total 15.75.
	w = s.request(http.MethodPut, fmt.Sprintf("/api/v1/carts/%s/discount", cart.CartID), gin.H{"percentage": "10"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))
	s.True(cart.Total.Equal(decimal.RequireFromString("15.75")), "got %s", cart.Total)

	// Commit.
	s.saleRepo.On("NextSaleNumber", mock.Anything).Return(int64(1001), nil).Once()
	s.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("domain.Sale"), map[string]int{"CAF001": 2, "SAN001": 1}).Return(nil).Once()

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/commit", cart.CartID), nil)
	s.Require().Equal(http.StatusCreated, w.Code)
	var sale dto.SaleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sale))
	s.Equal(int64(1001), sale.SaleNumber)
	s.Len(sale.Items, 2)

	// A second commit conflicts.
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/commit", cart.CartID), nil)
	s.Equal(http.StatusConflict, w.Code)

	s.saleRepo.AssertExpectations(s.T())
}

func (s *APITestSuite) TestCommit_InsufficientStockConflict() {
	w := s.request(http.MethodPost, "/api/v1/carts", gin.H{"cashier": "maria"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var cart dto.CartResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))

	// SAN001 only has 4 in stock.
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items", cart.CartID), gin.H{"productCode": "SAN001", "quantity": 5})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestCancelCart() {
	w := s.request(http.MethodPost, "/api/v1/carts", gin.H{"cashier": "maria"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var cart dto.CartResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/cancel", cart.CartID), nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, "/api/v1/carts/"+cart.CartID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))
	s.Equal("CANCELLED", cart.Status)
}

func (s *APITestSuite) TestListSales_Paginated() {
	token := "next-page"
	s.saleRepo.On("ListSales", mock.Anything, 2, (*string)(nil)).Return([]domain.Sale{
		{SaleNumber: 1002, Cashier: "maria", Total: decimal.RequireFromString("15.75")},
		{SaleNumber: 1001, Cashier: "maria", Total: decimal.RequireFromString("9.00")},
	}, &token, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/sales?limit=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListSalesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Sales, 2)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-page", *resp.NextToken)
}

func (s *APITestSuite) TestReports() {
	s.reportingRepo.On("GetGeneralSummary", mock.Anything).Return(&domain.GeneralSummary{
		SaleCount:    2,
		TotalRevenue: decimal.RequireFromString("24.75"),
	}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/reports/summary", nil)
	s.Equal(http.StatusOK, w.Code)

	// Low stock comes from the live catalog: SAN001 has 4 <= 10.
	w = s.request(http.MethodGet, "/api/v1/reports/low-stock", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var products []dto.ProductResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &products))
	s.Require().NotEmpty(products)
	s.Equal("SAN001", products[0].Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
