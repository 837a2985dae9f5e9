package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/dto"
	"github.com/elaroma/cafeteria_pos/internal/utils/money"
)

// catalogService owns the authoritative in-memory product set. Every read and
// mutation goes through its mutex; the product repository is the durable
// counterpart, written through on each administrative change.
type catalogService struct {
	BaseService
	productRepo  portsrepo.ProductRepositoryFacade
	activityRepo portsrepo.ActivityRepository

	mu       sync.RWMutex
	products map[string]domain.Product
}

// CatalogServiceOption is a functional option for configuring the catalog service
type CatalogServiceOption func(*catalogService)

// WithCatalogActivityLog sets the audit-trail repository for the catalog service.
func WithCatalogActivityLog(repo portsrepo.ActivityRepository) CatalogServiceOption {
	return func(s *catalogService) {
		s.activityRepo = repo
	}
}

// NewCatalogService creates a new catalog service. The catalog is empty until
// LoadFromStore runs.
func NewCatalogService(productRepo portsrepo.ProductRepositoryFacade, options ...CatalogServiceOption) portssvc.CatalogSvcFacade {
	svc := &catalogService{
		productRepo: productRepo,
		products:    make(map[string]domain.Product),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure catalogService implements the portssvc.CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// LoadFromStore replaces the in-memory set with the persisted one.
func (s *catalogService) LoadFromStore(ctx context.Context) error {
	products, err := s.productRepo.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products from store: %w", err)
	}

	s.mu.Lock()
	s.products = make(map[string]domain.Product, len(products))
	for _, p := range products {
		s.products[p.Code] = p
	}
	s.mu.Unlock()

	s.LogInfo(ctx, "Catalog loaded from store", slog.Int("product_count", len(products)))
	return nil
}

// GetProduct returns the product if present and active.
func (s *catalogService) GetProduct(ctx context.Context, code string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[code]
	if !ok || !p.Active {
		return nil, apperrors.ErrProductNotFound
	}
	return &p, nil
}

// Reserve checks availability without mutating stock.
func (s *catalogService) Reserve(ctx context.Context, code string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[code]
	if !ok || !p.Active {
		return apperrors.ErrProductNotFound
	}
	if qty > p.Stock {
		return &apperrors.InsufficientStockError{Code: code, Requested: qty, Available: p.Stock}
	}
	return nil
}

// ListProducts returns active products ordered by category then name.
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ListProductsByCategory filters active products by exact category.
func (s *catalogService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Active && p.Category == category {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SearchProductsByName matches active products by case-insensitive substring.
func (s *catalogService) SearchProductsByName(ctx context.Context, name string) ([]domain.Product, error) {
	needle := strings.ToLower(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Active && strings.Contains(strings.ToLower(p.Name), needle) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// LowStock returns active products with stock <= threshold, ascending by stock.
func (s *catalogService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Active && p.Stock <= threshold {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Stock != result[j].Stock {
			return result[i].Stock < result[j].Stock
		}
		return result[i].Code < result[j].Code
	})
	return result, nil
}

// InventoryValue sums stock x cost over the active catalog.
func (s *catalogService) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, p := range s.products {
		if p.Active {
			total = total.Add(p.InventoryValue())
		}
	}
	return money.Round2(total), nil
}

// CreateProduct registers a new product and persists it before exposing it.
func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor string) (*domain.Product, error) {
	if req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost cannot be negative", apperrors.ErrValidation)
	}
	if req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: sale price cannot be negative", apperrors.ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[req.Code]; exists {
		// Inactive products hold their code too: history still references it.
		return nil, fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	product := domain.Product{
		Code:      req.Code,
		Name:      req.Name,
		Cost:      req.Cost,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		Category:  req.Category,
		Active:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to persist new product", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save product %s: %w", req.Code, err)
	}

	s.products[product.Code] = product
	s.recordActivity(ctx, "product_created", fmt.Sprintf("product %s (%s) registered", product.Code, product.Name), actor)
	s.LogInfo(ctx, "Product created", slog.String("code", product.Code), slog.String("name", product.Name))
	return &product, nil
}

// SetPrice applies an administrative price change.
func (s *catalogService) SetPrice(ctx context.Context, code string, price decimal.Decimal, actor string) (*domain.Product, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: sale price cannot be negative", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[code]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	if !p.Active {
		return nil, apperrors.ErrInactiveProduct
	}

	if err := s.productRepo.UpdatePrice(ctx, code, price); err != nil {
		s.LogError(ctx, err, "Failed to persist price change", slog.String("code", code))
		return nil, fmt.Errorf("failed to update price for %s: %w", code, err)
	}

	p.SalePrice = price
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = actor
	s.products[code] = p
	s.recordActivity(ctx, "price_updated", fmt.Sprintf("product %s price set to %s", code, price.StringFixed(2)), actor)
	return &p, nil
}

// SetStock applies an absolute administrative stock adjustment.
func (s *catalogService) SetStock(ctx context.Context, code string, stock int, actor string) (*domain.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[code]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	if !p.Active {
		return nil, apperrors.ErrInactiveProduct
	}

	if err := s.productRepo.UpdateStock(ctx, code, stock); err != nil {
		s.LogError(ctx, err, "Failed to persist stock change", slog.String("code", code))
		return nil, fmt.Errorf("failed to update stock for %s: %w", code, err)
	}

	p.Stock = stock
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = actor
	s.products[code] = p
	s.recordActivity(ctx, "stock_updated", fmt.Sprintf("product %s stock set to %d", code, stock), actor)
	return &p, nil
}

// AddStock increases stock by a positive delta (restock).
func (s *catalogService) AddStock(ctx context.Context, code string, qty int, actor string) (*domain.Product, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[code]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	if !p.Active {
		return nil, apperrors.ErrInactiveProduct
	}

	newStock := p.Stock + qty
	if err := s.productRepo.UpdateStock(ctx, code, newStock); err != nil {
		s.LogError(ctx, err, "Failed to persist restock", slog.String("code", code))
		return nil, fmt.Errorf("failed to update stock for %s: %w", code, err)
	}

	p.Stock = newStock
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = actor
	s.products[code] = p
	s.recordActivity(ctx, "stock_added", fmt.Sprintf("product %s restocked +%d (now %d)", code, qty, newStock), actor)
	return &p, nil
}

// DeactivateProduct soft-deletes a product. The row survives for history.
func (s *catalogService) DeactivateProduct(ctx context.Context, code string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[code]
	if !ok {
		return apperrors.ErrProductNotFound
	}
	if !p.Active {
		return apperrors.ErrInactiveProduct
	}

	if err := s.productRepo.DeactivateProduct(ctx, code); err != nil {
		s.LogError(ctx, err, "Failed to persist deactivation", slog.String("code", code))
		return fmt.Errorf("failed to deactivate product %s: %w", code, err)
	}

	p.Active = false
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = actor
	s.products[code] = p
	s.recordActivity(ctx, "product_deactivated", fmt.Sprintf("product %s deactivated", code), actor)
	return nil
}

// DecrementAll is the commit-time stock gate: under one lock it validates every
// line against current stock and, only if all pass, decrements them all.
// Validation runs in sorted code order so the reported failure is deterministic.
func (s *catalogService) DecrementAll(ctx context.Context, decrements map[string]int) error {
	codes := make([]string, 0, len(decrements))
	for code := range decrements {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, code := range codes {
		qty := decrements[code]
		if qty <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, code)
		}
		p, ok := s.products[code]
		if !ok || !p.Active {
			return apperrors.ErrProductNotFound
		}
		if qty > p.Stock {
			return &apperrors.InsufficientStockError{Code: code, Requested: qty, Available: p.Stock}
		}
	}

	for _, code := range codes {
		p := s.products[code]
		p.Stock -= decrements[code]
		s.products[code] = p
	}
	return nil
}

// RestoreAll compensates a DecrementAll after the durable commit failed.
func (s *catalogService) RestoreAll(ctx context.Context, decrements map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for code, qty := range decrements {
		p, ok := s.products[code]
		if !ok {
			// Cannot happen for codes DecrementAll accepted.
			s.LogWarn(ctx, "RestoreAll skipped unknown product", slog.String("code", code))
			continue
		}
		p.Stock += qty
		s.products[code] = p
	}
}

// recordActivity writes to the audit trail; failures are logged, never propagated.
func (s *catalogService) recordActivity(ctx context.Context, kind, description, actor string) {
	if s.activityRepo == nil {
		return
	}
	activity := domain.Activity{
		Timestamp:   time.Now().UTC(),
		Kind:        kind,
		Description: description,
		Actor:       actor,
	}
	if err := s.activityRepo.RecordActivity(ctx, activity); err != nil {
		s.LogWarn(ctx, "Failed to record activity", slog.String("kind", kind), slog.String("error", err.Error()))
	}
}
