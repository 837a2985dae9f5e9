package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/platform/metrics"
)

// saleService is the transaction coordinator. CommitCart is the only path that
// turns a draft into ledger state, and commitMu serializes it end to end: at
// most one commit is in flight at any moment, so two carts racing over the last
// unit of stock resolve deterministically.
type saleService struct {
	BaseService
	saleRepo     portsrepo.SaleRepositoryFacade
	carts        portssvc.CartSvcFacade
	stockGate    portssvc.StockGateSvc
	activityRepo portsrepo.ActivityRepository

	commitMu chan struct{}
}

// SaleServiceOption is a functional option for configuring the sale service
type SaleServiceOption func(*saleService)

// WithSaleActivityLog sets the audit-trail repository for the sale service.
func WithSaleActivityLog(repo portsrepo.ActivityRepository) SaleServiceOption {
	return func(s *saleService) {
		s.activityRepo = repo
	}
}

// NewSaleService creates a new sale service coordinating carts, the stock gate
// and the durable ledger.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, carts portssvc.CartSvcFacade, stockGate portssvc.StockGateSvc, options ...SaleServiceOption) portssvc.SaleSvcFacade {
	svc := &saleService{
		saleRepo:  saleRepo,
		carts:     carts,
		stockGate: stockGate,
		commitMu:  make(chan struct{}, 1),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure saleService implements the portssvc.SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CommitCart runs the commit protocol:
//
//  1. acquire the commit lock (context-aware)
//  2. validate the cart is open and non-empty
//  3. decrement stock for every line under the catalog lock, all or nothing
//  4. draw the next sale number (durable, never reissued)
//  5. persist the sale in one database transaction
//  6. on persistence failure restore the decremented stock and surface
//     a PersistenceError; the drawn number stays retired
//  7. finalize the cart as Committed
//
// The protocol persists the snapshot taken in step 2. A cart belongs to one
// terminal session; a mutation issued concurrently with its own commit is not
// guaranteed to land in the persisted sale.
func (s *saleService) CommitCart(ctx context.Context, cartID string) (*domain.Sale, error) {
	select {
	case s.commitMu <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.commitMu }()

	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.IsOpen() {
		metrics.SalesRejected.WithLabelValues("cart_finalized").Inc()
		return nil, apperrors.ErrCartFinalized
	}
	if cart.IsEmpty() {
		metrics.SalesRejected.WithLabelValues("empty_cart").Inc()
		return nil, apperrors.ErrEmptyCart
	}

	decrements := make(map[string]int, len(cart.Items))
	for _, li := range cart.Items {
		decrements[li.ProductCode] = li.Quantity
	}

	if err := s.stockGate.DecrementAll(ctx, decrements); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			metrics.SalesRejected.WithLabelValues("insufficient_stock").Inc()
		} else {
			metrics.SalesRejected.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	number, err := s.saleRepo.NextSaleNumber(ctx)
	if err != nil {
		s.stockGate.RestoreAll(ctx, decrements)
		metrics.CommitRollbacks.Inc()
		s.LogError(ctx, err, "Failed to draw sale number", slog.String("cart_id", cartID))
		return nil, &apperrors.PersistenceError{Op: "next sale number", Cause: err}
	}

	sale := domain.NewSaleFromCart(number, cart, time.Now().UTC())

	if err := s.saleRepo.SaveSale(ctx, sale, decrements); err != nil {
		// The drawn number is retired, not reused: reissuing it after a failed
		// save would risk colliding with a concurrent writer's committed row.
		s.stockGate.RestoreAll(ctx, decrements)
		metrics.CommitRollbacks.Inc()
		s.LogError(ctx, err, "Failed to persist sale, stock restored",
			slog.Int64("sale_number", number), slog.String("cart_id", cartID))
		return nil, &apperrors.PersistenceError{Op: "save sale", Cause: err}
	}

	if _, err := s.carts.FinalizeCart(ctx, cartID, domain.SaleCommitted); err != nil {
		// The sale is durable; a finalization hiccup must not fail the commit.
		s.LogWarn(ctx, "Failed to finalize committed cart",
			slog.String("cart_id", cartID), slog.String("error", err.Error()))
	}

	metrics.SalesCommitted.Inc()
	s.recordActivity(ctx, "sale_committed",
		fmt.Sprintf("sale #%d committed, total %s", sale.SaleNumber, sale.Total.StringFixed(2)), sale.Cashier)
	s.LogInfo(ctx, "Sale committed",
		slog.Int64("sale_number", sale.SaleNumber),
		slog.String("cashier", sale.Cashier),
		slog.String("total", sale.Total.StringFixed(2)),
		slog.Int("line_count", len(sale.Items)))
	return &sale, nil
}

// CancelCart moves an open cart to Cancelled. No stock or ledger effect.
func (s *saleService) CancelCart(ctx context.Context, cartID string) error {
	cart, err := s.carts.FinalizeCart(ctx, cartID, domain.SaleCancelled)
	if err != nil {
		return err
	}
	s.recordActivity(ctx, "sale_cancelled", fmt.Sprintf("cart %s cancelled", cartID), cart.Cashier)
	s.LogInfo(ctx, "Cart cancelled", slog.String("cart_id", cartID))
	return nil
}

// GetSale retrieves a committed sale with its line items.
func (s *saleService) GetSale(ctx context.Context, saleNumber int64) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByNumber(ctx, saleNumber)
}

// ListSales returns committed sales newest first, paginated by token.
func (s *saleService) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	return s.saleRepo.ListSales(ctx, limit, nextToken)
}

// ListSalesByDate returns the committed sales of one calendar day.
func (s *saleService) ListSalesByDate(ctx context.Context, date time.Time) ([]domain.Sale, error) {
	return s.saleRepo.ListSalesByDate(ctx, date)
}

// ListSalesByCashier returns the committed sales of one cashier.
func (s *saleService) ListSalesByCashier(ctx context.Context, cashier string) ([]domain.Sale, error) {
	if cashier == "" {
		return nil, fmt.Errorf("%w: cashier is required", apperrors.ErrValidation)
	}
	return s.saleRepo.ListSalesByCashier(ctx, cashier)
}

func (s *saleService) recordActivity(ctx context.Context, kind, description, actor string) {
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
