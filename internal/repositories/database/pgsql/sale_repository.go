package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	"github.com/elaroma/cafeteria_pos/internal/models"
	"github.com/elaroma/cafeteria_pos/internal/utils/mapping"
	"github.com/elaroma/cafeteria_pos/internal/utils/pagination"
)

const uniqueViolationCode = "23505"

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for the sale ledger.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

// NextSaleNumber durably increments and returns the sale-number counter. It
// runs outside any caller transaction on purpose: once this commits, the
// number is spent whether or not the sale that requested it ever lands.
func (r *PgxSaleRepository) NextSaleNumber(ctx context.Context) (int64, error) {
	query := `
		UPDATE sale_counter
		SET last_number = last_number + 1
		WHERE counter_id = 1
		RETURNING last_number;
	`
	var number int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&number); err != nil {
		return 0, fmt.Errorf("failed to advance sale counter: %w", err)
	}
	return number, nil
}

// SaveSale persists the sale header, its line items, and the stock decrements
// in a single database transaction. The stock update carries a stock >= qty
// guard so the durable store can never go negative even if the in-memory gate
// and the database have drifted.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, stockDecrements map[string]int) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	modelSale := mapping.ToModelSale(sale)
	headerQuery := `
		INSERT INTO sales (sale_number, sold_at, cashier, discount_pct, total, profit)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelSale.SaleNumber,
		modelSale.Timestamp,
		modelSale.Cashier,
		modelSale.DiscountPct,
		modelSale.Total,
		modelSale.Profit,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: sale number %d", apperrors.ErrDuplicate, sale.SaleNumber)
		}
		return fmt.Errorf("failed to insert sale %d: %w", sale.SaleNumber, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO sale_line_items (sale_number, product_code, product_name, unit_price, unit_cost, quantity)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, li := range mapping.ToModelLineItems(sale.SaleNumber, sale.Items) {
		batch.Queue(lineQuery, li.SaleNumber, li.ProductCode, li.ProductName, li.UnitPrice, li.UnitCost, li.Quantity)
	}
	stockQuery := `
		UPDATE products
		SET stock = stock - $1, last_updated_at = now()
		WHERE code = $2 AND stock >= $1;
	`
	for code, qty := range stockDecrements {
		batch.Queue(stockQuery, qty, code)
	}

	results := tx.SendBatch(ctx, batch)
	lineCount := len(sale.Items)
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to persist sale %d lines: %w", sale.SaleNumber, err)
		}
		if i >= lineCount && tag.RowsAffected() == 0 {
			_ = results.Close()
			return fmt.Errorf("%w: stock underflow persisting sale %d", apperrors.ErrPersistence, sale.SaleNumber)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch for sale %d: %w", sale.SaleNumber, err)
	}

	return r.Commit(ctx, tx)
}

// FindSaleByNumber retrieves a committed sale with its line items.
func (r *PgxSaleRepository) FindSaleByNumber(ctx context.Context, saleNumber int64) (*domain.Sale, error) {
	query := `
		SELECT sale_number, sold_at, cashier, discount_pct, total, profit
		FROM sales
		WHERE sale_number = $1;
	`
	var modelSale models.Sale
	err := r.Pool.QueryRow(ctx, query, saleNumber).Scan(
		&modelSale.SaleNumber,
		&modelSale.Timestamp,
		&modelSale.Cashier,
		&modelSale.DiscountPct,
		&modelSale.Total,
		&modelSale.Profit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale %d: %w", saleNumber, err)
	}

	sale := mapping.ToDomainSale(modelSale)
	sale.Items, err = r.FindLineItemsBySale(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindLineItemsBySale retrieves the frozen line items of a sale.
func (r *PgxSaleRepository) FindLineItemsBySale(ctx context.Context, saleNumber int64) ([]domain.LineItem, error) {
	query := `
		SELECT sale_number, product_code, product_name, unit_price, unit_cost, quantity
		FROM sale_line_items
		WHERE sale_number = $1
		ORDER BY product_code;
	`
	rows, err := r.Pool.Query(ctx, query, saleNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for sale %d: %w", saleNumber, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SaleLineItem, error) {
		var li models.SaleLineItem
		err := row.Scan(&li.SaleNumber, &li.ProductCode, &li.ProductName, &li.UnitPrice, &li.UnitCost, &li.Quantity)
		return li, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items for sale %d: %w", saleNumber, err)
	}

	items := make([]domain.LineItem, len(modelItems))
	for i, m := range modelItems {
		items[i] = mapping.ToDomainLineItem(m)
	}
	return items, nil
}

// ListSales returns committed sales newest first using token-based pagination.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	query := `
		SELECT sale_number, sold_at, cashier, discount_pct, total, profit
		FROM sales
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		ts, number, err := pagination.DecodeSaleToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (sold_at, sale_number) < ($1, $2)`
		args = append(args, ts, number)
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY sold_at DESC, sale_number DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales, err := collectSales(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[len(sales)-1]
		t := pagination.EncodeSaleToken(last.Timestamp, last.SaleNumber)
		token = &t
	}
	return sales, token, nil
}

// ListSalesByDate returns the committed sales of one calendar day, newest first.
func (r *PgxSaleRepository) ListSalesByDate(ctx context.Context, date time.Time) ([]domain.Sale, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT sale_number, sold_at, cashier, discount_pct, total, profit
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		ORDER BY sold_at DESC, sale_number DESC;
	`
	rows, err := r.Pool.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for %s: %w", dayStart.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return collectSales(rows)
}

// ListSalesByCashier returns the committed sales of one cashier, newest first.
func (r *PgxSaleRepository) ListSalesByCashier(ctx context.Context, cashier string) ([]domain.Sale, error) {
	query := `
		SELECT sale_number, sold_at, cashier, discount_pct, total, profit
		FROM sales
		WHERE cashier = $1
		ORDER BY sold_at DESC, sale_number DESC;
	`
	rows, err := r.Pool.Query(ctx, query, cashier)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for cashier %s: %w", cashier, err)
	}
	defer rows.Close()

	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]domain.Sale, error) {
	modelSales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sale, error) {
		var s models.Sale
		err := row.Scan(&s.SaleNumber, &s.Timestamp, &s.Cashier, &s.DiscountPct, &s.Total, &s.Profit)
		return s, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Sale{}, nil
		}
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}

	sales := make([]domain.Sale, len(modelSales))
	for i, m := range modelSales {
		sales[i] = mapping.ToDomainSale(m)
	}
	return sales, nil
}
