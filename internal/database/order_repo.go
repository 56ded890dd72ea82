package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pedidos-backend/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidActive = errors.New("active flag must be 0 or 1")
)

const orderColumns = `pedidoid, name, rg, nome_produto, nome_rosh, essencia, observacao, ativo, criacao, atualizacao`

// OrderRepo handles pedido database operations. Every method is a single
// statement; timestamps always come from the store clock.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo creates a new order repository
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// ListRecent returns orders whose creation time falls within window of the
// store's current time.
func (r *OrderRepo) ListRecent(ctx context.Context, window time.Duration) ([]*models.Order, error) {
	modifier := fmt.Sprintf("-%d seconds", int64(window/time.Second))
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM pedido
		WHERE criacao >= DATETIME('now', ?)
		ORDER BY pedidoid
	`, modifier)
}

// ListAll returns every order regardless of age.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM pedido ORDER BY pedidoid`)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetByID retrieves an order by ID
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM pedido WHERE pedidoid = ?`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new inactive order and returns its ID. Nil fields are
// stored as NULL.
func (r *OrderRepo) Create(ctx context.Context, in models.OrderInput) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO pedido (name, rg, nome_produto, nome_rosh, essencia, observacao)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.CustomerName, in.IDDocument, in.ProductName, in.AccessoryName, in.Scent, in.Note)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Update replaces every mutable field of an order. It reports whether a row
// matched; an unknown id is not an error.
func (r *OrderRepo) Update(ctx context.Context, id int64, in models.OrderInput) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pedido SET
			name = ?,
			rg = ?,
			nome_produto = ?,
			nome_rosh = ?,
			essencia = ?,
			observacao = ?,
			atualizacao = CURRENT_TIMESTAMP
		WHERE pedidoid = ?
	`, in.CustomerName, in.IDDocument, in.ProductName, in.AccessoryName, in.Scent, in.Note, id)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// SetActive sets the active flag, which must be exactly 0 or 1.
func (r *OrderRepo) SetActive(ctx context.Context, id int64, active int) (bool, error) {
	if active != 0 && active != 1 {
		return false, ErrInvalidActive
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE pedido SET ativo = ?, atualizacao = CURRENT_TIMESTAMP WHERE pedidoid = ?",
		active, id,
	)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// Delete removes an order. It reports whether a row was removed; an unknown
// id is not an error.
func (r *OrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pedido WHERE pedidoid = ?", id)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// CountByProduct returns the number of orders per product name. Orders
// without a product are counted under "".
func (r *OrderRepo) CountByProduct(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(nome_produto, ''), COUNT(*) FROM pedido GROUP BY COALESCE(nome_produto, '')`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			product string
			n       int
		)
		if err := rows.Scan(&product, &n); err != nil {
			return nil, err
		}
		counts[product] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	o := &models.Order{}
	err := s.Scan(
		&o.ID, &o.CustomerName, &o.IDDocument, &o.ProductName, &o.AccessoryName,
		&o.Scent, &o.Note, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
