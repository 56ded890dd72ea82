package database

import (
	"context"
	"database/sql"
)

// CatalogRepo reads the produto and rosh lookup tables.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListProducts returns product names in insertion order.
func (r *CatalogRepo) ListProducts(ctx context.Context) ([]string, error) {
	return r.names(ctx, "SELECT nome FROM produto ORDER BY produtoid")
}

// ListAccessories returns rosh names in insertion order.
func (r *CatalogRepo) ListAccessories(ctx context.Context) ([]string, error) {
	return r.names(ctx, "SELECT nome FROM rosh ORDER BY roshid")
}

func (r *CatalogRepo) names(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name.String)
	}

	return names, rows.Err()
}
