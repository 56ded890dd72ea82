package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"pedidos-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleInput() models.OrderInput {
	return models.OrderInput{
		CustomerName:  strPtr("Arthur"),
		IDDocument:    strPtr("123"),
		ProductName:   strPtr("Mix"),
		AccessoryName: strPtr("Mix"),
		Scent:         strPtr("Uva"),
		Note:          strPtr("OK"),
	}
}

func countID(orders []*models.Order, id int64) int {
	n := 0
	for _, o := range orders {
		if o.ID == id {
			n++
		}
	}
	return n
}

func TestOrderRepo_CreateListDelete(t *testing.T) {
	repo := NewOrderRepo(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if countID(all, id) != 1 {
		t.Fatalf("expected order %d exactly once, got %d", id, countID(all, id))
	}

	o := all[0]
	if o.Active != 0 {
		t.Fatalf("new orders must be inactive")
	}
	if *o.CustomerName != "Arthur" || *o.Scent != "Uva" || *o.Note != "OK" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		t.Fatalf("timestamps must be defaulted by the store")
	}

	removed, err := repo.Delete(ctx, id)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}

	all, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if countID(all, id) != 0 {
		t.Fatalf("deleted order still listed")
	}
}

func TestOrderRepo_CreateStoresMissingFieldsAsNull(t *testing.T) {
	repo := NewOrderRepo(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, models.OrderInput{Scent: strPtr("Menta")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	o, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.CustomerName != nil || o.IDDocument != nil || o.Note != nil {
		t.Fatalf("expected null fields, got %+v", o)
	}
	if o.Scent == nil || *o.Scent != "Menta" {
		t.Fatalf("expected scent Menta, got %v", o.Scent)
	}
}

func TestOrderRepo_ListRecentWindow(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()
	window := 60 * 24 * time.Hour

	fresh, err := repo.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	old, err := repo.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		"UPDATE pedido SET criacao = DATETIME('now', '-61 days') WHERE pedidoid = ?", old); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	recent, err := repo.ListRecent(ctx, window)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if countID(recent, fresh) != 1 {
		t.Fatalf("fresh order missing from recent listing")
	}
	if countID(recent, old) != 0 {
		t.Fatalf("order older than the window must be excluded")
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if countID(all, old) != 1 {
		t.Fatalf("old order must still appear in the full listing")
	}
}

func TestOrderRepo_UpdateReplacesFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		"UPDATE pedido SET atualizacao = DATETIME('now', '-1 day') WHERE pedidoid = ?", id); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	before, _ := repo.GetByID(ctx, id)

	in := models.OrderInput{CustomerName: strPtr("Bia"), IDDocument: strPtr("456")}
	found, err := repo.Update(ctx, id, in)
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}

	after, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *after.CustomerName != "Bia" || *after.IDDocument != "456" {
		t.Fatalf("fields not replaced: %+v", after)
	}
	if after.Scent != nil || after.ProductName != nil {
		t.Fatalf("full replace must null out omitted fields: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt.Time) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt.Time) {
		t.Fatalf("created_at must not change")
	}
}

func TestOrderRepo_MissingIDIsNoop(t *testing.T) {
	repo := NewOrderRepo(openTestDB(t))
	ctx := context.Background()

	found, err := repo.Update(ctx, 999, sampleInput())
	if err != nil || found {
		t.Fatalf("update missing: found=%v err=%v", found, err)
	}
	found, err = repo.SetActive(ctx, 999, 1)
	if err != nil || found {
		t.Fatalf("set active missing: found=%v err=%v", found, err)
	}
	removed, err := repo.Delete(ctx, 999)
	if err != nil || removed {
		t.Fatalf("delete missing: removed=%v err=%v", removed, err)
	}
	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepo_SetActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, v := range []int{-1, 2, 10} {
		if _, err := repo.SetActive(ctx, id, v); !errors.Is(err, ErrInvalidActive) {
			t.Fatalf("SetActive(%d): expected ErrInvalidActive, got %v", v, err)
		}
	}

	if _, err := db.ExecContext(ctx,
		"UPDATE pedido SET atualizacao = DATETIME('now', '-1 day') WHERE pedidoid = ?", id); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	before, _ := repo.GetByID(ctx, id)

	if _, err := repo.SetActive(ctx, id, 1); err != nil {
		t.Fatalf("set active: %v", err)
	}
	o, _ := repo.GetByID(ctx, id)
	if o.Active != 1 {
		t.Fatalf("expected active")
	}
	if !o.UpdatedAt.After(before.UpdatedAt.Time) {
		t.Fatalf("updated_at not refreshed")
	}

	if _, err := repo.SetActive(ctx, id, 0); err != nil {
		t.Fatalf("set inactive: %v", err)
	}
	o, _ = repo.GetByID(ctx, id)
	if o.Active != 0 {
		t.Fatalf("expected inactive")
	}
}

func TestOrderRepo_CountByProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()

	for _, product := range []string{"Reposição", "Reposição", "Aluguel Médio"} {
		in := sampleInput()
		in.ProductName = strPtr(product)
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, models.OrderInput{CustomerName: strPtr("sem produto")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	counts, err := repo.CountByProduct(ctx)
	if err != nil {
		t.Fatalf("count by product: %v", err)
	}
	if counts["Reposição"] != 2 || counts["Aluguel Médio"] != 1 || counts[""] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 groups, got %v", counts)
	}
}
