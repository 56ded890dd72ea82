package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path string
}

// Open opens the sqlite store at cfg.Path and provisions it. Provisioning is
// idempotent: tables are only created when absent and lookup rows are only
// seeded into empty tables.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := bootstrap(ctx, db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap database: %w", err)
	}

	return db, nil
}

func bootstrap(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}

	for _, s := range lookups {
		seeded, err := seedLookup(ctx, db, s)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.table, err)
		}
		if seeded {
			log.Info().Str("table", s.table).Int("rows", len(s.names)).Msg("seeded lookup table")
		}
	}

	return nil
}

type table struct {
	name string
	ddl  string
}

// Order text columns are nullable and nome_produto/nome_rosh carry names, so
// there are no foreign keys: references to produto and rosh are advisory.
var tables = []table{
	{
		name: "produto",
		ddl: `
			CREATE TABLE IF NOT EXISTS produto (
				produtoid INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT
			)
		`,
	},
	{
		name: "rosh",
		ddl: `
			CREATE TABLE IF NOT EXISTS rosh (
				roshid INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT
			)
		`,
	},
	{
		name: "pedido",
		ddl: `
			CREATE TABLE IF NOT EXISTS pedido (
				pedidoid INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT,
				rg TEXT,
				nome_produto TEXT,
				nome_rosh TEXT,
				essencia TEXT,
				observacao TEXT,
				ativo INTEGER NOT NULL DEFAULT 0,
				criacao DATETIME DEFAULT CURRENT_TIMESTAMP,
				atualizacao DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_pedido_criacao ON pedido(criacao);
		`,
	},
	{
		name: "user",
		ddl: `
			CREATE TABLE IF NOT EXISTS "user" (
				userid INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT NOT NULL UNIQUE,
				senha TEXT NOT NULL,
				admin INTEGER NOT NULL DEFAULT 0
			)
		`,
	},
}

type lookup struct {
	table string
	names []string
}

var lookups = []lookup{
	{table: "produto", names: []string{"Aluguel Pequeno", "Aluguel Médio", "Reposição", "Funcionário", "Da casa"}},
	{table: "rosh", names: []string{"Mix", "Único"}},
}

func seedLookup(ctx context.Context, db *sql.DB, l lookup) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+l.table).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	for _, name := range l.names {
		if _, err := db.ExecContext(ctx, "INSERT INTO "+l.table+" (nome) VALUES (?)", name); err != nil {
			return false, err
		}
	}
	return true, nil
}
