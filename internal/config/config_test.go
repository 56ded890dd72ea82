package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %q", cfg.Port)
	}
	if cfg.Session.Lifetime != 2*time.Hour {
		t.Fatalf("expected 2h session lifetime, got %s", cfg.Session.Lifetime)
	}
	if cfg.Database.RecentWindow != 60*24*time.Hour {
		t.Fatalf("expected 60 day window, got %s", cfg.Database.RecentWindow)
	}
	if cfg.Session.Secret == "" {
		t.Fatalf("expected development secret to be filled in")
	}
	if cfg.LockAPI {
		t.Fatalf("api must be open by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PEDIDOS_PORT":             "8081",
		"PEDIDOS_DB_PATH":          "/tmp/x.db",
		"PEDIDOS_SESSION_LIFETIME": "30m",
		"PEDIDOS_SESSION_SECRET":   "s3cret",
		"PEDIDOS_LOCK_API":         "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8081" || cfg.Database.Path != "/tmp/x.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Session.Lifetime != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.Session.Lifetime)
	}
	if cfg.Session.Secret != "s3cret" || !cfg.LockAPI {
		t.Fatalf("unexpected session/lock config: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"production without secret", map[string]string{"PEDIDOS_ENV": "production"}},
		{"zero lifetime", map[string]string{"PEDIDOS_SESSION_LIFETIME": "0s"}},
		{"negative window", map[string]string{"PEDIDOS_RECENT_WINDOW": "-1h"}},
		{"bad duration", map[string]string{"PEDIDOS_SESSION_LIFETIME": "soon"}},
		{"negative price", map[string]string{"PEDIDOS_PRICES": "Reposição:-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(tt.env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_Prices(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]float64{
		"Aluguel Médio":   50,
		"Aluguel Pequeno": 40,
		"Reposição":       25,
		"Funcionário":     20,
		"Da casa":         0,
	}
	if len(cfg.Prices) != len(want) {
		t.Fatalf("expected %d prices, got %v", len(want), cfg.Prices)
	}
	for product, price := range want {
		got, ok := cfg.Prices[product]
		if !ok || got != price {
			t.Fatalf("price of %q: got %v (present=%v), want %v", product, got, ok, price)
		}
	}

	cfg, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PEDIDOS_PRICES": "Reposição:30.5",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Prices) != 1 || cfg.Prices["Reposição"] != 30.5 {
		t.Fatalf("override not applied: %v", cfg.Prices)
	}
}
