package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pedidos-backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:   "0",
		Env:    "test",
		Prices: map[string]float64{"Reposição": 25},
		Database: config.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "pedidos.db"),
			RecentWindow: 60 * 24 * time.Hour,
		},
		Session: config.SessionConfig{
			Secret:   "main-test-secret",
			Lifetime: 2 * time.Hour,
			Name:     "pedidos_session",
		},
		Seed: config.SeedConfig{
			AdminName:     "adm",
			AdminPassword: "admin123",
			UserName:      "Teste",
			UserPassword:  "Teste",
		},
	}
}

func TestNewServer_SeedsUsersAndServes(t *testing.T) {
	e, closeDB, err := newServer(context.Background(), testConfig(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	defer closeDB()

	srv := httptest.NewServer(e)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err = client.PostForm(srv.URL+"/login", url.Values{"usuario": {"adm"}, "senha": {"admin123"}})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("seeded admin login: %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestNewServer_BadDatabasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Path = t.TempDir() // a directory, not a file

	if _, _, err := newServer(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected an error for a directory as database path")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatalf("run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = "not-a-port"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected a listen error")
	}
}
