package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/db"
)

func TestOpenWithoutCredentialsReturnsPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Store
	}{
		{name: "empty", cfg: config.Store{}},
		{name: "missing key", cfg: config.Store{URL: "file::memory:"}},
		{name: "missing url", cfg: config.Store{AnonKey: "anon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := Open(tt.cfg, zap.NewNop().Sugar())
			if err != nil {
				t.Fatalf("Open returned error: %v", err)
			}
			if client.Ready() {
				t.Fatal("expected placeholder client")
			}
			if _, err := client.Read(context.Background()); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable from Read, got %v", err)
			}
			if _, err := client.Privileged().Write(context.Background()); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable from Write, got %v", err)
			}
			if err := client.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable from Ping, got %v", err)
			}
		})
	}
}

func openTestClient(t *testing.T, serviceKey string) *Client {
	t.Helper()

	cfg := config.Store{
		URL:        fmt.Sprintf("file:store-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		AnonKey:    "anon-key",
		ServiceKey: serviceKey,
	}
	client, err := Open(cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestOpenMigratesSchema(t *testing.T) {
	client := openTestClient(t, "")

	gdb, err := client.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	for _, model := range db.Models() {
		if !gdb.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestPublicClientRejectsWrites(t *testing.T) {
	client := openTestClient(t, "service-key")

	if client.Access() != AccessPublic {
		t.Fatalf("expected public access, got %s", client.Access())
	}
	if _, err := client.Write(context.Background()); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}

	privileged := client.Privileged()
	if privileged.Access() != AccessService {
		t.Fatalf("expected service access, got %s", privileged.Access())
	}
	gdb, err := privileged.Write(context.Background())
	if err != nil {
		t.Fatalf("privileged Write returned error: %v", err)
	}
	if err := gdb.Create(&db.Category{Name: "News", Slug: "news"}).Error; err != nil {
		t.Fatalf("failed to insert through privileged client: %v", err)
	}
}

func TestPrivilegedWithoutServiceKeyStaysReadOnly(t *testing.T) {
	client := openTestClient(t, "")

	if _, err := client.Privileged().Write(context.Background()); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestEnsureParentDirCreatesDirectory(t *testing.T) {
	root := t.TempDir()
	dsn := "file:" + filepath.Join(root, "nested", "site.db") + "?_busy_timeout=5000"

	if err := ensureParentDir(dsn); err != nil {
		t.Fatalf("ensureParentDir returned error: %v", err)
	}
	if err := ensureParentDir("file::memory:?cache=shared"); err != nil {
		t.Fatalf("memory dsn should be ignored, got %v", err)
	}
}
