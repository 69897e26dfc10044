// Package store wraps the connection to the content database.
//
// A Client carries the access level granted by the key it was opened with.
// The anon key allows reads only; writes need the service key, and only the
// admin handlers are ever given a privileged client.  A Client opened without
// a URL or anon key is a placeholder: every call returns ErrUnavailable so the
// site still renders its built-in defaults.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/db"
)

var (
	// ErrUnavailable is returned by a placeholder client.
	ErrUnavailable = errors.New("content store is not configured")
	// ErrReadOnly is returned when a public client is asked to write.
	ErrReadOnly = errors.New("content store client is read-only")
)

// Access is the permission level a client operates with.
type Access int

const (
	AccessPublic Access = iota
	AccessService
)

func (a Access) String() string {
	if a == AccessService {
		return "service"
	}
	return "public"
}

// Client is a request-safe handle to the content database.
type Client struct {
	gdb        *gorm.DB
	access     Access
	privileged bool
}

// Open connects to cfg.URL and migrates the schema. Missing URL or anon key
// yields a placeholder client and no error.
func Open(cfg config.Store, log *zap.SugaredLogger) (*Client, error) {
	if !cfg.Configured() {
		log.Warnw("content store not configured, serving built-in defaults only")
		return Placeholder(), nil
	}

	dsn := strings.TrimSpace(cfg.URL)
	if err := ensureParentDir(dsn); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	privileged := strings.TrimSpace(cfg.ServiceKey) != ""
	if !privileged {
		log.Warnw("no service key configured, admin writes are disabled")
	}
	log.Infow("content store connected", "url", redact(dsn), "service_key", privileged)

	return &Client{gdb: gdb, access: AccessPublic, privileged: privileged}, nil
}

// New wraps an existing connection. It is used by tests and maintenance
// scripts that manage their own *gorm.DB.
func New(gdb *gorm.DB, access Access) *Client {
	return &Client{gdb: gdb, access: access, privileged: access == AccessService}
}

// Placeholder returns a client that fails every call with ErrUnavailable.
func Placeholder() *Client {
	return &Client{}
}

// Ready reports whether the client is backed by a database.
func (c *Client) Ready() bool {
	return c != nil && c.gdb != nil
}

// Access returns the level the client operates with.
func (c *Client) Access() Access {
	if c == nil {
		return AccessPublic
	}
	return c.access
}

// Privileged returns a service-level view of the same connection. Without a
// configured service key the returned client still rejects writes.
func (c *Client) Privileged() *Client {
	if !c.Ready() {
		return c
	}
	if !c.privileged {
		return &Client{gdb: c.gdb, access: AccessPublic}
	}
	return &Client{gdb: c.gdb, access: AccessService, privileged: true}
}

// Read returns a session scoped to ctx for queries.
func (c *Client) Read(ctx context.Context) (*gorm.DB, error) {
	if !c.Ready() {
		return nil, ErrUnavailable
	}
	return c.gdb.WithContext(ctx), nil
}

// Write returns a session scoped to ctx for inserts, updates and deletes.
func (c *Client) Write(ctx context.Context) (*gorm.DB, error) {
	if !c.Ready() {
		return nil, ErrUnavailable
	}
	if c.access != AccessService {
		return nil, ErrReadOnly
	}
	return c.gdb.WithContext(ctx), nil
}

// Ping checks the underlying connection.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Ready() {
		return ErrUnavailable
	}
	sqlDB, err := c.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Ready() {
		return nil
	}
	sqlDB, err := c.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func redact(dsn string) string {
	if i := strings.Index(dsn, "?"); i >= 0 {
		return dsn[:i]
	}
	return dsn
}

// ensureParentDir creates the directory holding a file-backed database.
func ensureParentDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
