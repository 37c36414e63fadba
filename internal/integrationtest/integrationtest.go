// Package integrationtest provides helpers to run the whole application in tests.
package integrationtest

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/cmd/httpserver"
	"github.com/chris7683/CAEAPP/db/migration"
	"github.com/chris7683/CAEAPP/internal/memstore"
	"github.com/chris7683/CAEAPP/pkg/configpkg"
	"github.com/chris7683/CAEAPP/pkg/dbpkg"
	"github.com/chris7683/CAEAPP/pkg/randompkg"
	"github.com/chris7683/CAEAPP/pkg/tokenpkg"
)

// Env is a running application with direct access to its store.
type Env struct {
	Server *httpserver.Server
	Store  *memstore.Store
	Redis  *miniredis.Miniredis
}

// TestConfig returns configuration suitable for in-process tests.
func TestConfig() configpkg.Config {
	return configpkg.Config{
		DBDriver:            configpkg.DriverMemory,
		TokenSymmetricKey:   randompkg.String(32),
		TokenType:           tokenpkg.TypePaseto,
		AccessTokenDuration: time.Minute,
		IdempotencyTTL:      time.Hour,
		TransferMaxRetries:  3,
		Environment:         "test",
	}
}

// SetupServer returns a server running on a fresh in-memory store and redis.
//
// opts are applied after the redis option.
func SetupServer(t *testing.T, opts ...httpserver.Option) Env {
	t.Helper()

	store := memstore.New()
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	server, err := httpserver.New(
		httpserver.MemoryStorage(store),
		zerolog.Nop(),
		TestConfig(),
		append([]httpserver.Option{httpserver.WithRedis(rdb)}, opts...)...,
	)
	if err != nil {
		t.Fatalf(`httpserver.New returned error: %v`, err)
	}

	return Env{Server: server, Store: store, Redis: mr}
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE TABLE entries, transfers, accounts RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB connects to the configured postgres database, migrates it and cleans it up afterwards.
//
// The test is skipped when the configuration points to the in-memory store.
func SetupDB(t *testing.T, configPath string) *sql.DB {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", configPath, err)
	}

	if config.DBDriver == configpkg.DriverMemory || config.DBSource == "" {
		t.Skip("postgres is not configured")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, migration.FS, migration.Dir); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}
