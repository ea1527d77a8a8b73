// Package sqldb is the relational persistence gateway. Every repository call
// acquires its own connection from the pool and returns it before the call
// ends, so no connection or transaction state outlives a single operation.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultTimeout = 10 * time.Second
)

// Config captures the settings required to open the relational store.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Timeout      time.Duration
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Gateway owns the connection pool and hands out scoped connections.
type Gateway struct {
	db     *sql.DB
	driver string
	log    zerolog.Logger
}

// Connect opens the pool for cfg.Driver and verifies it with a ping. A
// default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*Gateway, error) {
	dsn, err := driverDSN(cfg.Driver, cfg.DSN, false)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	switch {
	case cfg.Driver == DriverSQLite:
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}

	return &Gateway{db: db, driver: cfg.Driver, log: log}, nil
}

// Ping reports whether the store is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// Driver returns the configured driver name.
func (g *Gateway) Driver() string {
	return g.driver
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// conn runs fn on a dedicated connection that is released when fn returns.
func (g *Gateway) conn(ctx context.Context, fn func(q querier) error) error {
	c, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer c.Close()

	return fn(c)
}

// tx runs fn inside a transaction on a dedicated connection. Any error from fn
// rolls the transaction back; otherwise it is committed.
func (g *Gateway) tx(ctx context.Context, fn func(q querier) error) error {
	c, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer c.Close()

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			g.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// driverDSN adds the options the repositories rely on: UTC time values and,
// for MySQL, matched-row counts so an unchanged UPDATE still reports a hit.
func driverDSN(driver, dsn string, multiStatements bool) (string, error) {
	switch driver {
	case DriverMySQL:
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.ClientFoundRows = true
		mc.MultiStatements = multiStatements
		return mc.FormatDSN(), nil
	case DriverSQLite:
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "_time_format=sqlite&_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}
