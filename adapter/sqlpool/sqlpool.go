// Package sqlpool lets warmup drive a database/sql connection pool.
package sqlpool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	_ "github.com/mattn/go-sqlite3"
)

type Pool struct {
	ctx  context.Context
	db   *sql.DB
	size int
}

// New wraps db and sizes it to size open connections. The idle limit is raised
// to the same value, database/sql would otherwise close all but two of the
// warmed connections when they are put back.
func New(ctx context.Context, db *sql.DB, size int) *Pool {
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	return &Pool{ctx: ctx, db: db, size: size}
}

// Open opens a database with one of the registered drivers (mysql, sqlite3).
// No connection is made until the pool is used.
func Open(ctx context.Context, driver, dsn string, size int) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid pool size %d", size)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return New(ctx, db, size), nil
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

func (p *Pool) Cap() int {
	return p.size
}

// Get checks out a dedicated connection and pings it so the driver has really
// connected.
func (p *Pool) Get() (interface{}, error) {
	conn, err := p.db.Conn(p.ctx)
	if err != nil {
		return nil, errs.FromAcquire(err)
	}
	if err := conn.PingContext(p.ctx); err != nil {
		_ = conn.Close()
		return nil, errs.FromAcquire(err)
	}
	return conn, nil
}

// Put returns the connection to the database/sql idle list.
func (p *Pool) Put(v interface{}) error {
	conn, ok := v.(*sql.Conn)
	if !ok || conn == nil {
		return errors.New("nil connection err")
	}
	return conn.Close()
}

func (p *Pool) Close() error {
	return p.db.Close()
}
