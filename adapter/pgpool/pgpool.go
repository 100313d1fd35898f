// Package pgpool lets warmup drive a pgx PostgreSQL pool.
package pgpool

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jasonkayzk/preconnect/channel_pool/errs"
)

type Pool struct {
	ctx  context.Context
	pool *pgxpool.Pool
}

func New(ctx context.Context, pool *pgxpool.Pool) *Pool {
	return &Pool{ctx: ctx, pool: pool}
}

// Open builds a pool capped at maxConns. pgxpool connects lazily, so this does
// not touch the server.
func Open(ctx context.Context, url string, maxConns int32) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return New(ctx, pool), nil
}

func (p *Pool) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *Pool) Cap() int {
	return int(p.pool.Config().MaxConns)
}

func (p *Pool) Get() (interface{}, error) {
	conn, err := p.pool.Acquire(p.ctx)
	if err != nil {
		return nil, errs.FromAcquire(err)
	}
	return conn, nil
}

func (p *Pool) Put(v interface{}) error {
	conn, ok := v.(*pgxpool.Conn)
	if !ok || conn == nil {
		return errors.New("nil connection err")
	}
	conn.Release()
	return nil
}

func (p *Pool) Close() error {
	p.pool.Close()
	return nil
}
