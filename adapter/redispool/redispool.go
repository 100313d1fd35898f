// Package redispool lets warmup drive the connection pool of a go-redis client.
package redispool

import (
	"context"
	"errors"
	"strings"

	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	"github.com/redis/go-redis/v9"
)

type Pool struct {
	ctx context.Context
	rdb *redis.Client
}

func New(ctx context.Context, rdb *redis.Client) *Pool {
	return &Pool{ctx: ctx, rdb: rdb}
}

// Open parses a redis:// URL, poolSize overrides the size it carries when positive.
func Open(ctx context.Context, url string, poolSize int) (*Pool, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if poolSize > 0 {
		opt.PoolSize = poolSize
	}
	return New(ctx, redis.NewClient(opt)), nil
}

func (p *Pool) Client() *redis.Client {
	return p.rdb
}

func (p *Pool) Cap() int {
	return p.rdb.Options().PoolSize
}

// Get pins a pool connection and pings over it, which is what makes go-redis dial.
func (p *Pool) Get() (interface{}, error) {
	conn := p.rdb.Conn()
	if err := conn.Ping(p.ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, classify(err)
	}
	return conn, nil
}

func (p *Pool) Put(v interface{}) error {
	conn, ok := v.(*redis.Conn)
	if !ok || conn == nil {
		return errors.New("nil connection err")
	}
	return conn.Close()
}

func (p *Pool) Close() error {
	return p.rdb.Close()
}

func classify(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return errs.NewClosedErr(err.Error())
	}
	if strings.Contains(err.Error(), "pool timeout") {
		return errs.WrapPoolExhaustedErr("no connection available", err)
	}
	return errs.FromAcquire(err)
}
