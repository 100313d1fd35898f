// Package netpool lets warmup drive a fatih/pool pool of raw net.Conn.
package netpool

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/fatih/pool"
	"github.com/jasonkayzk/preconnect/channel_pool/errs"
)

type Pool struct {
	pool     pool.Pool
	capacity int
}

// New wraps p. fatih/pool does not expose its size, so the caller passes the
// maxCap the pool was built with.
func New(p pool.Pool, capacity int) *Pool {
	return &Pool{pool: p, capacity: capacity}
}

// Dial builds a channel pool of TCP connections to addr holding at most
// capacity idle connections. Every dial is bounded by timeout and by ctx.
func Dial(ctx context.Context, addr string, capacity int, timeout time.Duration) (*Pool, error) {
	dialer := &net.Dialer{Timeout: timeout}
	factory := func() (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp", addr)
	}
	p, err := pool.NewChannelPool(0, capacity, factory)
	if err != nil {
		return nil, err
	}
	return New(p, capacity), nil
}

func (p *Pool) Cap() int {
	return p.capacity
}

// Len returns the number of idle connections.
func (p *Pool) Len() int {
	return p.pool.Len()
}

func (p *Pool) Get() (interface{}, error) {
	conn, err := p.pool.Get()
	if err != nil {
		if errors.Is(err, pool.ErrClosed) {
			return nil, errs.NewClosedErr(err.Error())
		}
		return nil, errs.FromAcquire(err)
	}
	return conn, nil
}

// Put closes the wrapper, which hands the connection back to the channel.
func (p *Pool) Put(v interface{}) error {
	conn, ok := v.(net.Conn)
	if !ok || conn == nil {
		return errors.New("nil connection err")
	}
	return conn.Close()
}

func (p *Pool) Close() error {
	p.pool.Close()
	return nil
}
