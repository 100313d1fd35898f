package pool

import (
	"errors"
	"sync"
	"time"

	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	log "github.com/sirupsen/logrus"
)

// Configs for pool
type Options struct {
	// The number of the connections when initiate the pool
	InitialCap int

	// Max connection number in the pool
	MaxCap int

	// Max idle number in the pool
	MaxIdle int

	// The method the build the connection
	Factory func() (interface{}, error)

	// The method to close the connection
	Close func(interface{}) error

	// Check connection health
	Ping func(interface{}) error

	// Max life time for idle connection
	IdleTimeout time.Duration

	// Max time to get a connection from pool
	// Else this will return a errs.WaitConnectionTimeoutErr
	WaitTimeout time.Duration
}

// the pool
type channelPool struct {
	mu           sync.Mutex
	conns        chan *idleConn
	factory      func() (interface{}, error)
	close        func(interface{}) error
	ping         func(interface{}) error
	idleTimeout  time.Duration
	waitTimeOut  time.Duration
	maxActive    int
	openingConns int
	connReqs     []chan *idleConn
	closed       bool
}

// Build pool
func NewChannelPool(options *Options) (Pool, error) {
	if !(options.InitialCap <= options.MaxIdle && options.MaxCap >= options.MaxIdle && options.InitialCap >= 0) {
		return nil, errors.New("invalid capacity settings")
	}
	if options.Factory == nil {
		return nil, errors.New("invalid factory func settings")
	}
	if options.Close == nil {
		return nil, errors.New("invalid close func settings")
	}
	if options.WaitTimeout <= 0 {
		options.WaitTimeout = time.Second * 3
	}

	cp := &channelPool{
		conns:       make(chan *idleConn, options.MaxIdle),
		factory:     options.Factory,
		close:       options.Close,
		ping:        options.Ping,
		idleTimeout: options.IdleTimeout,
		waitTimeOut: options.WaitTimeout,
		maxActive:   options.MaxCap,
	}

	for i := 0; i < options.InitialCap; i++ {
		conn, err := cp.factory()
		if err != nil {
			if err := cp.ShutDown(); err != nil {
				return nil, err
			}
			return nil, errs.NewConnectionErr("fill pool err", err)
		}
		cp.openingConns++
		cp.conns <- newIdleConn(conn)
	}

	return cp, nil
}

func (c *channelPool) Get() (interface{}, error) {
	conns := c.getConns()
	if conns == nil {
		return nil, errs.NewDefaultClosedErr()
	}

	for {
		select {
		case wrapConn := <-conns:
			if wrapConn == nil {
				return nil, errs.NewDefaultClosedErr()
			}
			if wrapConn.expired(c.idleTimeout) {
				_ = c.CloseConn(wrapConn.conn)
				continue
			}
			// no ping method, pass
			if c.ping != nil {
				if err := c.Ping(wrapConn.conn); err != nil {
					_ = c.CloseConn(wrapConn.conn)
					continue
				}
			}
			return wrapConn.conn, nil
		default:
			c.mu.Lock()
			log.Debugf("openConn %v %v", c.openingConns, c.maxActive)
			if c.openingConns >= c.maxActive {
				req := make(chan *idleConn, 1)
				c.connReqs = append(c.connReqs, req)
				c.mu.Unlock()

				select {
				case ret, ok := <-req:
					if !ok {
						return nil, errs.NewMaxActiveConnectionErr("max active connection limit")
					}
					if ret.expired(c.idleTimeout) {
						_ = c.CloseConn(ret.conn)
						continue
					}
					return ret.conn, nil
				case <-time.After(c.waitTimeOut):
					c.dropReq(req)
					return nil, errs.NewWaitConnectionTimeoutErr("get active connection timeout")
				}
			}
			if c.factory == nil {
				c.mu.Unlock()
				return nil, errs.NewDefaultClosedErr()
			}

			conn, err := c.factory()
			if err != nil {
				c.mu.Unlock()
				return nil, errs.NewConnectionErr("open connection err", err)
			}
			c.openingConns++
			c.mu.Unlock()
			return conn, nil
		}
	}
}

// dropReq forgets a waiter that gave up; a connection handed to it in the
// meantime goes back to the pool.
func (c *channelPool) dropReq(req chan *idleConn) {
	c.mu.Lock()
	for i, r := range c.connReqs {
		if r == req {
			c.connReqs = append(c.connReqs[:i], c.connReqs[i+1:]...)
			c.mu.Unlock()
			return
		}
	}
	c.mu.Unlock()

	select {
	case ret := <-req:
		_ = c.Put(ret.conn)
	default:
	}
}

func (c *channelPool) Put(conn interface{}) error {
	if conn == nil {
		return errors.New("nil connection err")
	}

	c.mu.Lock()

	if c.conns == nil {
		c.mu.Unlock()
		return c.CloseConn(conn)
	}

	if l := len(c.connReqs); l > 0 {
		req := c.connReqs[0]
		copy(c.connReqs, c.connReqs[1:])
		c.connReqs = c.connReqs[:l-1]
		req <- newIdleConn(conn)
		c.mu.Unlock()
		return nil
	}

	select {
	case c.conns <- newIdleConn(conn):
		c.mu.Unlock()
		return nil
	default:
		c.mu.Unlock()
		// pool is full, close conn directly
		return c.CloseConn(conn)
	}
}

func (c *channelPool) CloseConn(conn interface{}) error {
	if conn == nil {
		return errors.New("nil connection err")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// after ShutDown the count is already zero, the conn still gets closed
	if !c.closed {
		c.openingConns--
	}
	return c.close(conn)
}

// Ping check connection health
func (c *channelPool) Ping(conn interface{}) error {
	if conn == nil {
		return errors.New("nil connection err")
	}
	return c.ping(conn)
}

func (c *channelPool) ShutDown() error {
	c.mu.Lock()
	conns := c.conns
	c.conns = nil
	c.factory = nil
	c.ping = nil
	c.closed = true
	closeFun := c.close
	for _, req := range c.connReqs {
		close(req)
	}
	c.connReqs = nil
	c.openingConns = 0
	c.mu.Unlock()

	if conns == nil {
		return nil
	}

	close(conns)
	var firstErr error
	for wrapConn := range conns {
		if err := closeFun(wrapConn.conn); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (c *channelPool) Len() int {
	return len(c.getConns())
}

func (c *channelPool) Cap() int {
	return c.maxActive
}

func (c *channelPool) OpenConns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openingConns
}

func (c *channelPool) getConns() chan *idleConn {
	c.mu.Lock()
	conns := c.conns
	c.mu.Unlock()
	return conns
}
