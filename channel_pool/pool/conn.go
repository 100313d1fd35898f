package pool

import (
	"time"
)

// idleConn is an idle connection parked in the pool with the time it was put back
type idleConn struct {
	conn interface{}
	t    time.Time
}

func newIdleConn(conn interface{}) *idleConn {
	return &idleConn{conn: conn, t: time.Now()}
}

func (c *idleConn) expired(timeout time.Duration) bool {
	return timeout > 0 && c.t.Add(timeout).Before(time.Now())
}
