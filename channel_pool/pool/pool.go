package pool

// The pool interface
type Pool interface {
	// Get returns a connection from the pool, dialing a new one through the
	// factory when no idle connection is left and MaxCap allows it.
	Get() (interface{}, error)

	// Put puts the connection into the pool instead of closing it.
	Put(interface{}) error

	// CloseConn directly close the connection
	CloseConn(interface{}) error

	// ShutDown closes the pool and all its connections.
	// After ShutDown() the pool is no longer usable.
	ShutDown() error

	// Len returns the current number of idle connections of the pool.
	Len() int

	// Cap returns the max number of connections the pool may hold open.
	Cap() int

	// OpenConns returns the number of live connections, idle and in use.
	OpenConns() int
}
