package probe

import "errors"

// Failure classes. Mid-run they are all recovered the same way (invalidate
// the connection, try again next tick); the class only shows up in logs.
var (
	// ErrConnect marks a failure to establish the store connection.
	ErrConnect = errors.New("connect failed")
	// ErrBootstrap marks a failure of the target-table DDL.
	ErrBootstrap = errors.New("bootstrap failed")
	// ErrAttempt marks a failure of the probed write itself.
	ErrAttempt = errors.New("attempt failed")
)
