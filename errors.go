package brokerseed

import "errors"

// Exported errors for library consumers.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("brokerseed: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("brokerseed: client is closed")
)
