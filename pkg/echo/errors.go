package echo

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("echo: failed to start server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("echo: failed to shut down server gracefully")
	// ErrAlreadyRunning is returned by Run on a server that is already serving.
	ErrAlreadyRunning = errors.New("echo: server already running")
)
