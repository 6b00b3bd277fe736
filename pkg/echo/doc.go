// Package echo is a debug server for inspecting multipart uploads.
//
// NewHandler serves three routes. Any request outside the fixed routes has its
// raw body copied to a writer (typically stdout) and echoed back, which shows
// exactly what an encoder put on the wire. POST /parts parses the body as
// multipart/form-data and answers with a JSON summary of the received parts.
// GET /healthz is a liveness probe.
//
// Server wraps net/http with graceful shutdown:
//
//	srv := echo.New(echo.WithAddr("127.0.0.1:9001"), echo.WithLogger(log))
//	if err := srv.Run(ctx, echo.NewHandler(os.Stdout, log)); err != nil {
//		return err
//	}
//
// Run returns when ctx is done or on SIGINT/SIGTERM. Start failures wrap
// ErrStart, shutdown failures wrap ErrShutdown.
package echo
