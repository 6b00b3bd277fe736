// Package requestid correlates an upload with the requests it causes.
//
// A client stores an ID in the context with WithContext; the upload client
// forwards it as the X-Request-ID header via Propagate. On the receiving side
// Middleware picks the header up (or generates a new ID), puts it in the
// request context and echoes it back. LoggerExtractor plugs the ID into
// structured logs:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
//	ctx := requestid.WithContext(context.Background(), requestid.New())
//	err := client.Send(ctx, url, form) // carries X-Request-ID
package requestid
