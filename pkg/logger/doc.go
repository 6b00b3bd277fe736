// Package logger provides a small factory around log/slog with functional
// options, context attribute injection and attribute helpers for the
// multipart encoding domain.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "uploader"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.InfoContext(ctx, "upload finished",
//	    logger.Field("avatar"),
//	    logger.Bytes(n),
//	)
//
// Settings can also come from the environment through Config and FromConfig:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(logger.FromConfig(cfg)...)
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil, so calls like
//
//	log.Info("operation finished", logger.Error(err))
//
// need no additional nil check.
//
// Noop returns a logger that discards everything; packages in this module use
// it as their default.
package logger
