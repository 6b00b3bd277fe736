// Command echoserver prints every request body it receives to stdout and
// echoes it back. POST /parts answers with a JSON summary of a multipart body.
//
// Settings come from the environment (or a .env file): ECHO_ADDR,
// ECHO_READ_TIMEOUT, LOG_LEVEL, LOG_FORMAT and friends.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/formdata/pkg/config"
	"github.com/dmitrymomot/formdata/pkg/echo"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
)

func main() {
	config.MustLoadEnv()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(append(logger.FromConfig(logCfg),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)...)
	logger.SetAsDefault(log)

	var cfg echo.Config
	config.MustLoad(&cfg)

	srv := echo.NewFromConfig(cfg, echo.WithLogger(log))
	if err := srv.Run(context.Background(), echo.NewHandler(os.Stdout, log)); err != nil {
		log.Error("echo server failed", logger.Error(err))
		os.Exit(1)
	}
}
