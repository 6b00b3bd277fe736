// Command sendfile uploads files as multipart/form-data, streaming them from
// disk. Each file becomes a text part named "filename" holding its path and a
// file part holding its content. Run it against echoserver to see the body.
//
//	sendfile -url http://127.0.0.1:9001 go.mod main.go
//
// Client settings come from UPLOAD_TIMEOUT, UPLOAD_USER_AGENT and the
// FORMDATA_* variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/formdata/pkg/config"
	"github.com/dmitrymomot/formdata/pkg/formdata"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
	"github.com/dmitrymomot/formdata/pkg/upload"
)

func main() {
	var (
		url   = flag.String("url", "http://127.0.0.1:9001", "upload endpoint")
		field = flag.String("field", "input", "form field name for file content")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config.MustLoadEnv()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(append(logger.FromConfig(logCfg),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)...)

	var formCfg formdata.Config
	config.MustLoad(&formCfg)
	var clientCfg upload.Config
	config.MustLoad(&clientCfg, config.WithPrefix(upload.EnvPrefix))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = requestid.WithContext(ctx, requestid.New())

	form := formdata.New(formdata.WithConfig(formCfg), formdata.WithLogger(log))
	for _, path := range flag.Args() {
		form.AddText("filename", path)
		if err := form.AddFile(*field, path); err != nil {
			log.ErrorContext(ctx, "cannot add file", logger.Filename(path), logger.Error(err))
			os.Exit(1)
		}
	}

	log.InfoContext(ctx, "uploading",
		logger.URL(*url),
		slog.Int("parts", form.Len()),
		logger.Bytes(form.ContentLength()),
	)

	client := upload.NewFromConfig(clientCfg, upload.WithLogger(log))
	if err := client.Send(ctx, *url, form); err != nil {
		log.ErrorContext(ctx, "upload failed", logger.Error(err))
		os.Exit(1)
	}
}
