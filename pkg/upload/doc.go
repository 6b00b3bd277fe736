// Package upload sends multipart forms built with package formdata to HTTP
// endpoints.
//
// Bodies are streamed straight from the form's encoder, so files of any size
// are uploaded without being loaded into memory. The flip side is that a body
// can be read only once: the client never retries.
//
// # Usage
//
//	client := upload.New(upload.WithTimeout(time.Minute))
//
//	form := formdata.New()
//	form.AddText("title", "Quarterly report")
//	if err := form.AddFile("document", "report.pdf"); err != nil {
//		return err
//	}
//	if err := client.Send(ctx, "https://example.com/upload", form); err != nil {
//		var serr *upload.StatusError
//		if errors.As(err, &serr) {
//			log.Printf("rejected with %d: %s", serr.StatusCode, serr.Body)
//		}
//		return err
//	}
//
// Use Do for methods other than POST or to inspect the response yourself.
// SendAll uploads many independent forms with bounded concurrency and returns
// one error per job.
//
// # Configuration
//
// Config is loaded with package config using the "UPLOAD_" prefix:
//
//	var cfg upload.Config
//	if err := config.Load(&cfg, config.WithPrefix(upload.EnvPrefix)); err != nil {
//		return err
//	}
//	client := upload.NewFromConfig(cfg, upload.WithLogger(log))
//
// # Errors
//
// Input problems are reported with ErrNilForm, ErrInvalidURL and
// ErrInvalidRequest. Transport failures wrap ErrRequestFailed or ErrTimeout
// together with the cause. Non-2xx responses from Send are *StatusError
// values matching ErrUnexpectedStatus.
package upload
