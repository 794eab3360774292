// Package httpserver runs the API handler with server timeouts taken from
// HTTP_* environment variables and a graceful shutdown bound to the run
// context.
//
//	srv := httpserver.New(cfg, router, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return srv.Run(ctx)
//
// HealthHandler reports the state of the storage backends the process was
// started with.
package httpserver
