package serve

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dtnitsch/family-night/internal/common"
	"github.com/dtnitsch/family-night/internal/server"
	"github.com/dtnitsch/family-night/pkg/fetcher"
	"github.com/dtnitsch/family-night/pkg/manifest"
	"github.com/urfave/cli/v2"
)

// DefaultAddr is where the add-on listens unless --addr is given.
const DefaultAddr = "0.0.0.0:3000"

// ServeAction starts the add-on HTTP server and blocks until it fails.
func ServeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	// Fail at startup rather than on the first /manifest.json request.
	if _, err := manifest.Default(); err != nil {
		logger.Error("invalid manifest", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	f := fetcher.NewFetcher(logger)
	srv := server.New(f, server.WithLogger(logger))

	addr := c.String("addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Addon running", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
