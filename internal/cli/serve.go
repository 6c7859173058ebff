package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the solver over HTTP:

  GET  /healthz            liveness and build info
  POST /v1/solve           solve the grid in the request body
  GET  /v1/history         list recorded solves
  GET  /v1/history/{id}    show one recorded solve

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config().Server
			if addr == "" {
				addr = cfg.Addr
			}

			runner, err := c.newRunner(ctx, noCache, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Options{
				MaxBodyBytes: cfg.MaxBodyBytes,
				ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
				WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
			})
			printInfo(cmd.ErrOrStderr(), "Listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
