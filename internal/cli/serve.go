package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/server"
)

// serveCommand creates the serve command for the HTTP frame server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		f    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered frames over HTTP",
		Long: `Serve layout passes of a catalog over HTTP.

  GET /healthz
  GET /v1/catalog
  GET /v1/frame.svg?index=2
  GET /v1/frame.png?offset=315&snap=true
  GET /v1/frame.json?offset=120

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newSession(ctx, cmd, f)
			if err != nil {
				return err
			}
			defer s.Close()

			if !cmd.Flags().Changed("addr") && s.cfg.Server.Addr != "" {
				addr = s.cfg.Server.Addr
			}

			srv, err := server.New(server.Options{
				Runner:     s.runner,
				Catalog:    s.catalog,
				Config:     s.cfg.Carousel,
				Defaults:   s.opts,
				Provider:   s.opts.Provider,
				Logger:     c.Logger,
				CatalogDir: s.cfg.Server.CatalogDir,
			})
			if err != nil {
				return err
			}

			printInfo("Listening on %s", addr)
			printNextStep("Try", "curl http://localhost"+portOf(addr)+"/v1/frame.svg?index=0")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ""
}
