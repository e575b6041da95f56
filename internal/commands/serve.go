package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string
	var logFormat string
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the entry application to the browser shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.applyEnv(); err != nil {
				return err
			}
			if addr != "" {
				p.Config.Server.Addr = addr
			}

			logger, err := newLogger(cmd, logFormat, debug)
			if err != nil {
				return err
			}
			if !debug {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(server.Options{
				Config:  p.Config,
				Catalog: p.Catalog,
				Logger:  logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, p.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging and gin debug mode")

	return cmd
}

func newLogger(cmd *cobra.Command, format string, debug bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
}
