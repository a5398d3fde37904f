package main

import (
	"os/signal"
	"syscall"

	"github.com/siherrmann/speechgraph"
	"github.com/siherrmann/speechgraph/helper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP",
		Long:  "Accepts transcript segments on /api/v1/segments and serves the graph for visualization.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}

			g, err := speechgraph.NewSpeechGraph(config)
			if err != nil {
				return helper.NewError("create speechgraph", err)
			}

			srv, err := g.NewServer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().String("listen", "", "listen address, e.g. 127.0.0.1:8088")
	cmd.Flags().StringSlice("cors-origin", nil, "allowed CORS origins")

	return cmd
}
