package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) serveDemoCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-demo",
		Short: "Run the lexicon-based demo sentiment service",
		Long: "Serves the prediction API with a word-list scorer so the client " +
			"can be tried without a model deployment.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.Demo.Addr
			}
			c.logger.Info("starting demo service", zap.String("addr", addr))
			return c.demoServer().ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
