package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the sentiment service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			client, _, stop, err := c.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, stop())
			}()

			resp, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}
			fmt.Fprintf(c.stdout, "%s: %s\n", resp.Status, resp.Message)
			return nil
		},
	}
}
