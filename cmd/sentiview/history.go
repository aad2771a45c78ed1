package main

import "github.com/spf13/cobra"

func (c *cli) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [file]",
		Short: "Show saved analysis runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := c.historyPath()
			if len(args) == 1 {
				path = args[0]
			}
			return c.app(nil).History(path)
		},
	}
}
