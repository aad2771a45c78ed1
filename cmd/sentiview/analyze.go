package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func (c *cli) analyzeCmd() *cobra.Command {
	var in AnalyzeInput

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze texts or a CSV/Excel file without the UI",
		Long: "Analyzes each argument as one text, or each non-blank stdin line when no " +
			"arguments are given. With --file the named column of a CSV or Excel file is analyzed instead.",
		Example: `  sentiview analyze "I love it" "Not great"
  cat reviews.txt | sentiview analyze --format jsonl
  sentiview analyze --file reviews.csv --column Review --save`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if in.FilePath != "" && len(args) > 0 {
				return errors.New("texts and --file are mutually exclusive")
			}
			in.Texts = args

			_, analyzer, stop, err := c.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, stop())
			}()

			return c.app(analyzer).Analyze(cmd.Context(), in)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&in.FilePath, "file", "f", "", "CSV or Excel file to analyze")
	flags.StringVarP(&in.Column, "column", "c", "", "name of the text column in --file")
	flags.StringVar(&in.Format, "format", FormatText, "output format: text or jsonl")
	flags.BoolVar(&in.Save, "save", false, "append the run to the history file")
	return cmd
}
