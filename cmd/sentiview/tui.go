package main

import (
	"context"
	"errors"

	"github.com/fwojciec/sentiview"
	"github.com/fwojciec/sentiview/bubbletea"
	"github.com/fwojciec/sentiview/clipboard"
	"github.com/fwojciec/sentiview/fs"
	"github.com/fwojciec/sentiview/jsonl"
	"github.com/fwojciec/sentiview/lipgloss"
	"go.uber.org/zap"
)

func (c *cli) runTUI(ctx context.Context) (err error) {
	_, analyzer, stop, err := c.backend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	orch := sentiview.NewOrchestrator(analyzer,
		sentiview.WithLabelScheme(c.cfg.LabelScheme()),
		sentiview.WithRenderOptions(c.cfg.RenderOptions()),
		sentiview.WithLogger(c.logger.Named("orchestrator")),
	)

	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(lipgloss.DefaultTheme()),
		bubbletea.WithBlobLoader(fs.NewLoader(c.cfg.Upload.MaxBytes)),
		bubbletea.WithRunSaver(jsonl.NewSaver(), c.historyPath()),
		bubbletea.WithLogger(c.logger.Named("tui")),
	}
	if clip := clipboard.NewSystem(); clip.Available() {
		opts = append(opts, bubbletea.WithClipboard(clip))
	} else {
		c.logger.Info("clipboard unavailable")
	}

	c.logger.Info("starting ui", zap.String("base_url", c.cfg.API.BaseURL), zap.Bool("demo", c.demo))
	return bubbletea.NewViewer(opts...).Run(ctx, orch)
}
