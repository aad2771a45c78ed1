package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"path/filepath"

	"github.com/fwojciec/sentiview"
	"github.com/fwojciec/sentiview/config"
	"github.com/fwojciec/sentiview/demo"
	"github.com/fwojciec/sentiview/fs"
	sentihttp "github.com/fwojciec/sentiview/http"
	"github.com/fwojciec/sentiview/jsonl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cli holds state shared by all commands. It is filled in by the root
// command's PersistentPreRunE.
type cli struct {
	stdin  io.Reader
	stdout io.Writer

	configDir string
	baseURL   string
	demo      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "sentiview",
		Short:         "Sentiment analysis client",
		Long:          "Submits texts or tabular files to a sentiment analysis service and shows the predictions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", "", "directory containing sentiview.yaml")
	flags.StringVar(&c.baseURL, "base-url", "", "sentiment service base URL (overrides config)")
	flags.BoolVar(&c.demo, "demo", false, "run against an in-process demo service")

	root.AddCommand(
		c.analyzeCmd(),
		c.healthCmd(),
		c.serveDemoCmd(),
		c.historyCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	var dirs []string
	if c.configDir != "" {
		dirs = append(dirs, c.configDir)
	}
	cfg, err := config.Load(dirs...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.baseURL != "" {
		cfg.API.BaseURL = c.baseURL
	}
	// The full-screen UI owns the terminal, so logs go to a file.
	if cmd == cmd.Root() && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(fs.DefaultStateDir(), "sentiview.log")
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// backend returns the analyzer commands submit to. With --demo it first
// starts a demo service on a loopback port; stop shuts that service down.
func (c *cli) backend(ctx context.Context) (*sentihttp.Client, sentiview.Analyzer, func() error, error) {
	baseURL := c.cfg.API.BaseURL
	stop := func() error { return nil }

	if c.demo {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, nil, nil, fmt.Errorf("start demo service: %w", err)
		}
		ctx, cancel := context.WithCancel(ctx)
		g, gctx := errgroup.WithContext(ctx)
		srv := c.demoServer()
		g.Go(func() error {
			return srv.Serve(gctx, ln)
		})
		baseURL = "http://" + ln.Addr().String()
		stop = func() error {
			cancel()
			return g.Wait()
		}
		c.logger.Info("using demo service", zap.String("base_url", baseURL))
	}

	client := sentihttp.NewClient(baseURL,
		sentihttp.WithTimeout(c.cfg.API.Timeout()),
		sentihttp.WithLogger(c.logger.Named("http")),
	)

	var analyzer sentiview.Analyzer = client
	if c.cfg.Cache.Enabled {
		dir := c.cfg.Cache.Dir
		if dir == "" {
			dir = fs.DefaultCacheDir()
		}
		// The demo listens on a fresh port each run.
		scope := baseURL
		if c.demo {
			scope = "demo"
		}
		analyzer = fs.NewAnalyzer(client, dir, scope, c.logger.Named("cache"))
	}
	return client, analyzer, stop, nil
}

func (c *cli) demoServer() *demo.Server {
	return demo.NewServer(
		demo.WithLogger(c.logger.Named("demo")),
		demo.WithMaxUploadBytes(c.cfg.Upload.MaxBytes),
		demo.WithAllowedOrigins(c.cfg.Demo.AllowedOrigins),
	)
}

func (c *cli) historyPath() string {
	if c.cfg.History.File != "" {
		return c.cfg.History.File
	}
	return filepath.Join(fs.DefaultStateDir(), "history.jsonl")
}

func (c *cli) app(analyzer sentiview.Analyzer) *App {
	return &App{
		Analyzer:    analyzer,
		Loader:      fs.NewLoader(c.cfg.Upload.MaxBytes),
		Saver:       jsonl.NewSaver(),
		Runs:        jsonl.NewLoader(),
		Stdin:       c.stdin,
		Stdout:      c.stdout,
		Scheme:      c.cfg.LabelScheme(),
		Render:      c.cfg.RenderOptions(),
		HistoryPath: c.historyPath(),
		Logger:      c.logger,
	}
}
