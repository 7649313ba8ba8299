// vaultfolders discovers the folder hierarchy of a remote Obsidian vault
// through the Local REST API and prints or exports it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/riteshshukladev/obsidian-clipper-repo/internal/config"
	"github.com/riteshshukladev/obsidian-clipper-repo/internal/logging"
	"github.com/riteshshukladev/obsidian-clipper-repo/internal/metrics"
	"github.com/riteshshukladev/obsidian-clipper-repo/pkg/crawl"
	"github.com/riteshshukladev/obsidian-clipper-repo/pkg/obsidian"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "vaultfolders",
		Usage: "discover the folder hierarchy of a remote Obsidian vault",
		Description: `
Environment variables:
	OBSIDIAN_ENABLED       (default: false)
	OBSIDIAN_API_KEY       (required for any discovery)
	OBSIDIAN_HOST          (default: 127.0.0.1; may carry http:// or https://)
	OBSIDIAN_PORT          (default: 27124)
	OBSIDIAN_INSECURE_TLS  (default: false)
	HTTP_TIMEOUT           (default: 30s)
	LOG_LEVEL              (default: info)
	LOG_FORMAT             (default: console)
	METRICS_ADDR           (watch mode only; empty disables metrics)
`,
		Commands: []*cli.Command{
			foldersCommand(),
			watchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*config.Config, *obsidian.Client, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	client := obsidian.New(obsidian.Config{
		BaseURL:     cfg.BaseURL(),
		APIKey:      cfg.APIKey,
		Timeout:     cfg.HTTPTimeout,
		InsecureTLS: cfg.InsecureTLS,
	})
	return cfg, client, nil
}

func foldersCommand() *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "run one discovery and print the folder list",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print folders as a JSON array"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, client, err := setup(ctx)
			if err != nil {
				return err
			}
			defer logging.Sync()

			folders, err := crawl.Discover(ctx, crawl.Options{
				Enabled: cfg.Enabled,
				APIKey:  cfg.APIKey,
			}, client)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(folders)
			}
			for _, f := range folders {
				fmt.Println(f.Path)
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "re-run discovery on an interval and serve Prometheus metrics",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "interval", Value: 5 * time.Minute, Usage: "time between discovery sweeps"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, client, err := setup(ctx)
			if err != nil {
				return err
			}
			defer logging.Sync()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
				go func() {
					logging.L().Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logging.L().Error("metrics server failed", zap.Error(err))
					}
				}()
				defer srv.Close()
			}

			opts := crawl.Options{Enabled: cfg.Enabled, APIKey: cfg.APIKey}
			interval := cmd.Duration("interval")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			last := -1
			for {
				folders, err := crawl.Discover(ctx, opts, client)
				if err != nil {
					logging.L().Error("discovery sweep failed", zap.Error(err))
				} else {
					if last >= 0 && len(folders) != last {
						logging.L().Info("folder count changed",
							zap.Int("previous", last), zap.Int("current", len(folders)))
					}
					last = len(folders)
				}

				select {
				case <-ctx.Done():
					logging.L().Info("shutting down")
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}
