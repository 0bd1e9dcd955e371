// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/hungarian"
	"github.com/katalvlaran/dynhung/internal/config"
	"github.com/katalvlaran/dynhung/internal/httpapi"
	"github.com/katalvlaran/dynhung/internal/logger"
	"github.com/katalvlaran/dynhung/internal/metrics"
	"github.com/katalvlaran/dynhung/internal/session"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solver sessions over HTTP",
		Long: `Run the HTTP service. Settings come from defaults, the --config file,
DYNHUNG_* environment variables and flags, in increasing precedence.`,
		Example: `  dynhung serve --port 8080
  DYNHUNG_MAX_N=1024 dynhung serve --config dynhung.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			registry := session.NewRegistry(log, metrics.NewPrometheus(reg, ""), cfg.MaxN,
				hungarian.WithEpsilon(cfg.Epsilon),
				hungarian.WithLogger(log.Named("solver")),
			)
			handler := httpapi.NewHandler(cfg, httpapi.Deps{
				Registry: registry,
				Log:      log.Named("http"),
				Gatherer: reg,
			})

			log.Info("dynhung server starting",
				zap.Int("port", cfg.APIPort),
				zap.Int("max_n", cfg.MaxN),
				zap.Float64("rate_limit", cfg.RateLimit),
			)
			err = httpapi.NewServer(cfg, log, handler).Run(cmd.Context())
			log.Info("dynhung server stopped", zap.Error(err))

			return err
		},
	}

	cmd.Flags().Int("port", 6060, "listen port")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().Int("max-n", 512, "largest accepted problem size n")
	_ = c.v.BindPFlag(config.KeyAPIPort, cmd.Flags().Lookup("port"))
	_ = c.v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level"))
	_ = c.v.BindPFlag(config.KeyMaxN, cmd.Flags().Lookup("max-n"))

	return cmd
}
