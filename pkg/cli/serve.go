package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/cli/config"
	controller "github.com/secmon-lab/covidash/pkg/controller/http"
	"github.com/secmon-lab/covidash/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		warehouseCfg config.Warehouse
		storeCfg     config.CommentStore
		authCfg      config.Auth
		presetsCfg   config.Presets
		slackCfg     config.Slack
	)

	flags := joinFlags(
		serverCfg.Flags(),
		warehouseCfg.Flags(),
		storeCfg.Flags(),
		authCfg.Flags(),
		presetsCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting covidash server",
				slog.Any("server", serverCfg),
				slog.Any("warehouse", warehouseCfg),
				slog.Any("comment_store", storeCfg),
				slog.Any("auth", authCfg),
				slog.Any("presets", presetsCfg),
				slog.Any("slack", slackCfg),
			)

			wh, err := warehouseCfg.Configure(ctx)
			if err != nil {
				return err
			}

			datasetQuery, err := warehouseCfg.DatasetQuery()
			if err != nil {
				return err
			}

			// The dashboard cannot render without the dataset, so a load failure aborts startup
			dataset, err := usecase.LoadDataset(ctx, wh, datasetQuery)
			if err != nil {
				return goerr.Wrap(err, "failed to load dataset")
			}

			repo, err := storeCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Warn("Failed to close comment store", "error", err)
				}
			}()

			notifier, err := slackCfg.Configure(ctx)
			if err != nil {
				return err
			}

			presets, err := presetsCfg.Configure()
			if err != nil {
				return err
			}

			authUC, err := authCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure query tokens")
			}

			var dashboardOpts []usecase.DashboardOption
			if notifier != nil {
				dashboardOpts = append(dashboardOpts, usecase.WithNotifier(notifier))
			}
			dashboardUC := usecase.NewDashboard(dataset, repo, dashboardOpts...)
			queryUC := usecase.NewQuery(wh, usecase.WithPresets(presets))

			server, err := controller.NewServer(ctx,
				serverCfg.Configure(),
				controller.NewUseCases(dashboardUC, queryUC, authUC),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("base_path", serverCfg.BasePath),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
