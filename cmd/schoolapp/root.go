package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/schoolapp/internal/config"
	"github.com/deppfellow/schoolapp/internal/database"
	"github.com/deppfellow/schoolapp/internal/handler"
	"github.com/deppfellow/schoolapp/internal/lib/email"
	"github.com/deppfellow/schoolapp/internal/logger"
	"github.com/deppfellow/schoolapp/internal/repository"
	"github.com/deppfellow/schoolapp/internal/router"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/deppfellow/schoolapp/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DefaultShutdownTimeout bounds the graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.ServiceName,
		Short:         "Teachers registry API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newPreviewEmailCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, background workers and health monitor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving (skipped in local env)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}
}

func newPreviewEmailCmd() *cobra.Command {
	var templateDir string

	cmd := &cobra.Command{
		Use:   "preview-email <template>",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})

			client := email.NewClient(&config.Config{}, &log)
			client.TemplateDir = templateDir

			html, err := client.RenderPreview(email.Template(args[0]))
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, email.PreviewTemplates())
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&templateDir, "template-dir", email.DefaultTemplateDir, "directory holding the email templates")
	return cmd
}

// bootstrap loads config and builds the root logger.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if migrate && cfg.Primary.Env != "local" {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
