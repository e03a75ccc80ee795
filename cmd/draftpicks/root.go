package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/draftpicks/internal/app"
	"github.com/JakeFAU/draftpicks/internal/config"
	"github.com/JakeFAU/draftpicks/internal/logging"
)

// appKeyType is the key for storing the App in the command context.
type appKeyType string

const appKey appKeyType = "app"

// appFactory builds the App once config and logger are ready. Tests swap it
// to inject a sink.
type appFactory func(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app.App, error)

func defaultAppFactory(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app.App, error) {
	return app.New(ctx, cfg, logger, nil)
}

// session owns the App for one invocation so it can be closed even when the
// command fails (cobra skips post-run hooks on error).
type session struct {
	newApp appFactory
	app    *app.App
}

// execute runs the CLI with args and closes whatever the command opened.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, factory appFactory) error {
	s := &session{newApp: factory}
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	runErr := cmd.ExecuteContext(ctx)
	return errors.Join(runErr, s.close())
}

func newRootCmd(s *session) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "draftpicks",
		Short: "Scrape the Bills first-round draft picks into a database.",
		Long: `draftpicks fetches the list of Buffalo Bills first-round draft picks,
rebuilds the pick table (including seasons that span several rows) and
replaces the contents of a SQLite or Postgres table with it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)

			appInstance, err := s.newApp(cmd.Context(), cfg, logger)
			if err != nil {
				_ = logger.Sync()
				return err
			}
			s.app = appInstance
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		RunE: runScrape,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, TOML or JSON)")

	cmd.AddCommand(newScrapeCmd(), newShowCmd(), newExportCmd())
	return cmd
}

// resolveApp retrieves the App stored by PersistentPreRunE.
func resolveApp(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, errors.New("application not initialized")
	}
	return appInstance, nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	closeErr := s.app.Close()
	//nolint:errcheck // stderr sync fails on some terminals
	s.app.Logger().Sync()
	s.app = nil
	if closeErr != nil {
		return fmt.Errorf("shutdown: %w", closeErr)
	}
	return nil
}
