package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/medvalidate-backend/internal/app"
	"github.com/yungbote/medvalidate-backend/internal/platform/envutil"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "medvalidate",
		Short:         "Healthcare startup idea analysis API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), sweepSagasCmd(), issueTokenCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*logger.Logger, app.Config, error) {
	log, err := app.NewLogger(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, app.Config{}, err
	}
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, app.Config{}, err
	}
	return log, cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := setup()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), log, cfg)
			if err != nil {
				log.Sync()
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := setup()
			if err != nil {
				return err
			}
			a, err := app.NewMaintenance(cmd.Context(), log, cfg)
			if err != nil {
				log.Sync()
				return err
			}
			defer a.Close()
			log.Info("Schema up to date", "driver", cfg.DB.Driver)
			return nil
		},
	}
}

func sweepSagasCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "sweep-sagas",
		Short: "Compensate analysis sagas left running by a crashed process",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := setup()
			if err != nil {
				return err
			}
			if olderThan > 0 {
				cfg.Analysis.SagaSweepAge = olderThan
			}
			a, err := app.NewMaintenance(cmd.Context(), log, cfg)
			if err != nil {
				log.Sync()
				return err
			}
			defer a.Close()
			n, err := a.SweepSagas(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("Saga sweep finished", "compensated", n, "older_than", cfg.Analysis.SagaSweepAge.String())
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "only sweep sagas idle longer than this (default SAGA_SWEEP_AGE)")
	return cmd
}

func issueTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}
			token, err := services.NewAuthService(log, cfg.Auth.JWTSecret).IssueToken(id, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
