// Command seed provisions admin accounts and demo records.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/database"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/spf13/cobra"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Provision EcoHealth Sentinel data",
	SilenceUsage: true,
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(ctx context.Context, b *repository.Backend) error {
			u, err := createAdmin(ctx, users.NewService(repository.For[models.User](b, models.Users)), adminName, adminEmail, adminPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %s)\n", u.Email, u.ID)
			return nil
		})
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Insert demo patients, appointments, vitals and emergency data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(ctx context.Context, b *repository.Backend) error {
			n, err := seedDemo(ctx, b, time.Now())
			if err != nil {
				return err
			}
			for _, k := range demoOrder {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", k, n[k])
			}
			return nil
		})
	},
}

// withBackend runs fn against the configured MongoDB database.
func withBackend(fn func(ctx context.Context, b *repository.Backend) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.MongoDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 3)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	return fn(ctx, repository.NewMongoBackend(client.Database(cfg.MongoDB.Database)))
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	adminCmd.Flags().StringVar(&adminName, "name", "Administrator", "Display name")
	adminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password (min 6 chars)")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(adminCmd, demoCmd)
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
