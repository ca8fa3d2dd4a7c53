package cmd

import (
	"fmt"

	"github.com/rozeen-shrestha/confession/database"
	"github.com/rozeen-shrestha/confession/services"
	"github.com/spf13/cobra"
)

var (
	seedUsername string
	seedEmail    string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin user if it does not exist",
	Long: `Creates an admin user with a random password. The password is written
to the server log only. Nothing changes when a user with the same username
or email already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, logger)
		if err != nil {
			return err
		}
		defer db.Disconnect(ctx)
		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}

		auth := services.NewAuthService(db.Users(), services.AuthOptions{BcryptCost: cfg.BcryptCost}, logger)
		created, err := auth.SeedAdmin(ctx, seedUsername, seedEmail)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin user created. The password is in the log.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "User already exists.")
		}
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedUsername, "username", services.DefaultAdminUsername, "admin username")
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", services.DefaultAdminEmail, "admin email")
}
