package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go-catat-jualan/internal/config"
	"go-catat-jualan/internal/repository"
	"go-catat-jualan/internal/service"
	"go-catat-jualan/internal/sheets"
	"go-catat-jualan/pkg/jwt"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "sheetctl",
	Short:         "Maintenance tasks for the catat-jualan row store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sheetctl: %v\n", err)
		os.Exit(1)
	}
}

// openStore loads config and opens the configured backend.
func openStore(ctx context.Context) (config.Config, sheets.RowStore, func() error, error) {
	cfg := config.Load()
	if !cfg.StoreConfigured() {
		return cfg, nil, nil, errors.New("row store not configured (see STORE_BACKEND)")
	}
	store, closeFn, err := sheets.Open(ctx, cfg.Store)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, store, closeFn, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var ensureTablesCmd = &cobra.Command{
	Use:   "ensure-tables",
	Short: "Create missing sheets and header rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		_, store, closeFn, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := sheets.EnsureAll(ctx, store); err != nil {
			return fmt.Errorf("ensure tables failed: %w", err)
		}
		for _, t := range sheets.Tables {
			fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (%d columns)\n", t.Name, t.Width())
		}
		return nil
	},
}

var newPassword string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cfg, store, closeFn, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		auth := service.NewAuthService(
			repository.NewUserRepo(store),
			jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTTL),
			service.NewClock(cfg.Location()),
		)
		if err := auth.ResetPasswordByUsername(ctx, args[0], newPassword); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "password for %s updated\n", args[0])
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role <userId> <admin|seller>",
	Short: "Change a user's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(commandContext(cmd), 30*time.Second)
		defer cancel()
		cfg, store, closeFn, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		admin := service.NewAdminService(
			repository.NewUserRepo(store),
			repository.NewProductRepo(store),
			repository.NewOrderRepo(store),
			repository.NewTransactionRepo(store),
			cfg.AdminUserIDs,
		)
		user, err := admin.SetRole(ctx, args[0], &service.SetRoleRequest{Role: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.ID, user.Role)
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVarP(&newPassword, "password", "p", "", "new password (min 6 characters)")
	_ = resetPasswordCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(ensureTablesCmd, resetPasswordCmd, setRoleCmd)
}
