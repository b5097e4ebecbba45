package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/config"
)

func newAdminCommand(getConfig func() *config.Config) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var seed auth.AdminSeed
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account or promote an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), getConfig())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			u, created, err := a.auth.EnsureAdmin(cmd.Context(), seed)
			if err != nil {
				return err
			}
			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s %s (%s)\n", u.Email, verb, u.ID.Hex())
			return nil
		},
	}
	create.Flags().StringVar(&seed.Email, "email", "", "admin email")
	create.Flags().StringVar(&seed.Password, "password", "", "admin password (at least 6 characters)")
	create.Flags().StringVar(&seed.Name, "name", "", "display name")
	create.Flags().StringVar(&seed.Phone, "phone", "", "phone number")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	admin.AddCommand(create)
	return admin
}
