package main

import (
	"fmt"

	"github.com/phrazzld/bloggy-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// newHashPasswordCmd returns the command that prints the bcrypt hash to
// configure as auth.admin_password_hash.
func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of an admin password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (default bcrypt.DefaultCost)")

	return cmd
}
