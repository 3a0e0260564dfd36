package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/spf13/cobra"
)

var errPasswordsDiffer = errors.New("passwords do not match")

func newRegisterCmd(a *App) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Missing --username or --email values are prompted
for; the password is always read from the terminal without echo.

Examples:
  fishctl register --username alice --email alice@example.com
  fishctl --storage sqlite register`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = GetSimpleText(a.in, "Enter user name", a.out); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = GetSimpleText(a.in, "Enter email", a.out); err != nil {
					return err
				}
			}

			password, err := GetPassword("Enter password", a.out)
			if err != nil {
				return err
			}
			confirm, err := GetPassword("Repeat password", a.out)
			if err != nil {
				return err
			}
			if password != confirm {
				return errPasswordsDiffer
			}

			if _, err := a.accounts.Register(cmd.Context(), username, email, password); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome to %s!\n", common.ProductName)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "user name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLoginCmd(a *App) *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username (or email) and password",
		Long: `Check credentials the way the server's /login endpoint does. Nothing is
stored; the command only reports whether the password matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if identifier == "" {
				if identifier, err = GetSimpleText(a.in, "Enter user name or email", a.out); err != nil {
					return err
				}
			}
			password, err := GetPassword("Enter password", a.out)
			if err != nil {
				return err
			}

			res, err := a.accounts.Login(cmd.Context(), identifier, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome back, %s!\n", res.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "username", "", "user name or email")
	return cmd
}

func newAccountsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts in stored order (without password hashes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.repos.Accounts().All(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USERNAME\tEMAIL")
			for _, acc := range list {
				fmt.Fprintf(tw, "%s\t%s\n", acc.Username, acc.Email)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d account(s)\n", len(list))
			return nil
		},
	}
	return cmd
}
