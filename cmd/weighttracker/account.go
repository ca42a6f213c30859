package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"weighttracker/internal/app"
)

var accountPassword string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage local accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a local account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		err = app.NewCredentialStore(db).CreateAccount(cmd.Context(), args[0], accountPassword)
		switch {
		case errors.Is(err, app.ErrBlankInput):
			return errors.New("please enter a username and password")
		case errors.Is(err, app.ErrUsernameTaken):
			return errors.New("that username is already in use, please choose another one")
		case err != nil:
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Account created! You can log in now.")
		return nil
	},
}

var accountCheckCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Check a username and password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ok, err := app.NewCredentialStore(db).ValidateLogin(cmd.Context(), args[0], accountPassword)
		if err != nil {
			return err
		}
		if !ok {
			return app.ErrInvalidCredentials
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", args[0])
		return nil
	},
}

func init() {
	accountCmd.PersistentFlags().StringVar(&accountPassword, "password", "", "account password")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountCheckCmd)
}
