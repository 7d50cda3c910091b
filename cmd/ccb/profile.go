package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}

	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfilePasswordCmd())
	cmd.AddCommand(newProfileForgotCmd())
	cmd.AddCommand(newProfileResetCmd())
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		configPath string
		name       string
		phone      string
		bio        string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("name") {
				fields["name"] = name
			}
			if cmd.Flags().Changed("phone") {
				fields["phone"] = phone
			}
			if cmd.Flags().Changed("bio") {
				fields["bio"] = bio
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update; pass --name, --phone or --bio")
			}

			user, err := a.client.UpdateProfile(cmd.Context(), fields)
			if err != nil {
				return failMessage(cmd, err)
			}
			if err := a.session.UpdateUser(fields); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&bio, "bio", "", "new bio")
	return cmd
}

func newProfilePasswordCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			current, err := promptPassword(cmd, "Current password")
			if err != nil {
				return err
			}
			next, err := promptPassword(cmd, "New password")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(cmd, "Confirm new password")
			if err != nil {
				return err
			}
			if next != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := a.client.ChangePassword(cmd.Context(), current, next); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newProfileForgotCmd() *cobra.Command {
	var (
		configPath string
		email      string
	)

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.client.ForgotPassword(cmd.Context(), email); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset instructions sent to %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newProfileResetCmd() *cobra.Command {
	var (
		configPath string
		token      string
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Complete a password reset with the emailed token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}

			next, err := promptPassword(cmd, "New password")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(cmd, "Confirm new password")
			if err != nil {
				return err
			}
			if next != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := a.client.ResetPassword(cmd.Context(), token, next); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password reset. Run `ccb login` to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&token, "token", "", "reset token from the email (required)")
	cmd.MarkFlagRequired("token")
	return cmd
}
