package main

import (
	"fmt"

	"github.com/Manideep236692/IARE-ChatBot/internal/api"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		configPath string
		email      string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to CampusConnect",
		Long:  "Authenticates against the backend and persists the session locally. Subsequent commands reuse it until logout or expiry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd, "Password")
				if err != nil {
					return err
				}
			}

			resp, err := a.client.Login(cmd.Context(), api.Credentials{Email: email, Password: password})
			if err != nil {
				return failMessage(cmd, err)
			}
			if err := a.session.SetAuth(&resp.User, resp.Token, resp.RefreshToken); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var (
		configPath string
		name       string
		email      string
		password   string
		confirm    string
		phone      string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a CampusConnect account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd, "Password")
				if err != nil {
					return err
				}
				confirm, err = promptPassword(cmd, "Confirm password")
				if err != nil {
					return err
				}
			}
			// Validation failures never reach the network.
			if confirm != "" && confirm != password {
				return fmt.Errorf("passwords do not match")
			}

			resp, err := a.client.Register(cmd.Context(), api.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
				Phone:    phone,
			})
			if err != nil {
				return failMessage(cmd, err)
			}
			if err := a.session.SetAuth(&resp.User, resp.Token, resp.RefreshToken); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Logged in as %s\n", resp.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}

			// Server-side logout is best effort; the local session is
			// cleared regardless.
			if a.session.Authenticated() {
				if err := a.client.Logout(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: server logout failed: %s\n", api.ErrorMessage(err))
				}
			}
			if err := a.session.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var (
		configPath string
		remote     bool
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Long:  "Prints the locally stored user, or with --remote the profile fetched from the backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			user := a.session.User()
			if remote {
				user, err = a.client.Me(cmd.Context())
				if err != nil {
					return failMessage(cmd, err)
				}
				if err := a.session.UpdateUser(map[string]any{
					"name":  user.Name,
					"email": user.Email,
					"role":  user.Role,
				}); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", user.Name)
			fmt.Fprintf(out, "Email: %s\n", user.Email)
			fmt.Fprintf(out, "Role:  %s\n", user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the profile from the backend")
	return cmd
}
