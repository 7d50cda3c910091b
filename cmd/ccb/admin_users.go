package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management commands",
	}

	cmd.AddCommand(newAdminUsersListCmd())
	cmd.AddCommand(newAdminUsersShowCmd())
	cmd.AddCommand(newAdminUsersUpdateCmd())
	cmd.AddCommand(newAdminUsersDeleteCmd())
	cmd.AddCommand(newAdminUsersToggleCmd())
	return cmd
}

func newAdminUsersListCmd() *cobra.Command {
	var (
		configPath string
		page       int
		size       int
		search     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			users, err := a.client.Users(cmd.Context(), page, size, search)
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(users.Items) == 0 {
				fmt.Fprintln(out, "No users")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range users.Items {
				active := "-"
				if u.Active != nil {
					active = strconv.FormatBool(*u.Active)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, active)
			}
			w.Flush()
			fmt.Fprintf(out, "Page %d of %d (%d users)\n", users.Number+1, users.TotalPages, users.TotalElements)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().StringVar(&search, "search", "", "name or email filter")
	return cmd
}

func newAdminUsersShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			user, err := a.client.UserByID(cmd.Context(), id)
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:    %d\n", user.ID)
			fmt.Fprintf(out, "Name:  %s\n", user.Name)
			fmt.Fprintf(out, "Email: %s\n", user.Email)
			fmt.Fprintf(out, "Role:  %s\n", user.Role)
			if user.Phone != "" {
				fmt.Fprintf(out, "Phone: %s\n", user.Phone)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newAdminUsersUpdateCmd() *cobra.Command {
	var (
		configPath string
		fieldsJSON string
	)

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user account from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}
			var fields map[string]any
			if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
				return fmt.Errorf("invalid --fields JSON: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			user, err := a.client.UpdateUser(cmd.Context(), id, fields)
			if err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&fieldsJSON, "fields", "", "fields to change as a JSON object (required)")
	cmd.MarkFlagRequired("fields")
	return cmd
}

func newAdminUsersDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			if err := a.client.DeleteUser(cmd.Context(), id); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newAdminUsersToggleCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "toggle <user-id>",
		Short: "Toggle a user between active and disabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			user, err := a.client.ToggleUserStatus(cmd.Context(), id)
			if err != nil {
				return failMessage(cmd, err)
			}
			state := "disabled"
			if user.Active != nil && *user.Active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d is now %s\n", user.ID, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}
