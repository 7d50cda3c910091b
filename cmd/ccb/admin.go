package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Manideep236692/IARE-ChatBot/internal/api"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration commands",
		Long:  "Dashboards, user and FAQ management, analytics, tickets and system settings. Requires an ADMIN or SUPER_ADMIN account.",
	}

	cmd.AddCommand(newAdminStatsCmd())
	cmd.AddCommand(newAdminAnalyticsCmd())
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminFAQCmd())
	cmd.AddCommand(newAdminTicketsCmd())
	cmd.AddCommand(newAdminSettingsCmd())
	cmd.AddCommand(newAdminLogsCmd())
	cmd.AddCommand(newAdminReportsCmd())
	return cmd
}

func newAdminStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			stats, err := a.client.DashboardStats(cmd.Context())
			if err != nil {
				return failMessage(cmd, err)
			}
			printKeyValues(cmd, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newAdminAnalyticsCmd() *cobra.Command {
	var (
		configPath string
		kind       string
		startDate  string
		endDate    string
	)

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show query or user analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			var report map[string]any
			switch kind {
			case "queries":
				report, err = a.client.QueryAnalytics(cmd.Context(), startDate, endDate)
			case "users":
				report, err = a.client.UserAnalytics(cmd.Context(), startDate, endDate)
			default:
				return fmt.Errorf("--kind must be queries or users, got %q", kind)
			}
			if err != nil {
				return failMessage(cmd, err)
			}
			printKeyValues(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&kind, "kind", "queries", "analytics kind (queries, users)")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func newAdminSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "System settings commands",
	}

	cmd.AddCommand(newAdminSettingsShowCmd())
	cmd.AddCommand(newAdminSettingsSetCmd())
	cmd.AddCommand(newAdminSettingsProviderCmd())
	return cmd
}

func newAdminSettingsShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print system settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			settings, err := a.client.Settings(cmd.Context())
			if err != nil {
				return failMessage(cmd, err)
			}
			printKeyValues(cmd, settings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newAdminSettingsSetCmd() *cobra.Command {
	var (
		configPath string
		valuesJSON string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update system settings from a JSON object",
		RunE: func(cmd *cobra.Command, args []string) error {
			var settings map[string]any
			if err := json.Unmarshal([]byte(valuesJSON), &settings); err != nil {
				return fmt.Errorf("invalid --values JSON: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			if err := a.client.UpdateSettings(cmd.Context(), settings); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&valuesJSON, "values", "", "settings as a JSON object (required)")
	cmd.MarkFlagRequired("values")
	return cmd
}

func newAdminSettingsProviderCmd() *cobra.Command {
	var (
		configPath string
		model      string
		test       bool
	)

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Configure the AI provider",
		Long:  "Stores the AI provider API key and model. The key is prompted without echo and is never written to the terminal or the log. --test verifies the stored credentials.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if test {
				result, err := a.client.TestProviderConnection(cmd.Context())
				if err != nil {
					return failMessage(cmd, err)
				}
				printKeyValues(cmd, result)
				return nil
			}

			key, err := promptPassword(cmd, "Provider API key")
			if err != nil {
				return err
			}
			if key == "" && model == "" {
				return fmt.Errorf("nothing to update")
			}

			cfg := api.ProviderConfig{APIKey: key, Model: model}
			if err := a.client.UpdateProviderConfig(cmd.Context(), cfg); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintln(out, "Provider configuration updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&model, "model", "", "provider model name")
	cmd.Flags().BoolVar(&test, "test", false, "test the stored credentials instead of updating")
	return cmd
}

// printKeyValues renders a flat JSON object with stable key order.
func printKeyValues(cmd *cobra.Command, values map[string]any) {
	out := cmd.OutOrStdout()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%-24s %v\n", k, values[k])
	}
}
