package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAdminTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Support ticket commands",
	}

	cmd.AddCommand(newAdminTicketsListCmd())
	cmd.AddCommand(newAdminTicketsStatusCmd())
	cmd.AddCommand(newAdminTicketsAssignCmd())
	return cmd
}

func newAdminTicketsListCmd() *cobra.Command {
	var (
		configPath string
		page       int
		size       int
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List support tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			tickets, err := a.client.Tickets(cmd.Context(), page, size, status)
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(tickets.Items) == 0 {
				fmt.Fprintln(out, "No tickets")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSUBJECT\tSTATUS\tUSER\tADMIN")
			for _, t := range tickets.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", t.ID, truncate(t.Subject, 48), t.Status, t.UserID, t.AdminID)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	return cmd
}

func newAdminTicketsStatusCmd() *cobra.Command {
	var (
		configPath string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "status <ticket-id>",
		Short: "Change a ticket's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			ticket, err := a.client.UpdateTicketStatus(cmd.Context(), id, status)
			if err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d is now %s\n", ticket.ID, ticket.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&status, "to", "", "new status (required)")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newAdminTicketsAssignCmd() *cobra.Command {
	var (
		configPath string
		adminID    int64
	)

	cmd := &cobra.Command{
		Use:   "assign <ticket-id>",
		Short: "Assign a ticket to an admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			ticket, err := a.client.AssignTicket(cmd.Context(), id, adminID)
			if err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d assigned to admin %d\n", ticket.ID, adminID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().Int64Var(&adminID, "admin", 0, "admin user ID (required)")
	cmd.MarkFlagRequired("admin")
	return cmd
}

func newAdminLogsCmd() *cobra.Command {
	var (
		configPath    string
		page          int
		size          int
		level         string
		clear         bool
		olderThanDays int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View or clear backend system logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if clear {
				if err := a.client.ClearSystemLogs(cmd.Context(), olderThanDays); err != nil {
					return failMessage(cmd, err)
				}
				fmt.Fprintf(out, "Cleared logs older than %d days\n", olderThanDays)
				return nil
			}

			logs, err := a.client.SystemLogs(cmd.Context(), page, size, level)
			if err != nil {
				return failMessage(cmd, err)
			}
			if len(logs.Items) == 0 {
				fmt.Fprintln(out, "No log entries")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE")
			for _, l := range logs.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", formatTime(l.Timestamp), l.Level, truncate(l.Message, 72))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 50, "page size")
	cmd.Flags().StringVar(&level, "level", "", "level filter (INFO, WARN, ERROR)")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear old entries instead of listing")
	cmd.Flags().IntVar(&olderThanDays, "older-than", 30, "age threshold in days for --clear")
	return cmd
}

func newAdminReportsCmd() *cobra.Command {
	var (
		configPath string
		kind       string
		format     string
		startDate  string
		endDate    string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Export admin reports",
		Long:  "Downloads a users, queries or analytics report rendered by the backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("%s-report.%s", kind, format)
			}

			switch kind {
			case "users":
				err = a.client.ExportUsersReport(cmd.Context(), format, output)
			case "queries":
				err = a.client.ExportQueriesReport(cmd.Context(), startDate, endDate, format, output)
			case "analytics":
				err = a.client.ExportAnalyticsReport(cmd.Context(), startDate, endDate, format, output)
			default:
				return fmt.Errorf("--kind must be users, queries or analytics, got %q", kind)
			}
			if err != nil {
				return failMessage(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&kind, "kind", "users", "report kind (users, queries, analytics)")
	cmd.Flags().StringVar(&format, "format", "csv", "report format")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (derived when omitted)")
	return cmd
}
