package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Conversation history commands",
	}

	cmd.AddCommand(newSessionsListCmd())
	cmd.AddCommand(newSessionsShowCmd())
	cmd.AddCommand(newSessionsDeleteCmd())
	cmd.AddCommand(newSessionsExportCmd())
	cmd.AddCommand(newSessionsSearchCmd())
	return cmd
}

func newSessionsListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			sessions, err := a.client.Sessions(cmd.Context())
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No conversations yet")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tMESSAGES\tUPDATED")
			for _, s := range sessions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
					s.ID, s.Title, s.Category, s.MessageCount, formatTime(s.UpdatedAt))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newSessionsShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			sess, err := a.client.Session(cmd.Context(), id)
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n\n", sess.Title, formatTime(sess.CreatedAt))
			for _, m := range sess.Messages {
				fmt.Fprintf(out, "[%s] %s: %s\n",
					m.Timestamp.Format("15:04"), strings.ToLower(m.Role), m.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newSessionsDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			if err := a.client.DeleteSession(cmd.Context(), id); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

func newSessionsExportCmd() *cobra.Command {
	var (
		configPath string
		format     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export conversations to a file",
		Long:  "Exports the whole chat history, or a single conversation when a session ID is given. The backend renders the file; ccb saves it locally.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid session ID: %w", err)
				}
				if output == "" {
					output = fmt.Sprintf("conversation-%d.%s", id, format)
				}
				if err := a.client.ExportSession(cmd.Context(), id, format, output); err != nil {
					return failMessage(cmd, err)
				}
			} else {
				if output == "" {
					output = "chat-history." + format
				}
				if err := a.client.ExportHistory(cmd.Context(), format, output); err != nil {
					return failMessage(cmd, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&format, "format", "pdf", "export format (pdf, csv, txt)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (derived from format when omitted)")
	return cmd
}

func newSessionsSearchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search past conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			sessions, err := a.client.SearchHistory(cmd.Context(), args[0])
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No matches")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tLAST MESSAGE\tUPDATED")
			for _, s := range sessions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					s.ID, s.Title, truncate(s.LastMessage, 48), formatTime(s.UpdatedAt))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}

// truncate shortens s to max runes for table cells.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
