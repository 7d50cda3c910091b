package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/Manideep236692/IARE-ChatBot/internal/api"
	"github.com/spf13/cobra"
)

func newAdminFAQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "FAQ management commands",
	}

	cmd.AddCommand(newAdminFAQListCmd())
	cmd.AddCommand(newAdminFAQCreateCmd())
	cmd.AddCommand(newAdminFAQUpdateCmd())
	cmd.AddCommand(newAdminFAQDeleteCmd())
	return cmd
}

func newAdminFAQListCmd() *cobra.Command {
	var (
		configPath string
		page       int
		size       int
		category   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List FAQ entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			faqs, err := a.client.FAQs(cmd.Context(), page, size, category)
			if err != nil {
				return failMessage(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(faqs.Items) == 0 {
				fmt.Fprintln(out, "No FAQ entries")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tQUESTION\tVIEWS")
			for _, f := range faqs.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", f.ID, f.Category, truncate(f.Question, 56), f.ViewCount)
			}
			w.Flush()
			fmt.Fprintf(out, "Page %d of %d (%d entries)\n", faqs.Number+1, faqs.TotalPages, faqs.TotalElements)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().StringVar(&category, "category", "", "category filter")
	return cmd
}

func newAdminFAQCreateCmd() *cobra.Command {
	var (
		configPath string
		question   string
		answer     string
		category   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a FAQ entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			faq, err := a.client.CreateFAQ(cmd.Context(), api.FAQ{
				Question: question,
				Answer:   answer,
				Category: category,
			})
			if err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created FAQ %d\n", faq.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&question, "question", "", "FAQ question (required)")
	cmd.Flags().StringVar(&answer, "answer", "", "FAQ answer (required)")
	cmd.Flags().StringVar(&category, "category", "", "FAQ category (required)")
	cmd.MarkFlagRequired("question")
	cmd.MarkFlagRequired("answer")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newAdminFAQUpdateCmd() *cobra.Command {
	var (
		configPath string
		question   string
		answer     string
		category   string
	)

	cmd := &cobra.Command{
		Use:   "update <faq-id>",
		Short: "Update a FAQ entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid FAQ ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			faq, err := a.client.UpdateFAQ(cmd.Context(), id, api.FAQ{
				Question: question,
				Answer:   answer,
				Category: category,
			})
			if err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated FAQ %d\n", faq.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&question, "question", "", "FAQ question (required)")
	cmd.Flags().StringVar(&answer, "answer", "", "FAQ answer (required)")
	cmd.Flags().StringVar(&category, "category", "", "FAQ category (required)")
	cmd.MarkFlagRequired("question")
	cmd.MarkFlagRequired("answer")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newAdminFAQDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <faq-id>",
		Short: "Delete a FAQ entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid FAQ ID: %w", err)
			}

			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}

			if err := a.client.DeleteFAQ(cmd.Context(), id); err != nil {
				return failMessage(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted FAQ %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	return cmd
}
