package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	var (
		configPath string
		category   string
		listCats   bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show suggested questions",
		Long:  "Lists questions the assistant can answer well, optionally scoped to a topic category. --categories lists the available topics instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if listCats {
				cats, err := a.client.Categories(cmd.Context())
				if err != nil {
					return failMessage(cmd, err)
				}
				for _, c := range cats {
					fmt.Fprintf(out, "  %s\n", c)
				}
				return nil
			}

			suggestions, err := a.client.Suggestions(cmd.Context(), category)
			if err != nil {
				return failMessage(cmd, err)
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "No suggestions")
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().StringVar(&category, "category", "", "topic category to scope suggestions")
	cmd.Flags().BoolVar(&listCats, "categories", false, "list available categories instead")
	return cmd
}
