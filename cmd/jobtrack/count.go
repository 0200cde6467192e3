package main

import (
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count applications matching the filters",
	RunE:  runCount,
}

var countQuery queryFlags

func init() {
	countQuery.register(countCmd.Flags(), false)
	_ = countCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, _ []string) error {
	filters, err := countQuery.Filters(cmd.Flags())
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	total, err := a.service.CountApplications(cmd.Context(), countQuery.user, filters)
	if err != nil {
		return errors.Wrap(err, "failed to count applications")
	}

	return printJSON(cmd.OutOrStdout(), map[string]int64{"total": total})
}
