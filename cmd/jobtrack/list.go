package main

import (
	"encoding/json"
	"io"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/jobtrack/jobs"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications as a JSON page",
	Long: "List the applications of a user. Pages are cursor based; pass the printed cursor with --cursor " +
		"to fetch the next page, or use --skip for numbered pages.",
	RunE: runList,
}

var (
	listQuery  queryFlags
	listTake   int
	listCursor string
	listSkip   int
)

func init() {
	listQuery.register(listCmd.Flags(), true)
	listCmd.Flags().IntVarP(&listTake, "take", "n", 0, "Page size (default from config)")
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "Cursor of the previous page")
	listCmd.Flags().IntVar(&listSkip, "skip", 0, "Rows to skip; switches to offset pagination")
	_ = listCmd.MarkFlagRequired("user")
	listCmd.MarkFlagsMutuallyExclusive("cursor", "skip")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	filters, err := listQuery.Filters(cmd.Flags())
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var take *int
	if cmd.Flags().Changed("take") {
		take = &listTake
	}

	var page any
	if cmd.Flags().Changed("skip") {
		page, err = a.service.ListApplicationsByOffset(cmd.Context(), listQuery.user, jobs.OffsetListRequest{
			Filters: filters,
			Sort:    listQuery.Sort(),
			Skip:    listSkip,
			Take:    take,
		})
	} else {
		var cursor *string
		if listCursor != "" {
			cursor = &listCursor
		}
		page, err = a.service.ListApplications(cmd.Context(), listQuery.user, jobs.ListRequest{
			Filters: filters,
			Sort:    listQuery.Sort(),
			Take:    take,
			Cursor:  cursor,
		})
	}
	if err != nil {
		return errors.Wrap(err, "failed to list applications")
	}

	return printJSON(cmd.OutOrStdout(), page)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
