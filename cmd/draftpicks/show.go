package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored picks as a table",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	records, err := appInstance.Sink().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list picks: %w", err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(draft.Headings[:])
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(lo.Map(records, func(r draft.Record, _ int) []string {
		return r.Fields()
	}))
	table.SetCaption(true, fmt.Sprintf("%d rows in %s", len(records), appInstance.Sink().Table()))
	table.Render()
	return nil
}
