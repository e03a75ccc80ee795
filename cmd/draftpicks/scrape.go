package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the pick table and replace the stored copy (default action)",
		Args:  cobra.NoArgs,
		RunE:  runScrape,
	}
}

func runScrape(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	runner, err := appInstance.Runner(cmd.Context())
	if err != nil {
		return err
	}
	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	sink := appInstance.Sink()
	fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d rows into %s in %s.\n", res.Rows, sink.Table(), sink.Location())
	return nil
}
