package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

const exportSheet = "Picks"

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored picks to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			records, err := appInstance.Sink().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list picks: %w", err)
			}
			if err := writeWorkbook(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s.\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "picks.xlsx", "workbook path")
	return cmd
}

// writeWorkbook writes a header row plus one row per record, with the header
// frozen and filterable.
func writeWorkbook(path string, records []draft.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := draft.Headings[:]
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		fields := rec.Fields()
		if err := f.SetSheetRow(exportSheet, cell, &fields); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(draft.Width, len(records)+1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.AutoFilter(exportSheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("set filter: %w", err)
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "C", "C", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
