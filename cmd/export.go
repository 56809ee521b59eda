package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/app"
	"github.com/tallybook/tally/internal/export"
)

func NewExportCmd(application *app.App) *cobra.Command {
	var formatFlag string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a snapshot file",
		Long: `Write a snapshot of the ledger into the exports directory. The file
is named after the current time so successive exports never collide.
Exported transactions are flagged; editing a transaction clears its flag
so the next export can pick it up again.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			baseDir, err := application.ExportBaseDir()
			if err != nil {
				return err
			}

			path, err := export.ExportFile(baseDir, format)
			if err != nil {
				return err
			}

			exporter, err := newExporter(application, format)
			if err != nil {
				return err
			}

			if err := writeExport(exporter, path); err != nil {
				return err
			}

			marked, err := application.Store.MarkTransactionsExported()
			if err != nil {
				return err
			}

			pterm.Success.Printfln("Exported to %s (%d transactions newly flagged)", path, marked)
			return nil
		},
	}

	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", "csv", "Export format: csv or yaml")

	return exportCmd
}

func newExporter(application *app.App, format export.Format) (export.Exporter, error) {
	switch format {
	case export.FormatCSV:
		return export.NewCSVExporter(application.Store), nil
	case export.FormatYAML:
		return export.NewYAMLExporter(application.Store), nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

func writeExport(exporter export.Exporter, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.Generate(exporter, f); err != nil {
		// A failed attempt leaves no half-written file behind.
		os.Remove(path)
		return err
	}
	return f.Close()
}
