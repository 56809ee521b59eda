package cmd

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/app"
	"github.com/tallybook/tally/internal/export"
)

func NewBackupCmd(application *app.App) *cobra.Command {
	var showLatest bool

	backupCmd := &cobra.Command{
		Use:          "backup",
		Short:        "Write a ledger backup, or show the most recent one",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir, err := application.ExportBaseDir()
			if err != nil {
				return err
			}

			if showLatest {
				path, ok := export.MostRecentBackup(baseDir)
				if !ok {
					pterm.Info.Println("No backups found")
					return nil
				}
				pterm.DefaultBasicText.Printfln("%s (from %s)",
					path, export.ParseExportTime(filepath.Base(path)).Format("2006-01-02 15:04:05"))
				return nil
			}

			path, err := export.BackupFile(baseDir)
			if err != nil {
				return err
			}

			exporter := export.NewYAMLExporter(application.Store)
			if err := writeExport(exporter, path); err != nil {
				return err
			}

			pterm.Success.Printfln("Backup written to %s", path)
			return nil
		},
	}

	backupCmd.Flags().BoolVar(&showLatest, "latest", false, "Show the most recent backup instead of creating one")

	return backupCmd
}
