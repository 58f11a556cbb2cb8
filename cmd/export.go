package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/sectionplanner/app"
	"github.com/kilianp07/sectionplanner/infra/logger"
	infrasections "github.com/kilianp07/sectionplanner/infra/sections"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved sections as a bulk summary or spreadsheet rows",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bulk", "output format: bulk or spreadsheet")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != "sqlite" {
		return fmt.Errorf("export reads saved sections from sqlite storage; backend is %s", cfg.Storage.Backend)
	}
	store, err := infrasections.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.New("export").Errorf("close store: %v", err)
		}
	}()
	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	cat, err := app.LoadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	snap, err := cat.Snapshot()
	if err != nil {
		return err
	}
	terms := snap.Calendar.Terms()

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "bulk":
		_, err = fmt.Fprintln(out, export.Bulk(list, terms))
		return err
	case "spreadsheet":
		return export.WriteSpreadsheet(out, list, terms)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
