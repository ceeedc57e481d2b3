package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"masterdata-monitor/core/database"
	"masterdata-monitor/feature/region"

	"github.com/spf13/cobra"
)

var tableFlag string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <region>",
	Short: "List the tables of a converted master database",
	Long:  `Opens master_<region>.db in the download directory and lists its tables, or the columns of one table with --table.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()

		settings, err := region.Lookup(strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		path := filepath.Join(s.cfg.Download.Dir, settings.DatabaseName())

		tables, err := database.VerifyFile(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		if tableFlag == "" {
			fmt.Printf("=== %s: %d tables ===\n", settings.DatabaseName(), len(tables))
			for _, t := range tables {
				fmt.Println(t)
			}
			return nil
		}

		db, err := database.Connect(database.Config{Driver: "sqlite", Name: path})
		if err != nil {
			return err
		}
		defer database.Close(db)

		cols, err := database.GetTableColumns(db, tableFlag)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			return fmt.Errorf("table %q not found in %s", tableFlag, path)
		}
		fmt.Printf("=== %s.%s ===\n", settings.DatabaseName(), tableFlag)
		for _, c := range cols {
			fmt.Printf("%-32s %s\n", c.Field, c.Type)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&tableFlag, "table", "", "print the columns of this table")
	RootCmd.AddCommand(inspectCmd)
}
