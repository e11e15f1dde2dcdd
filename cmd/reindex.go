package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/index"
)

var reindexDryRun bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild posts/index.json from the post files",
	Long:  `Scans the data directory for post files matching the configured include globs and rewrites posts/index.json with their id, title, date, and tags, ordered newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		exitOnError(err)

		res, err := index.Scan(cfg.DataDir, cfg.Include, cfg.Exclude)
		exitOnError(err)

		for _, s := range res.Skipped {
			fmt.Printf("skipped %s (not a valid post)\n", s)
		}

		if reindexDryRun {
			fmt.Printf("Would index %d posts:\n", len(res.Entries))
			for _, e := range res.Entries {
				fmt.Printf("  %s  %-10s  %s\n", e.ID, e.Date, e.Title)
			}
			return
		}

		exitOnError(index.Write(cfg.DataDir, res.Entries))
		fmt.Printf("Indexed %d posts.\n", len(res.Entries))
	},
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexDryRun, "dry-run", false, "Show what would be indexed without writing")
	rootCmd.AddCommand(reindexCmd)
}
