// filepath: internal/cli/stats_command.go
package cli

import (
	"fmt"

	"docvault/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewStatsCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print storage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(globalOptions)
		},
	}
}

func printStats(globalOptions *GlobalOptions) error {
	cfg, err := loadConfig(globalOptions)
	if err != nil {
		return err
	}
	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	staged, err := storage.MeasureTree(cfg.Storage.StagingRoot)
	if err != nil {
		return err
	}
	final, err := storage.MeasureTree(cfg.Storage.FinalRoot)
	if err != nil {
		return err
	}

	fmt.Printf("Staging:     %d file(s), %s\n", staged.FileCount, humanize.IBytes(uint64(staged.TotalBytes)))
	fmt.Printf("Final store: %d file(s), %s\n", final.FileCount, humanize.IBytes(uint64(final.TotalBytes)))
	return nil
}
