// filepath: internal/cli/reap_command.go
package cli

import (
	"time"

	"docvault/internal/logging"
	"docvault/internal/storage"

	"github.com/spf13/cobra"
)

func NewReapCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reap",
		Short: "Run a single sweep of the staging area",
		Long:  "Deletes staged files older than the configured retention age and exits. The serve command runs the same sweep periodically in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reapOnce(globalOptions)
		},
	}
}

func reapOnce(globalOptions *GlobalOptions) error {
	cfg, err := loadConfig(globalOptions)
	if err != nil {
		return err
	}
	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	staging, err := storage.NewStaging(cfg.Storage.StagingRoot)
	if err != nil {
		return err
	}

	reaper := storage.NewReaper(staging, cfg.RetentionAge, cfg.SweepInterval)
	removed := reaper.Sweep(time.Now())
	logging.Log.Infof("Sweep finished: %d staged file(s) removed.", removed)
	return nil
}
