package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <paths...>",
		Short: "Undo a write by restoring the sidecar backups",
		Long: `Copy each file's sidecar backup (` + "`<file>" + fsutil.BackupSuffix + "`" + `) back over the
file and remove the backup. Files without a backup are left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			logger := logging.FromContext(ctx)

			restored := 0
			for _, path := range args {
				ok, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
				if err != nil {
					return fmt.Errorf("restore %s: %w", path, err)
				}
				if !ok {
					logger.Warn("no backup found", logging.FieldPath, path)
					continue
				}
				restored++
				logger.Debug("backup restored", logging.FieldPath, path)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d of %d files restored\n", restored, len(args)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}
