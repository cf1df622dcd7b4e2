package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes path + BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"
	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".refract.bak"

// BackupPath returns where the backup of path is kept, or "" when mode
// disables backups. Unknown modes behave like sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// Backup stores the snapshot's content as its backup. An existing backup
// is never overwritten, so repeated runs keep the first original. It
// returns whether a backup was written.
func (s *Snapshot) Backup(ctx context.Context, mode BackupMode) (bool, error) {
	dst := BackupPath(s.Path, mode)
	if dst == "" {
		return false, nil
	}

	_, err := os.Stat(dst)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup %s: %w", dst, err)
	}

	if err := WriteAtomic(ctx, dst, s.Content, s.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over it and removes the
// backup. It returns false when there is no backup.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	src := BackupPath(path, mode)
	if src == "" {
		return false, nil
	}

	snap, err := Read(ctx, src)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := WriteAtomic(ctx, path, snap.Content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(src); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
