// Package backup keeps rotating JSON snapshots of the week dataset next to
// the configured storage and restores them through a validated import.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/validation"
)

var nowFunc = time.Now

// Exporter writes the current dataset as JSON.
type Exporter interface {
	Export(ctx context.Context, w io.Writer) error
}

// Importer replaces the current dataset with a validated JSON document.
type Importer interface {
	Import(ctx context.Context, raw []byte) (*models.WeekDataset, error)
}

// Source is a store that can be both snapshotted and restored.
type Source interface {
	Exporter
	Importer
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	backupDir string
}

// NewManager creates a backup manager rooted in configDir
func NewManager(configDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup snapshots src and rotates old snapshots
func (m *Manager) CreateBackup(ctx context.Context, src Exporter) (string, error) {
	return m.createBackup(ctx, src, false)
}

// skipRotation is set during restore so the pre-restore snapshot never
// evicts the file being restored.
func (m *Manager) createBackup(ctx context.Context, src Exporter, skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := writeSnapshot(ctx, src, backupPath); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	logger.Debug("Created backup", "path", backupPath)
	return backupPath, nil
}

// nextBackupPath tries minute precision, then seconds, then a counter.
func (m *Manager) nextBackupPath() (string, error) {
	now := nowFunc()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+ts+constants.BackupFileSuffix)
	}

	backupPath := name(now.Format(constants.BackupTimestampFormat))
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return backupPath, nil
	}

	timestamp := now.Format(constants.BackupTimestampFormatSeconds)
	backupPath = name(timestamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		backupPath = name(fmt.Sprintf("%s-%d", timestamp, counter))
	}
}

func writeSnapshot(ctx context.Context, src Exporter, dest string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".snapshot-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := src.Export(ctx, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, dest)
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		timestamp, ok := parseBackupName(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupName extracts the timestamp from weekly-YYYYMMDD-HHMM[SS][-N].json.
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	ts := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// drop a trailing counter; time parts are always 4 or 6 digits
	parts := strings.Split(ts, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			ts = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{constants.BackupTimestampFormat, constants.BackupTimestampFormatSeconds} {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data in dst with the snapshot at backupPath.
// The current data is snapshotted first; that snapshot's path is returned.
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string, dst Source) (string, error) {
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("backup file does not exist: %s", backupPath)
		}
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	if err := VerifyBackup(raw); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	current, err := m.createBackup(ctx, dst, true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	if _, err := dst.Import(ctx, raw); err != nil {
		return current, fmt.Errorf("failed to restore backup: %w", err)
	}

	logger.Info("Restored backup", "from", backupPath, "previous", current)
	return current, nil
}

// VerifyBackup checks that raw is an importable dataset
func VerifyBackup(raw []byte) error {
	_, err := validation.ValidateDatasetJSON(raw)
	return err
}

// ExportFileName is the suggested name of a manual export taken at t.
func ExportFileName(t time.Time) string {
	return constants.ExportFilePrefix + t.Format(constants.DateFormat) + constants.BackupFileSuffix
}
