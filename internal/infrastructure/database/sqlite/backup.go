package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stocky-backend/internal/domain/backup"
)

const snapshotExt = ".db"

// BackupService snapshots the database with VACUUM INTO, which produces a
// consistent copy without blocking readers.
type BackupService struct {
	db  *DB
	dir string
}

func NewBackupService(db *DB, dir string) backup.Service {
	return &BackupService{db: db, dir: dir}
}

func (s *BackupService) Create(ctx context.Context) (*backup.Snapshot, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("stocky-%s%s", time.Now().UTC().Format("20060102-150405"), snapshotExt)
	path := filepath.Join(s.dir, name)

	if err := s.db.DB.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	return &backup.Snapshot{Name: name, Path: path, Size: info.Size()}, nil
}

func (s *BackupService) List(ctx context.Context) ([]*backup.Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []*backup.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	snapshots := make([]*backup.Snapshot, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, &backup.Snapshot{
			Name: entry.Name(),
			Path: filepath.Join(s.dir, entry.Name()),
			Size: info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})

	return snapshots, nil
}

func (s *BackupService) Open(ctx context.Context, name string) (*backup.Snapshot, error) {
	// Reject anything that could escape the backup directory.
	if name != filepath.Base(name) || !strings.HasSuffix(name, snapshotExt) {
		return nil, fmt.Errorf("invalid snapshot name %q", name)
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q not found: %w", name, err)
	}

	return &backup.Snapshot{Name: name, Path: path, Size: info.Size()}, nil
}
