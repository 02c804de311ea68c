package store

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaskb/internal/fileutil"
	"github.com/erraggy/oaskb/oaserrors"
)

// BackupMetadata is the JSON side-car written next to every backup file,
// mirrored to YAML for operator-friendly inspection. Grounded on
// fredcamaral-mcp-alfarrabio's persistence.BackupMetadata and on
// original_source/storage/backup.py's checkpoint/verify sequence.
type BackupMetadata struct {
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	SourcePath  string    `json:"source_path" yaml:"source_path"`
	BackupPath  string    `json:"backup_path" yaml:"backup_path"`
	SizeBytes   int64     `json:"size_bytes" yaml:"size_bytes"`
	Checksum    string    `json:"checksum" yaml:"checksum"` // sha256 of the source database bytes, taken before any compression
	Compressed  bool      `json:"compressed" yaml:"compressed"`
}

// BackupOptions configures CreateBackup.
type BackupOptions struct {
	// Dir is the directory backup files and side-cars are written to.
	Dir string
	// Gzip compresses the copied database file when true.
	Gzip bool
}

// CreateBackup checkpoints the WAL, copies the database file, and writes a
// JSON+YAML metadata side-car. The WAL checkpoint ensures the copy reflects
// all committed transactions without requiring exclusive access.
func CreateBackup(ctx context.Context, d *DB, sourcePath string, opts BackupOptions) (*BackupMetadata, error) {
	if _, err := d.sql.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "wal_checkpoint", Cause: err}
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	base := filepath.Base(sourcePath)
	backupName := fmt.Sprintf("%s.%s.bak", base, timestamp)
	if opts.Gzip {
		backupName += ".gz"
	}
	backupPath := filepath.Join(opts.Dir, backupName)

	size, sum, err := copyWithChecksum(sourcePath, backupPath, opts.Gzip)
	if err != nil {
		return nil, err
	}

	meta := &BackupMetadata{
		CreatedAt:  time.Now().UTC(),
		SourcePath: sourcePath,
		BackupPath: backupPath,
		SizeBytes:  size,
		Checksum:   sum,
		Compressed: opts.Gzip,
	}
	if err := writeMetadataSideCar(backupPath, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func copyWithChecksum(srcPath, dstPath string, gzipIt bool) (int64, string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, "", &oaserrors.FileNotFoundError{Path: srcPath, Cause: err}
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, "", fmt.Errorf("creating backup file: %w", err)
	}
	defer dst.Close()

	hasher := sha256.New()
	var written int64
	if gzipIt {
		gw := gzip.NewWriter(dst)
		n, err := io.Copy(io.MultiWriter(gw, hasher), src)
		if err != nil {
			return 0, "", fmt.Errorf("writing compressed backup: %w", err)
		}
		if err := gw.Close(); err != nil {
			return 0, "", fmt.Errorf("closing gzip writer: %w", err)
		}
		written = n
	} else {
		n, err := io.Copy(io.MultiWriter(dst, hasher), src)
		if err != nil {
			return 0, "", fmt.Errorf("writing backup: %w", err)
		}
		written = n
	}
	return written, hex.EncodeToString(hasher.Sum(nil)), nil
}

func writeMetadataSideCar(backupPath string, meta *BackupMetadata) error {
	jsonBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling backup metadata: %w", err)
	}
	if err := os.WriteFile(backupPath+".json", jsonBytes, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing backup metadata json: %w", err)
	}

	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling backup metadata yaml mirror: %w", err)
	}
	if err := os.WriteFile(backupPath+".yaml", yamlBytes, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing backup metadata yaml mirror: %w", err)
	}
	return nil
}

// RestoreOptions configures Restore.
type RestoreOptions struct {
	// VerifyAfterRestore, when true, reopens the restored database and runs
	// CheckIntegrity, reverting to the pre-restore snapshot on failure.
	VerifyAfterRestore bool
}

// Restore replaces the database file at destPath with the contents of
// backupPath (decompressing if the side-car reports Compressed), taking a
// pre-restore snapshot first so a failed post-restore health check can
// revert automatically.
func Restore(ctx context.Context, backupPath, destPath string, opts RestoreOptions) error {
	meta, err := readMetadataSideCar(backupPath)
	if err != nil {
		return err
	}

	snapshotPath := destPath + ".pre-restore.tmp"
	if _, err := os.Stat(destPath); err == nil {
		if _, _, err := copyWithChecksum(destPath, snapshotPath, false); err != nil {
			return fmt.Errorf("snapshotting current database before restore: %w", err)
		}
		defer os.Remove(snapshotPath)
	}

	if err := writeRestoredFile(backupPath, destPath, meta.Compressed); err != nil {
		return err
	}

	if !opts.VerifyAfterRestore {
		return nil
	}

	cfg := DefaultConfig(destPath)
	d, err := Open(ctx, cfg)
	if err != nil {
		return revertRestore(snapshotPath, destPath, fmt.Errorf("reopening restored database: %w", err))
	}
	defer d.Close()

	if err := CheckIntegrity(ctx, d); err != nil {
		return revertRestore(snapshotPath, destPath, fmt.Errorf("post-restore integrity check failed: %w", err))
	}
	return nil
}

func revertRestore(snapshotPath, destPath string, cause error) error {
	if _, err := os.Stat(snapshotPath); err == nil {
		if _, _, copyErr := copyWithChecksum(snapshotPath, destPath, false); copyErr != nil {
			return fmt.Errorf("%w (revert also failed: %v)", cause, copyErr)
		}
	}
	return cause
}

func writeRestoredFile(backupPath, destPath string, compressed bool) error {
	src, err := os.Open(backupPath)
	if err != nil {
		return &oaserrors.FileNotFoundError{Path: backupPath, Cause: err}
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating restore destination: %w", err)
	}
	defer dst.Close()

	if compressed {
		gr, err := gzip.NewReader(src)
		if err != nil {
			return fmt.Errorf("opening gzip backup: %w", err)
		}
		defer gr.Close()
		if _, err := io.Copy(dst, gr); err != nil {
			return fmt.Errorf("decompressing backup: %w", err)
		}
		return nil
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying backup: %w", err)
	}
	return nil
}

func readMetadataSideCar(backupPath string) (*BackupMetadata, error) {
	data, err := os.ReadFile(backupPath + ".json")
	if err != nil {
		return nil, &oaserrors.FileNotFoundError{Path: backupPath + ".json", Cause: err}
	}
	var meta BackupMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing backup metadata: %w", err)
	}
	return &meta, nil
}

// RetentionPolicy prunes old backups in dir, keeping at most NewestCount
// backups and/or discarding any older than MaxAge, whichever is stricter.
// Zero values disable that criterion.
type RetentionPolicy struct {
	NewestCount int
	MaxAge      time.Duration
}

// ApplyRetention removes backup files (and their side-cars) in dir that fall
// outside policy, returning the paths it removed.
func ApplyRetention(dir string, policy RetentionPolicy) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	type backupFile struct {
		path    string
		modTime time.Time
	}
	var backups []backupFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) == ".json" || filepath.Ext(name) == ".yaml" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].modTime.After(backups[j].modTime) })

	var removed []string
	now := time.Now()
	for i, b := range backups {
		keep := true
		if policy.NewestCount > 0 && i >= policy.NewestCount {
			keep = false
		}
		if policy.MaxAge > 0 && now.Sub(b.modTime) > policy.MaxAge {
			keep = false
		}
		if keep {
			continue
		}
		for _, suffix := range []string{"", ".json", ".yaml"} {
			p := b.path + suffix
			if suffix == "" {
				p = b.path
			}
			if err := os.Remove(p); err == nil {
				removed = append(removed, p)
			}
		}
	}
	return removed, nil
}
