// Package jsonstore provides durable, corruption-resilient storage of a
// single JSON document with pre-write backup rotation.
//
// Write strategy: the current file is copied to a timestamped .bak in a
// sibling backup directory, then the new content is written to a temp file
// and renamed over the canonical name. A half-written file is never visible
// under the canonical name. Backup failures are logged and do not abort the
// save; write failures are fatal to the caller.
//
// Read strategy: a missing or empty file yields an empty document. A parse
// failure falls back to the lexicographically greatest backup that parses
// (the timestamp format sorts chronologically); if none does, the store
// degrades to an empty document and logs the data loss.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"lavka/internal/core/apperror"
	"lavka/pkg/logger"
)

const backupTimestampFormat = "20060102_150405"

// Config holds store configuration.
type Config struct {
	// Path is the canonical document file.
	Path string

	// BackupDir holds timestamped pre-write backups.
	BackupDir string

	// RetentionDays is how long backups are kept. Zero means the default
	// of 7 days.
	RetentionDays int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Store reads and writes one JSON document.
type Store struct {
	mu            sync.Mutex
	path          string
	backupDir     string
	retentionDays int
	now           func() time.Time
	lastSaved     time.Time
}

// New creates a Store and its directories.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("jsonstore: path is required")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(filepath.Dir(cfg.Path), "backups")
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 7
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create backup dir: %w", err)
	}

	return &Store{
		path:          cfg.Path,
		backupDir:     cfg.BackupDir,
		retentionDays: cfg.RetentionDays,
		now:           cfg.Now,
	}, nil
}

// Save persists the document. The previous file content, if any, is backed
// up first; the write itself is atomic (temp file + rename).
func (s *Store) Save(ctx context.Context, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backupLocked(ctx)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperror.NewPersistence("marshal", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperror.NewPersistence("create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperror.NewPersistence("write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperror.NewPersistence("close temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperror.NewPersistence("rename", err)
	}

	s.lastSaved = s.now()
	logger.Debug(ctx, "document saved", "file", s.path, "bytes", len(data))
	return nil
}

// Load reads the document into out. Corruption is recovered locally and
// never propagated: the worst case is an empty document plus an error log.
func (s *Store) Load(ctx context.Context, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperror.NewPersistence("read", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	if err := decodeInto([]byte(trimmed), out); err != nil {
		corrupt := apperror.NewCorruptData(filepath.Base(s.path), err)
		logger.Error(ctx, "document parse failed, attempting backup recovery",
			"file", s.path,
			"error", corrupt,
		)
		return s.recoverLocked(ctx, out)
	}

	return nil
}

// LastSaved returns the time of the last successful save.
func (s *Store) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// CleanupOldBackups deletes backups older than the retention window,
// comparing file modification time against now − retention. Safe to call
// from a background task; it shares the store lock with Save.
func (s *Store) CleanupOldBackups(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked(ctx)
}

// backupLocked copies the current file to a timestamped backup name and
// sweeps expired backups. Best effort: failures are logged, never fatal.
func (s *Store) backupLocked(ctx context.Context) {
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn(ctx, "backup skipped, cannot stat document", "file", s.path, "error", err)
		}
		return
	}

	name := fmt.Sprintf("%s.%s.bak", filepath.Base(s.path), s.now().Format(backupTimestampFormat))
	dst := filepath.Join(s.backupDir, name)

	if err := copyFile(s.path, dst); err != nil {
		logger.Warn(ctx, "backup creation failed", "backup", dst, "error", err)
	}

	if err := s.cleanupLocked(ctx); err != nil {
		logger.Warn(ctx, "backup cleanup failed", "error", err)
	}
}

func (s *Store) cleanupLocked(ctx context.Context) error {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return fmt.Errorf("read backup dir: %w", err)
	}

	cutoff := s.now().Add(-time.Duration(s.retentionDays) * 24 * time.Hour)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bak") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.backupDir, entry.Name())
			if err := os.Remove(path); err != nil {
				logger.Warn(ctx, "failed to remove expired backup", "backup", path, "error", err)
				continue
			}
			logger.Info(ctx, "removed expired backup", "backup", entry.Name())
		}
	}

	return nil
}

// recoverLocked tries backups newest first; the timestamped names sort
// lexicographically in chronological order.
func (s *Store) recoverLocked(ctx context.Context, out any) error {
	prefix := filepath.Base(s.path) + "."

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		logger.Error(ctx, "document lost, backup dir unreadable", "file", s.path, "error", err)
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), ".bak") {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))

	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(s.backupDir, name))
		if err != nil {
			continue
		}
		if err := decodeInto(data, out); err != nil {
			logger.Warn(ctx, "backup is also corrupted, trying older one", "backup", name, "error", err)
			continue
		}
		logger.Info(ctx, "document recovered from backup", "backup", name)
		return nil
	}

	// Data-loss event: must reach the operator log, never be silent.
	logger.Error(ctx, "document lost, no usable backup found; starting empty",
		"file", s.path,
		"backups_tried", len(candidates),
	)
	return nil
}

// decodeInto unmarshals into a scratch value and copies it to out only on
// success. json.Unmarshal can partially populate its target before hitting a
// type mismatch; decoding to scratch keeps such torn state out of out, so a
// bad primary file can never bleed keys into the recovered document.
func decodeInto(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
