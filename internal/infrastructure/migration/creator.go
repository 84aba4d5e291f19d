package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const migrationUpTemplate = `-- Migration: %s
-- Created: %s

`

const migrationDownTemplate = `-- Migration: %s (rollback)
-- Created: %s

`

// MigrationFile describes a created up/down migration pair
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down migration file pair. The version
// is a timestamp so files sort in creation order.
func CreateMigration(migrationsDir, name string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	timestamp := now.Format(time.RFC3339)

	safeName := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if safeName == "" {
		return nil, fmt.Errorf("migration name cannot be empty")
	}

	upPath := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.up.sql", version, safeName))
	downPath := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.down.sql", version, safeName))

	if err := os.WriteFile(upPath, []byte(fmt.Sprintf(migrationUpTemplate, safeName, timestamp)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(fmt.Sprintf(migrationDownTemplate, safeName, timestamp)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}

	return &MigrationFile{
		Version:  version,
		Name:     safeName,
		UpPath:   upPath,
		DownPath: downPath,
	}, nil
}

// ListMigrations returns the up migration file names in version order
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
