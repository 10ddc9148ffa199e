package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// sourceStore remembers every table the user has bound so the picker can
// offer them again when the host listing is unavailable.
type sourceStore struct {
	db   *sql.DB
	path string
}

func openSourceStore() (*sourceStore, error) {
	dir := resolveConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return openSourceStoreAt(filepath.Join(dir, "sources.sqlite"))
}

func openSourceStoreAt(sqlitePath string) (*sourceStore, error) {
	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}
	if err := migrateSourceStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sourceStore{db: db, path: sqlitePath}, nil
}

func migrateSourceStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS sources (
			app_token TEXT NOT NULL,
			table_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			last_used TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (app_token, table_id)
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("source store migration failed: %w", err)
		}
	}
	return nil
}

func (s *sourceStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Touch records a binding, bumping its recency.
func (s *sourceStore) Touch(table tableDescriptor) error {
	if s == nil || s.db == nil {
		return nil
	}
	appToken := strings.TrimSpace(table.AppToken)
	tableID := strings.TrimSpace(table.TableID)
	if appToken == "" || tableID == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO sources (app_token, table_id, name, last_used)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(app_token, table_id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE name END,
			last_used = CURRENT_TIMESTAMP`,
		appToken, tableID, strings.TrimSpace(table.TableName))
	return err
}

func (s *sourceStore) Recent(limit int) ([]tableDescriptor, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`SELECT app_token, table_id, COALESCE(NULLIF(name, ''), table_id)
		FROM sources ORDER BY last_used DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []tableDescriptor
	for rows.Next() {
		var t tableDescriptor
		if err := rows.Scan(&t.AppToken, &t.TableID, &t.TableName); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (s *sourceStore) Remove(appToken, tableID string) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM sources WHERE app_token = ? AND table_id = ?`, appToken, tableID)
	return err
}

// mergeTables appends recent sources that the live listing did not return.
func mergeTables(live, recent []tableDescriptor) []tableDescriptor {
	seen := make(map[string]struct{}, len(live))
	for _, t := range live {
		seen[t.AppToken+"|"+t.TableID] = struct{}{}
	}
	merged := append([]tableDescriptor(nil), live...)
	for _, t := range recent {
		if _, ok := seen[t.AppToken+"|"+t.TableID]; ok {
			continue
		}
		merged = append(merged, t)
	}
	return merged
}
