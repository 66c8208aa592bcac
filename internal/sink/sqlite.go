// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

// SQLite writes records into a records table, one row per record. Scalar
// fields map to TEXT columns; list fields are stored as JSON arrays. NULL
// marks fields the record did not carry.
type SQLite struct {
	db      *sql.DB
	insert  *sql.Stmt
	columns []string
}

// NewSQLite opens or creates the database at path and prepares the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	columns := append([]string{"type", "key", "mdate"}, dblp.Features()...)

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q TEXT", c)
	}
	quoted[0] = `"type" TEXT NOT NULL`

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		%s
	)`, strings.Join(quoted, ",\n\t\t"))
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		names[i] = fmt.Sprintf("%q", c)
		marks[i] = "?"
	}
	insert, err := db.Prepare(fmt.Sprintf(
		`INSERT INTO records (%s) VALUES (%s)`,
		strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return &SQLite{db: db, insert: insert, columns: columns}, nil
}

// Write inserts one record.
func (s *SQLite) Write(rec dblp.Record) error {
	args := make([]any, len(s.columns))
	for i, c := range s.columns {
		switch v := rec[c].(type) {
		case string:
			args[i] = v
		case []string:
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding field %q: %w", c, err)
			}
			args[i] = string(data)
		default:
			args[i] = nil
		}
	}
	if _, err := s.insert.Exec(args...); err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Close releases the prepared statement and the database.
func (s *SQLite) Close() error {
	s.insert.Close()
	return s.db.Close()
}
