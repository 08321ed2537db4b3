package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"usmca/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS uploads (
  id TEXT PRIMARY KEY,
  filename TEXT NOT NULL,
  sheetName TEXT NOT NULL,
  rowCount INTEGER NOT NULL,
  partCount INTEGER NOT NULL,
  rawRef TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'parsed',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS analyses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uploadId TEXT NOT NULL,
  partNumber TEXT NOT NULL,
  description TEXT NOT NULL,
  hts TEXT NOT NULL,
  tmc REAL NOT NULL,
  rvc REAL NOT NULL,
  qualifies TEXT NOT NULL,
  resultJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(uploadId) REFERENCES uploads(id)
);
CREATE INDEX IF NOT EXISTS idx_analyses_uploadId ON analyses(uploadId);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertUpload(row internal.UploadRow) error {
	_, err := d.conn.Exec(`
INSERT INTO uploads (id, filename, sheetName, rowCount, partCount, rawRef, status)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, row.ID, row.Filename, row.SheetName, row.RowCount, row.PartCount, row.RawRef, row.Status)
	return err
}

func (d *DB) GetUpload(id string) (*internal.UploadRow, error) {
	var row internal.UploadRow
	err := d.conn.QueryRow(`
SELECT id, filename, sheetName, rowCount, partCount, rawRef, status, createdAt
FROM uploads WHERE id = ?
`, id).Scan(&row.ID, &row.Filename, &row.SheetName, &row.RowCount, &row.PartCount, &row.RawRef, &row.Status, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustUpload(id string) (internal.UploadRow, error) {
	row, err := d.GetUpload(id)
	if err != nil {
		return internal.UploadRow{}, err
	}
	if row == nil {
		return internal.UploadRow{}, fmt.Errorf("upload not found: %s", id)
	}
	return *row, nil
}

func (d *DB) ListUploads(limit int) ([]internal.UploadRow, error) {
	rows, err := d.conn.Query(`
SELECT id, filename, sheetName, rowCount, partCount, rawRef, status, createdAt
FROM uploads ORDER BY createdAt DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.UploadRow
	for rows.Next() {
		var row internal.UploadRow
		if err := rows.Scan(&row.ID, &row.Filename, &row.SheetName, &row.RowCount, &row.PartCount, &row.RawRef, &row.Status, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateUploadStatus(id, status string) error {
	_, err := d.conn.Exec(`UPDATE uploads SET status = ? WHERE id = ?`, status, id)
	return err
}

func (d *DB) InsertAnalysis(row internal.AnalysisRow) (int64, error) {
	result, err := d.conn.Exec(`
INSERT INTO analyses (uploadId, partNumber, description, hts, tmc, rvc, qualifies, resultJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, row.UploadID, row.PartNumber, row.Description, row.HTS, row.TMC, row.RVC, row.Qualifies, row.ResultJSON)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) GetAnalysis(id int) (*internal.AnalysisRow, error) {
	var row internal.AnalysisRow
	err := d.conn.QueryRow(`
SELECT id, uploadId, partNumber, description, hts, tmc, rvc, qualifies, resultJson, createdAt
FROM analyses WHERE id = ?
`, id).Scan(&row.ID, &row.UploadID, &row.PartNumber, &row.Description, &row.HTS, &row.TMC, &row.RVC, &row.Qualifies, &row.ResultJSON, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) ListAnalysesByUpload(uploadID string) ([]internal.AnalysisRow, error) {
	rows, err := d.conn.Query(`
SELECT id, uploadId, partNumber, description, hts, tmc, rvc, qualifies, resultJson, createdAt
FROM analyses WHERE uploadId = ? ORDER BY createdAt DESC, id DESC
`, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.AnalysisRow
	for rows.Next() {
		var row internal.AnalysisRow
		if err := rows.Scan(&row.ID, &row.UploadID, &row.PartNumber, &row.Description, &row.HTS, &row.TMC, &row.RVC, &row.Qualifies, &row.ResultJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
