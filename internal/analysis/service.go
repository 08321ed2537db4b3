// Package analysis coordinates workbook ingestion, the RVC engine and
// persistence for the upload/analyze workflow.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"usmca/internal"
	"usmca/internal/bom"
	"usmca/internal/config"
	"usmca/internal/report"
	"usmca/internal/rvc"
	"usmca/internal/storage"
	"usmca/internal/util"
)

type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// StoreUpload validates a workbook, keeps its bytes on disk and records the
// upload. The part-number catalog is returned for selection.
func (s *Service) StoreUpload(filename string, data []byte) (internal.UploadRow, []internal.PartNumberEntry, error) {
	ds, err := bom.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return internal.UploadRow{}, nil, err
	}
	parts := bom.ListParts(ds.Rows, ds.Columns)

	id := uuid.NewString()
	rawRef := filepath.Join(s.cfg.UploadDir, id+".xlsx")
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return internal.UploadRow{}, nil, err
	}
	if err := os.WriteFile(rawRef, data, 0o644); err != nil {
		return internal.UploadRow{}, nil, err
	}

	row := internal.UploadRow{
		ID:        id,
		Filename:  filename,
		SheetName: ds.Sheet,
		RowCount:  len(ds.Rows) - 1,
		PartCount: len(parts),
		RawRef:    rawRef,
		Status:    "parsed",
	}
	if err := s.db.InsertUpload(row); err != nil {
		return internal.UploadRow{}, nil, err
	}

	return row, parts, nil
}

// Parts re-reads a stored upload and returns its part-number catalog.
func (s *Service) Parts(uploadID string) ([]internal.PartNumberEntry, error) {
	ds, _, err := s.dataset(uploadID)
	if err != nil {
		return nil, err
	}
	return bom.ListParts(ds.Rows, ds.Columns), nil
}

// Analyze runs the RVC calculation for one part of a stored upload and
// persists the outcome. Row-level extraction warnings are folded into the
// result's warning list ahead of the engine's own.
func (s *Service) Analyze(uploadID, partNumber string, totalManufacturedCost float64) (internal.AnalysisRow, *internal.AnalysisResult, error) {
	ds, upload, err := s.dataset(uploadID)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}

	entry, err := findPart(bom.ListParts(ds.Rows, ds.Columns), partNumber)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}

	components, extractionWarnings := bom.ExtractComponents(ds.Rows, ds.Columns, partNumber)
	result, err := rvc.Analyze(components, totalManufacturedCost, entry.HTS)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}
	result.Warnings = append(extractionWarnings, result.Warnings...)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}

	row := internal.AnalysisRow{
		UploadID:    upload.ID,
		PartNumber:  entry.PartNumber,
		Description: entry.Description,
		HTS:         entry.HTS,
		TMC:         totalManufacturedCost,
		RVC:         result.RVC,
		Qualifies:   string(result.Qualifies),
		ResultJSON:  string(resultJSON),
	}
	id, err := s.db.InsertAnalysis(row)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}
	row.ID = int(id)

	if err := s.db.UpdateUploadStatus(upload.ID, "analyzed"); err != nil {
		return internal.AnalysisRow{}, nil, err
	}

	return row, result, nil
}

// Analysis loads a persisted analysis together with its decoded result.
func (s *Service) Analysis(id int) (internal.AnalysisRow, *internal.AnalysisResult, error) {
	row, err := s.db.GetAnalysis(id)
	if err != nil {
		return internal.AnalysisRow{}, nil, err
	}
	if row == nil {
		return internal.AnalysisRow{}, nil, fmt.Errorf("analysis not found: %d", id)
	}

	var result internal.AnalysisResult
	if err := json.Unmarshal([]byte(row.ResultJSON), &result); err != nil {
		return internal.AnalysisRow{}, nil, fmt.Errorf("decode analysis %d: %w", id, err)
	}
	return *row, &result, nil
}

// Report assembles the export input for a persisted analysis, dated at
// export time.
func (s *Service) Report(id int) (report.Report, error) {
	row, result, err := s.Analysis(id)
	if err != nil {
		return report.Report{}, err
	}
	return report.Report{
		PartNumber:  row.PartNumber,
		Description: row.Description,
		HTS:         row.HTS,
		Date:        util.CurrentDate(),
		Result:      result,
	}, nil
}

func (s *Service) dataset(uploadID string) (*bom.Dataset, internal.UploadRow, error) {
	upload, err := s.db.MustUpload(uploadID)
	if err != nil {
		return nil, internal.UploadRow{}, err
	}
	raw, err := os.ReadFile(upload.RawRef)
	if err != nil {
		return nil, internal.UploadRow{}, err
	}
	ds, err := bom.ParseWorkbook(bytes.NewReader(raw))
	if err != nil {
		return nil, internal.UploadRow{}, err
	}
	return ds, upload, nil
}

func findPart(parts []internal.PartNumberEntry, partNumber string) (internal.PartNumberEntry, error) {
	for _, p := range parts {
		if p.PartNumber == partNumber {
			return p, nil
		}
	}
	return internal.PartNumberEntry{}, fmt.Errorf("part number not found: %s", partNumber)
}
