package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"usmca/internal"
	"usmca/internal/bom"
	"usmca/internal/logging"
	"usmca/internal/report"
	"usmca/internal/rvc"
)

type uploadResponse struct {
	UploadID  string                     `json:"uploadId"`
	Filename  string                     `json:"filename"`
	SheetName string                     `json:"sheetName"`
	RowCount  int                        `json:"rowCount"`
	Parts     []internal.PartNumberEntry `json:"parts"`
}

// handleUpload accepts a multipart BOM workbook, validates its header row
// and returns the part-number catalog for selection.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	upload, parts, err := s.service.StoreUpload(header.Filename, data)
	if err != nil {
		var missing *bom.MissingColumnsError
		if errors.As(err, &missing) {
			writeError(w, http.StatusUnprocessableEntity, missing.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("upload stored", "upload_id", upload.ID, "filename", upload.Filename, "rows", upload.RowCount, "parts", upload.PartCount)
	writeJSON(w, http.StatusCreated, uploadResponse{
		UploadID:  upload.ID,
		Filename:  upload.Filename,
		SheetName: upload.SheetName,
		RowCount:  upload.RowCount,
		Parts:     parts,
	})
}

func (s *Server) handleParts(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")
	parts, err := s.service.Parts(uploadID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploadId": uploadID, "parts": parts})
}

type analyzeRequest struct {
	PartNumber            string  `json:"partNumber"`
	TotalManufacturedCost float64 `json:"totalManufacturedCost"`
}

type analyzeResponse struct {
	AnalysisID int                      `json:"analysisId"`
	PartNumber string                   `json:"partNumber"`
	Result     *internal.AnalysisResult `json:"result"`
}

// handleAnalyze runs the RVC calculation for one part of a stored upload.
// Invalid declared costs come back as 422; the caller re-prompts.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	uploadID := chi.URLParam(r, "uploadID")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PartNumber == "" {
		writeError(w, http.StatusBadRequest, "partNumber is required")
		return
	}

	row, result, err := s.service.Analyze(uploadID, req.PartNumber, req.TotalManufacturedCost)
	if err != nil {
		var costErr *rvc.InvalidCostError
		if errors.As(err, &costErr) {
			writeError(w, http.StatusUnprocessableEntity, costErr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("analysis complete", "upload_id", uploadID, "part", row.PartNumber, "rvc", result.RVC, "qualifies", result.Qualifies)
	writeJSON(w, http.StatusOK, analyzeResponse{AnalysisID: row.ID, PartNumber: row.PartNumber, Result: result})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, result, err := s.service.Analysis(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{AnalysisID: row.ID, PartNumber: row.PartNumber, Result: result})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report.GenerateXLSX)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "pdf", "application/pdf", report.GeneratePDF)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, generate func(report.Report) ([]byte, error)) {
	id, err := analysisID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := s.service.Report(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	data, err := generate(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := report.BaseName(rep.PartNumber, rep.Date) + "." + ext
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func analysisID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "analysisID"))
	if err != nil {
		return 0, fmt.Errorf("invalid analysis id")
	}
	return id, nil
}
