package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/service"
)

const (
	maxUploadSize = 10 << 20
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ── Request / Response types ────────────────────────────────────────────────

// ImportAttempt is one row of an attempt import.
type ImportAttempt struct {
	UserID      int64     `json:"user_id" binding:"required" example:"1"`
	Topic       string    `json:"topic" binding:"required" example:"Equations"`
	Correct     *bool     `json:"correct" binding:"required" example:"true"`
	TimeSeconds int64     `json:"time_seconds" example:"20"`
	Question    string    `json:"question" example:"sin(x) = 0.5"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

// input converts the row, rejecting a missing or null correct flag.
func (a ImportAttempt) input() (attempt.Input, error) {
	if a.Correct == nil {
		return attempt.Input{}, fmt.Errorf("%w: correct must be a boolean", attempt.ErrInvalid)
	}
	return attempt.Input{
		UserID:      a.UserID,
		Topic:       a.Topic,
		Correct:     *a.Correct,
		TimeSeconds: a.TimeSeconds,
		Question:    a.Question,
		Timestamp:   a.Timestamp,
	}, nil
}

type ImportResult struct {
	Imported int `json:"imported" example:"42"`
}

var exportHeader = []any{
	"ID", "Name", "Email", "Role",
	"Total Prompts", "Correct Answers", "Wrong Answers",
	"Accuracy (%)", "Avg Time / Question (s)", "Total Time (s)", "Last Topic",
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportUsers downloads every user's stats as a spreadsheet.
// @Summary      Export users (admin)
// @Tags         Admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /api/stats/admin/users/export [get]
func (h *Handler) exportUsers(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.AllUsersStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		h.logger.Error("failed to write export header", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetRowStyle(sheet, 1, 1, bold)
	}

	for i, s := range stats {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			s.ID, s.Name, s.Email, string(s.Role),
			s.TotalPrompts, s.CorrectAnswers, s.WrongAnswers,
			s.Accuracy, s.AvgTimePerQuestion, s.TotalTimeSeconds, s.MostTopic,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			h.logger.Error("failed to write export row", "user_id", s.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to build export")
			return
		}
	}

	filename := fmt.Sprintf("trigtutor-users-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to stream export", "error", err)
	}
}

// importAttempts records a batch of attempts, all or nothing. The body is
// either a JSON array of ImportAttempt or a multipart upload with an .xlsx
// file in the "file" field whose first sheet has the columns
// user_id, topic, correct, time_seconds, question and optionally timestamp.
// @Summary      Import attempts (admin)
// @Tags         Admin
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []ImportAttempt  false  "Attempts as JSON"
// @Param        file  formData  file             false  "Attempts as XLSX"
// @Success      200   {object}  Envelope{data=ImportResult}
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/stats/admin/attempts/import [post]
func (h *Handler) importAttempts(w http.ResponseWriter, r *http.Request) {
	var rows []ImportAttempt
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, err := h.readAttemptSheet(w, r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows = parsed
	} else if !decodeJSON(w, r, &rows) {
		return
	}

	if len(rows) == 0 {
		respondError(w, http.StatusBadRequest, "no attempts to import")
		return
	}

	inputs := make([]attempt.Input, len(rows))
	for i, row := range rows {
		in, err := row.input()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("entry %d: %v", i, err))
			return
		}
		inputs[i] = in
	}

	err := h.recorder.RecordAttemptsBatch(r.Context(), inputs)
	switch {
	case err == nil:
		respondOK(w, ImportResult{Imported: len(inputs)})
	case errors.Is(err, service.ErrInvalidAttempt), errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to import attempts")
	}
}

func (h *Handler) readAttemptSheet(w http.ResponseWriter, r *http.Request) ([]ImportAttempt, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("missing xlsx upload in field \"file\"")
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}
	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", sheets[0], err)
	}

	return parseAttemptRows(sheetRows)
}

// parseAttemptRows converts sheet rows into attempts. The first row is a
// header and blank rows are skipped.
func parseAttemptRows(rows [][]string) ([]ImportAttempt, error) {
	var out []ImportAttempt
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		a, err := parseAttemptRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func parseAttemptRow(row []string) (ImportAttempt, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var a ImportAttempt
	var err error

	if a.UserID, err = strconv.ParseInt(col(0), 10, 64); err != nil {
		return a, fmt.Errorf("invalid user_id %q", col(0))
	}
	a.Topic = col(1)
	correct, err := parseBool(col(2))
	if err != nil {
		return a, err
	}
	a.Correct = &correct
	if s := col(3); s != "" {
		if a.TimeSeconds, err = strconv.ParseInt(s, 10, 64); err != nil {
			return a, fmt.Errorf("invalid time_seconds %q", s)
		}
	}
	a.Question = col(4)
	if s := col(5); s != "" {
		if a.Timestamp, err = parseTimestamp(s); err != nil {
			return a, err
		}
	}
	return a, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid correct value %q", s)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
