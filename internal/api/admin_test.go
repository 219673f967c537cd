package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trigtutor/backend/internal/api"
	"github.com/trigtutor/backend/internal/domain/user"
)

func TestImportAttempts_JSON(t *testing.T) {
	e := newTestEnv(t)
	u, _ := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)

	status, env := e.do(t, http.MethodPost, "/api/stats/admin/attempts/import", adminToken, []map[string]any{
		{"user_id": u.ID, "topic": "Equations", "correct": true, "time_seconds": 20},
		{"user_id": u.ID, "topic": "Graphs", "correct": false, "time_seconds": 5, "timestamp": "2024-03-01T10:00:00Z"},
	})
	if status != http.StatusOK {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
	var result api.ImportResult
	decodeData(t, env, &result)
	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}

	got, _ := e.store.GetUser(context.Background(), u.ID)
	if got.TotalPrompts != 2 || got.CorrectAnswers != 1 || got.TotalTimeSeconds != 25 {
		t.Errorf("unexpected counters: %+v", got)
	}
}

func TestImportAttempts_InvalidEntryRollsBack(t *testing.T) {
	e := newTestEnv(t)
	u, _ := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)

	status, env := e.do(t, http.MethodPost, "/api/stats/admin/attempts/import", adminToken, []map[string]any{
		{"user_id": u.ID, "topic": "Equations", "correct": true},
		{"user_id": u.ID, "topic": "Equations", "correct": true, "time_seconds": -1},
		{"user_id": u.ID, "topic": "Graphs", "correct": true},
	})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("expected 400, got %d %+v", status, env)
	}

	got, _ := e.store.GetUser(context.Background(), u.ID)
	if got.TotalPrompts != 0 {
		t.Errorf("expected rollback, got %d prompts", got.TotalPrompts)
	}
}

func TestImportAttempts_NonBooleanCorrect(t *testing.T) {
	e := newTestEnv(t)
	u, _ := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)

	status, _ := e.do(t, http.MethodPost, "/api/stats/admin/attempts/import", adminToken, []map[string]any{
		{"user_id": u.ID, "topic": "Equations", "correct": "yes"},
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestImportAttempts_MissingCorrect(t *testing.T) {
	e := newTestEnv(t)
	u, _ := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)

	bodies := map[string][]map[string]any{
		"missing": {{"user_id": u.ID, "topic": "Equations"}},
		"null":    {{"user_id": u.ID, "topic": "Equations", "correct": nil}},
		"later entry": {
			{"user_id": u.ID, "topic": "Equations", "correct": true},
			{"user_id": u.ID, "topic": "Graphs"},
		},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			status, env := e.do(t, http.MethodPost, "/api/stats/admin/attempts/import", adminToken, body)
			if status != http.StatusBadRequest || env.Success {
				t.Fatalf("expected 400, got %d %+v", status, env)
			}
		})
	}

	got, _ := e.store.GetUser(context.Background(), u.ID)
	if got.TotalPrompts != 0 || got.WrongAnswers != 0 {
		t.Errorf("expected nothing recorded, got %+v", got)
	}
}

func TestImportAttempts_XLSX(t *testing.T) {
	e := newTestEnv(t)
	u, _ := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"user_id", "topic", "correct", "time_seconds", "question"},
		{u.ID, "Equations", "true", 20, "sin(x)=0"},
		{u.ID, "Graphs", "0", 10, "plot cos"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	var xlsx bytes.Buffer
	if err := f.Write(&xlsx); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "attempts.xlsx")
	fw.Write(xlsx.Bytes())
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/api/stats/admin/attempts/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}

	got, _ := e.store.GetUser(context.Background(), u.ID)
	if got.TotalPrompts != 2 || got.CorrectAnswers != 1 || got.WrongAnswers != 1 || got.TotalTimeSeconds != 30 {
		t.Errorf("unexpected counters: %+v", got)
	}
}

func TestExportUsers_XLSX(t *testing.T) {
	e := newTestEnv(t)
	u, token := e.newUser(t, "ada", user.RoleStudent)
	_, adminToken := e.newUser(t, "root", user.RoleAdmin)
	e.do(t, http.MethodPost, "/api/solve", token, map[string]any{"question": "sin(30)", "time_seconds": 8})

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/api/stats/admin/users/export", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 users, got %d rows", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Email" {
		t.Errorf("unexpected header %v", rows[0])
	}
	// Busiest user first.
	if rows[1][2] != u.Email || rows[1][4] != "1" {
		t.Errorf("unexpected first row %v", rows[1])
	}
}
