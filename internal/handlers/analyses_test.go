package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/legallenshq/legal-lens-api/internal/models"
	"github.com/legallenshq/legal-lens-api/internal/router"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

type stubService struct {
	analyses map[string]*models.StructuredAnalysis
}

func newStubService() *stubService {
	return &stubService{analyses: make(map[string]*models.StructuredAnalysis)}
}

func (s *stubService) AnalyzeDocument(_ context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if req.ContentType != "application/pdf" &&
		req.ContentType != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		return nil, utils.NewBadRequestError("Unsupported file type")
	}
	id := utils.GenerateID()
	s.analyses[id] = &models.StructuredAnalysis{
		Summary:      "A short contract.",
		RiskyClauses: []models.Clause{},
		Explanations: "No material risks.",
	}
	return &models.AnalyzeResponse{DocID: id}, nil
}

func (s *stubService) GetAnalysis(_ context.Context, id string) (*models.StructuredAnalysis, error) {
	analysis, ok := s.analyses[id]
	if !ok {
		return nil, utils.NewNotFoundError("Analysis not found")
	}
	return analysis, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubService) {
	t.Helper()
	svc := newStubService()
	srv := httptest.NewServer(router.NewRouter(svc, utils.NewNopLogger()))
	t.Cleanup(srv.Close)
	return srv, svc
}

func multipartUpload(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write form part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return &body, writer.FormDataContentType()
}

func TestAnalyzeThenFetch(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "document", "contract.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	resp, err := http.Post(srv.URL+"/api/v1/documents/analyze", contentType, body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var analyzeResp models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&analyzeResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if analyzeResp.DocID == "" {
		t.Fatal("expected non-empty doc_id")
	}

	fetchResp, err := http.Get(srv.URL + "/api/v1/analyses/" + analyzeResp.DocID)
	if err != nil {
		t.Fatalf("fetch request failed: %v", err)
	}
	defer fetchResp.Body.Close()

	if fetchResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", fetchResp.StatusCode)
	}

	var analysis models.StructuredAnalysis
	if err := json.NewDecoder(fetchResp.Body).Decode(&analysis); err != nil {
		t.Fatalf("failed to decode analysis: %v", err)
	}
	if analysis.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if analysis.RiskyClauses == nil {
		t.Error("risky_clauses must be present, possibly empty")
	}
}

func TestAnalyzeNoFileProvided(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("note", "no file here"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/v1/documents/analyze", writer.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var errResp map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if _, hasID := errResp["doc_id"]; hasID {
		t.Error("error response must not contain doc_id")
	}
}

func TestAnalyzeUnsupportedType(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "document", "notes.txt", "text/plain", []byte("plain text"))
	resp, err := http.Post(srv.URL+"/api/v1/documents/analyze", contentType, body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAnalyzeEmptyFile(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "document", "empty.pdf", "application/pdf", nil)
	resp, err := http.Post(srv.URL+"/api/v1/documents/analyze", contentType, body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFetchUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/analyses/does-not-exist")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
