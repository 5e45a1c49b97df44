package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/legallenshq/legal-lens-api/internal/analyzer"
	"github.com/legallenshq/legal-lens-api/internal/config"
	"github.com/legallenshq/legal-lens-api/internal/extractor"
	"github.com/legallenshq/legal-lens-api/internal/models"
	"github.com/legallenshq/legal-lens-api/internal/normalizer"
	"github.com/legallenshq/legal-lens-api/internal/storage"
	"github.com/legallenshq/legal-lens-api/internal/store"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

type AnalysisService interface {
	AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	GetAnalysis(ctx context.Context, id string) (*models.StructuredAnalysis, error)
}

type analysisService struct {
	store    store.Store
	analyzer analyzer.Analyzer
	archive  storage.Storage // nil when archival is disabled
	cfg      *config.Config
	logger   *utils.Logger
}

// NewService wires the analysis pipeline. The archive may be nil; every other
// collaborator is required.
func NewService(resultStore store.Store, llmAnalyzer analyzer.Analyzer, archive storage.Storage, cfg *config.Config, logger *utils.Logger) AnalysisService {
	return &analysisService{
		store:    resultStore,
		analyzer: llmAnalyzer,
		archive:  archive,
		cfg:      cfg,
		logger:   logger,
	}
}

// AnalyzeDocument runs the full pipeline: extract text, call the model,
// normalize the reply, store the result. The identifier is returned only after
// the analysis is fully validated and stored.
func (s *analysisService) AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	var extractedText string
	var err error

	switch {
	case req.ContentType == "application/pdf":
		extractedText, err = extractor.ExtractPDF(req.File)
	case isDOCXContentType(req.ContentType):
		extractedText, err = extractor.ExtractDOCX(req.File)
	default:
		s.logger.Warn("Unsupported content type", "content_type", req.ContentType, "filename", req.Filename)
		return nil, utils.NewBadRequestError(fmt.Sprintf("Unsupported file type '%s'. Only PDF and DOCX are allowed", req.ContentType))
	}

	if err != nil {
		s.logger.Error("Failed to extract text", "error", err, "content_type", req.ContentType, "filename", req.Filename)
		return nil, utils.NewBadRequestError("No text could be extracted from the document. The file may be empty or corrupted")
	}

	if strings.TrimSpace(extractedText) == "" {
		s.logger.Warn("No text extracted from document", "filename", req.Filename)
		return nil, utils.NewBadRequestError("No text could be extracted from the document. The file may be empty or corrupted")
	}

	// Truncation is silent: staying within the model's input bound beats
	// completeness.
	promptText := extractedText
	if len(promptText) > s.cfg.MaxPromptChars {
		promptText = promptText[:s.cfg.MaxPromptChars]
	}

	s.logger.Info("Starting document analysis",
		"filename", req.Filename,
		"text_length", len(extractedText),
		"prompt_length", len(promptText))

	reply, err := s.analyzer.Analyze(ctx, promptText)
	if err != nil {
		s.logger.Error("Model call failed", "error", err, "filename", req.Filename)
		return nil, utils.NewInternalError("Failed to analyze document")
	}

	analysis, err := normalizer.Normalize(reply)
	if err != nil {
		// The raw reply stays in the logs; the client gets a generic message.
		s.logger.Error("Failed to normalize model reply",
			"error", err,
			"filename", req.Filename,
			"raw_reply", reply)
		return nil, utils.NewInternalError("Failed to parse analysis result")
	}

	docID, err := s.store.Put(ctx, analysis)
	if err != nil {
		s.logger.Error("Failed to store analysis", "error", err, "filename", req.Filename)
		return nil, utils.NewInternalError("Failed to save analysis result")
	}

	if s.archive != nil {
		key := fmt.Sprintf("documents/%s/%s", docID, req.Filename)
		if err := s.archive.Upload(ctx, key, req.File, req.ContentType); err != nil {
			s.logger.Warn("Failed to archive original document", "error", err, "s3_key", key)
		}
	}

	s.logger.Info("Document analyzed successfully",
		"doc_id", docID,
		"filename", req.Filename,
		"clause_count", len(analysis.RiskyClauses))

	return &models.AnalyzeResponse{DocID: docID}, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string) (*models.StructuredAnalysis, error) {
	analysis, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.NewNotFoundError("Analysis not found")
		}
		s.logger.Error("Failed to get analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}

	return analysis, nil
}

// isDOCXContentType checks if the content type is a DOCX file
// Handles various DOCX MIME type variations
func isDOCXContentType(contentType string) bool {
	docxTypes := []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx",
		"application/x-docx",
	}

	for _, docxType := range docxTypes {
		if contentType == docxType {
			return true
		}
	}

	return false
}
