package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"creative-eval-be/internal/constant"
	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/pkg/logger"
	"creative-eval-be/internal/pkg/serverutils"
	"creative-eval-be/pkg/eval"
	"creative-eval-be/pkg/events"
	"creative-eval-be/pkg/extract"
)

// Router dispatches an evaluation to an agent. Satisfied by *eval.Router.
type Router interface {
	Route(content, prompt, rubric string) *eval.Result
}

type IEvaluationService interface {
	Evaluate(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type evaluationService struct {
	router         Router
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewEvaluationService(router Router, eventPublisher events.Publisher, log logger.ILogger) IEvaluationService {
	return &evaluationService{
		router:         router,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Evaluate assembles content from the provided sources, resolves the
// rubric, routes to an agent and returns its result verbatim.
func (s *evaluationService) Evaluate(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	// 1. Collect script content from all sources, raw text first.
	var contentParts []string

	if trimmed := strings.TrimSpace(req.TextInput); trimmed != "" {
		contentParts = append(contentParts, trimmed)
	}

	if req.ScriptFile != nil {
		extracted, err := s.extractFile(req.ScriptFile, sourceScript)
		if err != nil {
			return nil, err
		}
		if extracted != "" {
			contentParts = append(contentParts, extracted)
		}
	}

	content := strings.Join(contentParts, "\n\n")
	if strings.TrimSpace(content) == "" {
		return nil, serverutils.NewValidationError(
			"No script content provided. Please provide text_input or upload a script_file.",
		)
	}

	// 2. Resolve the rubric: user-provided file or the built-in default.
	rubric := constant.DefaultRubric
	if req.RubricFile != nil {
		extracted, err := s.extractFile(req.RubricFile, sourceRubric)
		if err != nil {
			return nil, err
		}
		rubric = extracted
	}

	// 3. Route to an agent. Agents are contractually total, but a fault in
	// the routing/scoring layer must surface as a generic server error,
	// never leak internals or get silently swallowed.
	result, err := s.route(content, req.Prompt, rubric)
	if err != nil {
		s.logger.Error("Evaluation", "Routing failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewProcessingError(err)
	}

	s.logger.Info("Evaluation", "Query evaluated", map[string]interface{}{
		"agent_used":     result.AgentUsed,
		"score":          result.Score,
		"content_length": len(content),
	})
	if err := s.eventPublisher.Publish(ctx, events.NewEvaluationCompletedEvent(result.AgentUsed, result.Score, len(content))); err != nil {
		s.logger.Warn("Evaluation", "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &dto.QueryResponse{
		AgentUsed: result.AgentUsed,
		Summary:   result.Summary,
		Score:     result.Score,
		Details:   result.Details,
	}, nil
}

func (s *evaluationService) route(content, prompt, rubric string) (result *eval.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()
	return s.router.Route(content, prompt, rubric), nil
}

// Upload sources, used to name the rejected file in format errors.
type uploadSource int

const (
	sourceScript uploadSource = iota
	sourceRubric
)

// extractFile reads an uploaded document and returns its text. Only .txt
// and .pdf are accepted.
func (s *evaluationService) extractFile(header *multipart.FileHeader, source uploadSource) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))

	switch ext {
	case "txt", "pdf":
	default:
		if source == sourceRubric {
			return "", serverutils.NewUnsupportedRubricFormatError(ext)
		}
		return "", serverutils.NewUnsupportedFormatError(ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", serverutils.NewExtractionError(header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", serverutils.NewExtractionError(header.Filename, err)
	}

	if ext == "pdf" {
		text, err := extract.PDF(data)
		if err != nil {
			return "", serverutils.NewExtractionError(header.Filename, err)
		}
		return text, nil
	}
	return strings.TrimSpace(extract.Text(data)), nil
}
