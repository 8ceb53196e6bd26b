package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"creative-eval-be/internal/constant"
	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/pkg/logger"
	"creative-eval-be/internal/pkg/serverutils"
	"creative-eval-be/pkg/chat"
	"creative-eval-be/pkg/events"
	"creative-eval-be/pkg/llm"
)

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]*dto.MessageResponse, error)
	GetSettings(ctx context.Context, sessionID string) (*dto.ChatSettingsResponse, error)
	UpdateSettings(ctx context.Context, sessionID string, req *dto.ChatSettingsRequest) error
	ClearSession(ctx context.Context, sessionID string) error
	RunTurn(ctx context.Context, sessionID, content string, onFragment func(fragment string)) (string, error)
}

type chatService struct {
	sessions       *chat.SessionStore
	pipeline       *chat.Pipeline
	defaults       chat.Settings
	eventPublisher events.Publisher
	turnLogger     logger.ILogger
}

func NewChatService(
	sessions *chat.SessionStore,
	pipeline *chat.Pipeline,
	defaults chat.Settings,
	eventPublisher events.Publisher,
	turnLogger logger.ILogger,
) IChatService {
	return &chatService{
		sessions:       sessions,
		pipeline:       pipeline,
		defaults:       defaults,
		eventPublisher: eventPublisher,
		turnLogger:     turnLogger,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := chat.NewSession(uuid.NewString(), s.defaults)
	s.sessions.Save(session)
	return &dto.CreateSessionResponse{SessionID: session.ID}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) ([]*dto.MessageResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	messages, _ := session.Snapshot()
	history := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		history[i] = &dto.MessageResponse{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

func (s *chatService) GetSettings(ctx context.Context, sessionID string) (*dto.ChatSettingsResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	_, st := session.Snapshot()
	return &dto.ChatSettingsResponse{
		Backend:           string(st.Backend),
		BaseModel:         st.BaseModel,
		Temperature:       st.Temperature,
		TopP:              st.TopP,
		RepetitionPenalty: st.RepetitionPenalty,
		MaxNewTokens:      st.MaxNewTokens,
	}, nil
}

func (s *chatService) UpdateSettings(ctx context.Context, sessionID string, req *dto.ChatSettingsRequest) error {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return serverutils.NewNotFoundError("Session not found")
	}

	backend, err := llm.ParseBackend(req.Backend)
	if err != nil {
		return serverutils.NewValidationError(err.Error())
	}

	session.SetSettings(chat.Settings{
		Backend:           backend,
		BaseModel:         req.BaseModel,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		RepetitionPenalty: req.RepetitionPenalty,
		MaxNewTokens:      req.MaxNewTokens,
	})
	s.sessions.Save(session)
	return nil
}

// ClearSession discards the conversation but keeps the session and its
// settings, mirroring a "Clear Chat" action.
func (s *chatService) ClearSession(ctx context.Context, sessionID string) error {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return serverutils.NewNotFoundError("Session not found")
	}
	session.Clear()
	s.sessions.Save(session)
	return nil
}

// RunTurn executes one full chat turn: append the user message, stream the
// assistant response fragment by fragment through onFragment, join the
// producer, then append the completed assistant message. On failure the
// assistant message is NOT appended; the partial output is returned with
// the error. Generation reads a snapshot of the conversation, so
// concurrent HTTP calls on the session stay safe. The caller serializes
// turns per session.
func (s *chatService) RunTurn(ctx context.Context, sessionID, content string, onFragment func(fragment string)) (string, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return "", serverutils.NewNotFoundError("Session not found")
	}

	session.Append(llm.Message{
		Role:    constant.RoleUser,
		Content: content,
	})
	s.sessions.Save(session)

	history, settings := session.Snapshot()
	stream, err := s.pipeline.StartTurn(ctx, settings.Selection(), history, settings.GenParams())
	if err != nil {
		s.turnLogger.Error("Chat", "Turn failed to start", map[string]interface{}{
			"session_id": sessionID,
			"backend":    string(settings.Backend),
			"error":      err.Error(),
		})
		if errors.Is(err, llm.ErrBackendUnavailable) {
			return "", serverutils.NewBackendUnavailableError(err.Error())
		}
		return "", err
	}

	full, err := chat.Drain(stream, onFragment)
	if err != nil {
		s.turnLogger.Error("Chat", "Generation failed", map[string]interface{}{
			"session_id":    sessionID,
			"backend":       string(settings.Backend),
			"partial_chars": len(full),
			"error":         err.Error(),
		})
		return full, err
	}

	session.Append(llm.Message{
		Role:    constant.RoleAssistant,
		Content: full,
	})
	s.sessions.Save(session)

	s.turnLogger.Info("Chat", "Turn completed", map[string]interface{}{
		"session_id":     sessionID,
		"backend":        string(settings.Backend),
		"response_chars": len(full),
	})
	if err := s.eventPublisher.Publish(ctx, events.NewChatTurnCompletedEvent(sessionID, string(settings.Backend), len(full))); err != nil {
		s.turnLogger.Warn("Chat", "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return full, nil
}
