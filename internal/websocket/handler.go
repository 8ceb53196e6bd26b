package websocket

import (
	"context"
	"errors"

	"github.com/gofiber/websocket/v2"

	"creative-eval-be/internal/constant"
	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/pkg/logger"
	"creative-eval-be/internal/pkg/serverutils"
	"creative-eval-be/internal/service"
)

// ChatHandler drives one chat session over a websocket connection. The read
// loop is the session's frontend loop: it processes exactly one turn at a
// time, so a new turn is not accepted until the current one has joined.
type ChatHandler struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatHandler(chatService service.IChatService, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log,
	}
}

// ServeChat runs the read loop until the peer disconnects. Turn failures
// are reported inline as error frames; they never tear down the loop or
// touch the conversation.
func (h *ChatHandler) ServeChat(conn *websocket.Conn, sessionID string) {
	client := NewClient(conn, sessionID)

	for {
		var req dto.TurnRequest
		if err := client.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Chat", "Websocket closed unexpectedly", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
			return
		}

		if err := serverutils.ValidateRequest(req); err != nil {
			h.writeError(client, "", err)
			continue
		}

		full, err := h.chatService.RunTurn(context.Background(), sessionID, req.Content, func(fragment string) {
			// Push every fragment as it arrives; a failed write is caught
			// by the final frame below.
			_ = client.WriteJSON(dto.StreamEvent{
				Type: constant.StreamEventFragment,
				Text: fragment,
			})
		})
		if err != nil {
			h.writeError(client, full, err)
			continue
		}

		if err := client.WriteJSON(dto.StreamEvent{
			Type:    constant.StreamEventDone,
			Content: full,
		}); err != nil {
			return
		}
	}
}

func (h *ChatHandler) writeError(client *Client, partial string, err error) {
	// AppErrors carry a client-safe message; everything else is surfaced
	// as-is, matching how the chat UI shows generation failures inline.
	message := err.Error()
	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	_ = client.WriteJSON(dto.StreamEvent{
		Type:    constant.StreamEventError,
		Message: message,
		Partial: partial,
	})
}
