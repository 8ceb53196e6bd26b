package controller

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/pkg/serverutils"
	"creative-eval-be/internal/service"
	"creative-eval-be/internal/websocket"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	wsHandler   *websocket.ChatHandler
}

func NewChatController(chatService service.IChatService, wsHandler *websocket.ChatHandler) IChatController {
	return &chatController{
		chatService: chatService,
		wsHandler:   wsHandler,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/session", c.CreateSession)
	h.Get("/session/:id/history", c.GetHistory)
	h.Get("/session/:id/settings", c.GetSettings)
	h.Put("/session/:id/settings", c.UpdateSettings)
	h.Delete("/session/:id", c.ClearSession)

	h.Use("/ws", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("/ws/:id", fiberws.New(func(conn *fiberws.Conn) {
		c.wsHandler.ServeChat(conn, conn.Params("id"))
	}))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) GetSettings(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetSettings(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get settings", res))
}

func (c *chatController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.ChatSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.UpdateSettings(ctx.Context(), ctx.Params("id"), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Settings updated", nil))
}

// ClearSession discards the conversation, the "Clear Chat" action.
func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	if err := c.chatService.ClearSession(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat cleared", nil))
}
