package controller

import (
	"github.com/gofiber/fiber/v2"

	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/service"
)

type IEvaluationController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
}

type evaluationController struct {
	evaluationService service.IEvaluationService
}

func NewEvaluationController(evaluationService service.IEvaluationService) IEvaluationController {
	return &evaluationController{
		evaluationService: evaluationService,
	}
}

// RegisterRoutes binds the public contract at the app root.
func (c *evaluationController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Health)
	r.Post("/query", c.Query)
}

func (c *evaluationController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Message: "Creative Evaluation Platform API",
		Status:  "running",
	})
}

// Query accepts multipart form fields: text_input, prompt, script_file,
// rubric_file. The response body is the agent result itself, unwrapped.
func (c *evaluationController) Query(ctx *fiber.Ctx) error {
	req := &dto.QueryRequest{
		TextInput: ctx.FormValue("text_input"),
		Prompt:    ctx.FormValue("prompt"),
	}

	// FormFile errors just mean the part is absent; both files are optional.
	if file, err := ctx.FormFile("script_file"); err == nil {
		req.ScriptFile = file
	}
	if file, err := ctx.FormFile("rubric_file"); err == nil {
		req.RubricFile = file
	}

	res, err := c.evaluationService.Evaluate(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
