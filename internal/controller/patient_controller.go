package controller

import (
	"nephro-assistant-be/internal/pkg/serverutils"
	"nephro-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPatientController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
}

type patientController struct {
	chatService service.IChatService
}

func NewPatientController(chatService service.IChatService) IPatientController {
	return &patientController{
		chatService: chatService,
	}
}

func (c *patientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/patient/v1")
	h.Get(":name", c.Lookup)
}

func (c *patientController) Lookup(ctx *fiber.Ctx) error {
	name := ctx.Params("name")

	res, err := c.chatService.LookupPatient(ctx.Context(), name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lookup patient", res))
}
