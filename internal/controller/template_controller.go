package controller

import (
	"ai-resume-be/internal/pkg/serverutils"
	"ai-resume-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetAvailable(ctx *fiber.Ctx) error
}

type templateController struct {
	service service.TemplateService
}

func NewTemplateController(service service.TemplateService) ITemplateController {
	return &templateController{service: service}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/templates")
	h.Get("", c.GetAll)
	h.Get("/available", serverutils.JwtMiddleware, c.GetAvailable)
}

// GetAll lists every active template for the public gallery.
func (c *templateController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get templates", res))
}

// GetAvailable lists the templates the user's plan unlocks.
func (c *templateController) GetAvailable(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.ListAvailable(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get available templates", res))
}
