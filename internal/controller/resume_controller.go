package controller

import (
	"io"
	"strings"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/pkg/serverutils"
	"ai-resume-be/internal/service"
	"ai-resume-be/pkg/resume"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
}

type resumeController struct {
	chatService   service.ResumeChatService
	masterService service.MasterResumeService
}

func NewResumeController(chatService service.ResumeChatService, masterService service.MasterResumeService) IResumeController {
	return &resumeController{
		chatService:   chatService,
		masterService: masterService,
	}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/chat", c.Enhance)
	h.Post("/chat/save", c.Save)

	h.Get("/chats", c.ListSessions)
	h.Post("/chats", c.CreateSession)
	h.Get("/chats/:id", c.GetSession)
	h.Put("/chats/:id", c.RenameSession)
	h.Delete("/chats/:id", c.DeleteSession)

	h.Get("/history", c.ListHistory)
	h.Get("/history/:id", c.GetHistoryDetail)

	h.Get("/master", c.GetMasterResume)
	h.Put("/master", c.SaveMasterResume)
	h.Post("/master/upload", c.UploadMasterResume)

	// Pre-chat endpoint kept for older clients
	h.Post("/enhance", c.LegacyEnhance)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *resumeController) Enhance(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.EnhanceRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Enhance(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success enhance resume", res))
}

func (c *resumeController) Save(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SaveResumeRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save resume", res))
}

func (c *resumeController) CreateSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *resumeController) ListSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.chatService.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat sessions", res))
}

func (c *resumeController) GetSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	res, err := c.chatService.GetSession(ctx.Context(), userId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat session", res))
}

func (c *resumeController) RenameSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	var req dto.RenameSessionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.RenameSession(ctx.Context(), userId, chatId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rename chat session", res))
}

func (c *resumeController) DeleteSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), userId, chatId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}

func (c *resumeController) ListHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	query := &dto.ListHistoryQuery{
		Page:      ctx.QueryInt("page", 1),
		PageSize:  ctx.QueryInt("page_size", 20),
		SortOrder: strings.ToLower(ctx.Query("sort", "desc")),
		Search:    ctx.Query("search"),
	}
	if templateIdStr := ctx.Query("template_id"); templateIdStr != "" {
		templateId, err := uuid.Parse(templateIdStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
		}
		query.TemplateId = &templateId
	}

	res, err := c.chatService.ListHistory(ctx.Context(), userId, query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get enhancement history", res))
}

func (c *resumeController) GetHistoryDetail(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	historyId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid history id")
	}

	res, err := c.chatService.GetHistoryDetail(ctx.Context(), userId, historyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history detail", res))
}

func (c *resumeController) GetMasterResume(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.masterService.Get(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get master resume", res))
}

func (c *resumeController) SaveMasterResume(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req resume.Resume
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume payload")
	}

	res, err := c.masterService.SaveManual(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save master resume", res))
}

func (c *resumeController) UploadMasterResume(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	res, err := c.masterService.UploadAndExtract(ctx.Context(), userId, file.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract master resume", res))
}

func (c *resumeController) LegacyEnhance(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.LegacyEnhanceRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.LegacyEnhance(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success enhance resume", res))
}
