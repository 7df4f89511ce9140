package controller

import (
	"errors"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/serverutils"
	"lead-engagement-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWidgetController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Open(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	Minimize(ctx *fiber.Ctx) error
	ChangeRoute(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	QuickReply(ctx *fiber.Ctx) error
	ClickAction(ctx *fiber.Ctx) error
	GetContext(ctx *fiber.Ctx) error
}

type widgetController struct {
	service   service.IWidgetService
	wsHandler fiber.Handler
}

// NewWidgetController serves the public widget API. wsHandler upgrades
// /sessions/:id/ws and may be nil.
func NewWidgetController(service service.IWidgetService, wsHandler fiber.Handler) IWidgetController {
	return &widgetController{service: service, wsHandler: wsHandler}
}

func (c *widgetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/widget/v1")

	h.Get("/contexts", c.GetContext)

	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.DeleteSession)

	h.Post("/sessions/:id/open", c.Open)
	h.Post("/sessions/:id/close", c.Close)
	h.Post("/sessions/:id/minimize", c.Minimize)
	h.Post("/sessions/:id/route", c.ChangeRoute)

	h.Post("/sessions/:id/messages", c.SendMessage)
	h.Post("/sessions/:id/quick-replies", c.QuickReply)
	h.Post("/sessions/:id/actions", c.ClickAction)

	if c.wsHandler != nil {
		h.Get("/sessions/:id/ws", c.wsHandler)
	}
}

func widgetError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrActionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	default:
		return err
	}
}

func (c *widgetController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
		}
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), &req)
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Widget session created", res))
}

func (c *widgetController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Widget session", res))
}

func (c *widgetController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Widget session deleted", nil))
}

func (c *widgetController) Open(ctx *fiber.Ctx) error {
	res, err := c.service.Open(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Widget opened", res))
}

func (c *widgetController) Close(ctx *fiber.Ctx) error {
	res, err := c.service.Close(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Widget closed", res))
}

func (c *widgetController) Minimize(ctx *fiber.Ctx) error {
	res, err := c.service.Minimize(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Widget minimized", res))
}

func (c *widgetController) ChangeRoute(ctx *fiber.Ctx) error {
	var req dto.ChangeRouteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.ChangeRoute(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Route recorded", res))
}

func (c *widgetController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), ctx.Params("id"), &req, ctx.QueryBool("wait"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message submitted", res))
}

func (c *widgetController) QuickReply(ctx *fiber.Ctx) error {
	var req dto.QuickReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.QuickReply(ctx.UserContext(), ctx.Params("id"), &req, ctx.QueryBool("wait"))
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Quick reply submitted", res))
}

func (c *widgetController) ClickAction(ctx *fiber.Ctx) error {
	var req dto.ClickActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.ClickAction(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return widgetError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Action handled", res))
}

func (c *widgetController) GetContext(ctx *fiber.Ctx) error {
	path := ctx.Query("path", "/")
	return ctx.JSON(serverutils.SuccessResponse("Page context", c.service.LookupContext(ctx.UserContext(), path)))
}
