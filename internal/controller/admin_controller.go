package controller

import (
	"errors"
	"strconv"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/serverutils"
	"lead-engagement-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	GetLeadStats(ctx *fiber.Ctx) error
	GetLeadSignals(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service   service.IAdminService
	jwtSecret string
}

func NewAdminController(service service.IAdminService, jwtSecret string) IAdminController {
	return &adminController{service: service, jwtSecret: jwtSecret}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	h.Post("/login", c.Login)

	// everything below requires an admin token
	h.Use(serverutils.JwtMiddleware(c.jwtSecret, serverutils.RoleAdmin))

	h.Get("/leads/stats", c.GetLeadStats)
	h.Get("/leads/signals", c.GetLeadSignals)

	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req, ctx.IP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}

func (c *adminController) GetLeadStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetLeadStats(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Lead stats", stats))
}

func (c *adminController) GetLeadSignals(ctx *fiber.Ctx) error {
	var query dto.LeadSignalQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(&query); err != nil {
		return err
	}

	res, err := c.service.ListLeadSignals(ctx.UserContext(), &query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Lead signals", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	logs, err := c.service.GetSystemLogs(ctx.UserContext(), page, limit, level)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // MD5 hash, not UUID

	l, err := c.service.GetLogDetail(ctx.UserContext(), logId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
