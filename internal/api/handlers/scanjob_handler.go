package handlers

import (
	"strconv"

	"invoice-manager/domain"
	"invoice-manager/internal/api/presenters"
	"invoice-manager/pkg/scanjob"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanJobHandler interface {
		CreateScanJob(c *fiber.Ctx) error
		GetScanJobs(c *fiber.Ctx) error
		GetScanJobDetails(c *fiber.Ctx) error
		CancelScanJob(c *fiber.Ctx) error
	}

	scanJobHandler struct {
		scanJobService scanjob.ScanJobService
		validator      *validator.Validate
	}
)

func NewScanJobHandler(scanJobService scanjob.ScanJobService, validator *validator.Validate) ScanJobHandler {
	return &scanJobHandler{
		scanJobService: scanJobService,
		validator:      validator,
	}
}

func (h *scanJobHandler) CreateScanJob(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateScanJobRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateScanJob, err)
	}

	res, err := h.scanJobService.CreateScanJob(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateScanJob, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateScanJob)
}

func (h *scanJobHandler) GetScanJobs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	jobs, count, err := h.scanJobService.GetScanJobs(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScanJobs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"jobs": jobs,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetScanJobs)
}

func (h *scanJobHandler) GetScanJobDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	jobID := c.Params("id")

	res, err := h.scanJobService.GetScanJobByID(c.Context(), jobID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScanJob, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScanJob)
}

func (h *scanJobHandler) CancelScanJob(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	jobID := c.Params("id")

	if err := h.scanJobService.CancelScanJob(c.Context(), jobID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelScanJob, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelScanJob)
}
