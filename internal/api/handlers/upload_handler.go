package handlers

import (
	"errors"
	"strconv"

	"invoice-manager/domain"
	"invoice-manager/internal/api/presenters"
	"invoice-manager/pkg/upload"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UploadHandler interface {
		UploadFile(c *fiber.Ctx) error
		GetUploads(c *fiber.Ctx) error
		GetUploadDetails(c *fiber.Ctx) error
		RetryRecognition(c *fiber.Ctx) error
		ConfirmUpload(c *fiber.Ctx) error
		DeleteUpload(c *fiber.Ctx) error
	}

	uploadHandler struct {
		uploadService upload.UploadService
		validator     *validator.Validate
	}
)

func NewUploadHandler(uploadService upload.UploadService, validator *validator.Validate) UploadHandler {
	return &uploadHandler{
		uploadService: uploadService,
		validator:     validator,
	}
}

func (h *uploadHandler) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadFileRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.File = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFile, err)
	}

	res, err := h.uploadService.UploadFile(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadFile)
}

func (h *uploadHandler) GetUploads(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	uploads, count, err := h.uploadService.GetUploads(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUploads, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"uploads": uploads,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetUploads)
}

func (h *uploadHandler) GetUploadDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	uploadID := c.Params("id")

	res, err := h.uploadService.GetUploadByID(c.Context(), uploadID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUpload, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUpload)
}

func (h *uploadHandler) RetryRecognition(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	uploadID := c.Params("id")

	res, err := h.uploadService.RetryRecognition(c.Context(), uploadID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRetryUpload, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRetryUpload)
}

func (h *uploadHandler) ConfirmUpload(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	uploadID := c.Params("id")
	req := new(domain.ConfirmUploadRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.uploadService.ConfirmUpload(c.Context(), uploadID, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUploadedFile) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedConfirmUpload, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmUpload, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConfirmUpload)
}

func (h *uploadHandler) DeleteUpload(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	uploadID := c.Params("id")

	if err := h.uploadService.DeleteUpload(c.Context(), uploadID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteUpload, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUpload)
}
