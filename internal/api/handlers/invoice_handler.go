package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"invoice-manager/domain"
	"invoice-manager/internal/api/presenters"
	"invoice-manager/pkg/invoice"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type (
	InvoiceHandler interface {
		CreateInvoice(c *fiber.Ctx) error
		GetInvoices(c *fiber.Ctx) error
		GetInvoiceDetails(c *fiber.Ctx) error
		UpdateInvoice(c *fiber.Ctx) error
		DeleteInvoice(c *fiber.Ctx) error
		UpdateInvoiceStatus(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
		ExportInvoices(c *fiber.Ctx) error
		StreamInvoices(c *fiber.Ctx) error
	}

	invoiceHandler struct {
		invoiceService invoice.InvoiceService
		validator      *validator.Validate
	}
)

func NewInvoiceHandler(invoiceService invoice.InvoiceService, validator *validator.Validate) InvoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
		validator:      validator,
	}
}

func (h *invoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateInvoiceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateInvoice, err)
	}

	res, err := h.invoiceService.CreateInvoice(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateInvoice, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateInvoice)
}

func (h *invoiceHandler) GetInvoices(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	invoices, count, err := h.invoiceService.GetInvoices(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInvoices, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"invoices": invoices,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetInvoices)
}

func (h *invoiceHandler) GetInvoiceDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invoiceID := c.Params("id")

	res, err := h.invoiceService.GetInvoiceByID(c.Context(), invoiceID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInvoice, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInvoice)
}

func (h *invoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invoiceID := c.Params("id")
	req := new(domain.UpdateInvoiceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateInvoice, err)
	}

	if err := h.invoiceService.UpdateInvoice(c.Context(), invoiceID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateInvoice, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateInvoice)
}

func (h *invoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invoiceID := c.Params("id")

	if err := h.invoiceService.DeleteInvoice(c.Context(), invoiceID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteInvoice, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteInvoice)
}

func (h *invoiceHandler) UpdateInvoiceStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invoiceID := c.Params("id")
	req := new(domain.UpdateInvoiceStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	if err := h.invoiceService.UpdateInvoiceStatus(c.Context(), invoiceID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *invoiceHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.invoiceService.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *invoiceHandler) ExportInvoices(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	data, err := h.invoiceService.ExportCSV(c.Context(), userID, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportInvoices, err)
	}

	fileName := fmt.Sprintf("invoices-%s.csv", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(data)
}

// StreamInvoices serves the invoice change feed over server-sent events: an
// initial snapshot event followed by one event per mutation.
func (h *invoiceHandler) StreamInvoices(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	snapshot, events, unsubscribe, err := h.invoiceService.Watch(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInvoices, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		if payload, err := json.Marshal(snapshot); err == nil {
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
		}
		if err := w.Flush(); err != nil {
			return
		}

		keepAlive := time.NewTicker(30 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
