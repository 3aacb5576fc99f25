package routes

import (
	"invoice-manager/internal/api/handlers"
	"invoice-manager/internal/middleware"
	"invoice-manager/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	InvoiceHandler handlers.InvoiceHandler
	UploadHandler  handlers.UploadHandler
	ScanJobHandler handlers.ScanJobHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Invoices()
	c.Uploads()
	c.ScanJobs()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UploadAvatar)
	}
}

func (c *Config) Invoices() {
	invoices := c.App.Group("/api/v1/invoices", c.Middleware.AuthMiddleware(c.JWTService))
	invoices.Get("/dashboard", c.InvoiceHandler.GetDashboardStats)
	invoices.Get("/export", c.InvoiceHandler.ExportInvoices)
	invoices.Get("/stream", c.InvoiceHandler.StreamInvoices)

	// Basic CRUD operations
	invoices.Post("", c.InvoiceHandler.CreateInvoice)
	invoices.Get("", c.InvoiceHandler.GetInvoices)
	invoices.Get("/:id", c.InvoiceHandler.GetInvoiceDetails)
	invoices.Put("/:id", c.InvoiceHandler.UpdateInvoice)
	invoices.Delete("/:id", c.InvoiceHandler.DeleteInvoice)
	invoices.Patch("/:id/status", c.InvoiceHandler.UpdateInvoiceStatus)
}

func (c *Config) Uploads() {
	uploads := c.App.Group("/api/v1/uploads", c.Middleware.AuthMiddleware(c.JWTService))
	uploads.Post("", c.UploadHandler.UploadFile)
	uploads.Get("", c.UploadHandler.GetUploads)
	uploads.Get("/:id", c.UploadHandler.GetUploadDetails)
	uploads.Post("/:id/retry", c.UploadHandler.RetryRecognition)
	uploads.Post("/:id/confirm", c.UploadHandler.ConfirmUpload)
	uploads.Delete("/:id", c.UploadHandler.DeleteUpload)
}

func (c *Config) ScanJobs() {
	scanJobs := c.App.Group("/api/v1/scan-jobs", c.Middleware.AuthMiddleware(c.JWTService))
	scanJobs.Post("", c.ScanJobHandler.CreateScanJob)
	scanJobs.Get("", c.ScanJobHandler.GetScanJobs)
	scanJobs.Get("/:id", c.ScanJobHandler.GetScanJobDetails)
	scanJobs.Post("/:id/cancel", c.ScanJobHandler.CancelScanJob)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
