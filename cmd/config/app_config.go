package config

import (
	"os"
	"time"

	"invoice-manager/internal/api/handlers"
	"invoice-manager/internal/api/routes"
	"invoice-manager/internal/middleware"
	"invoice-manager/internal/utils"
	"invoice-manager/internal/utils/storage"
	"invoice-manager/pkg/invoice"
	"invoice-manager/pkg/jwt"
	"invoice-manager/pkg/ocr"
	"invoice-manager/pkg/realtime"
	"invoice-manager/pkg/scanjob"
	"invoice-manager/pkg/upload"
	"invoice-manager/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Shanghai",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	hub := realtime.NewHub()
	ocrClient := ocr.NewClient(utils.GetConfig("OCR_API_URL"), utils.GetConfig("OCR_API_KEY"))
	mailbox := scanjob.NewHTTPMailbox(utils.GetConfig("MAIL_BRIDGE_URL"), utils.GetConfig("MAIL_BRIDGE_KEY"))

	// Repository
	userRepository := user.NewUserRepository(db)
	invoiceRepository := invoice.NewInvoiceRepository(db)
	uploadRepository := upload.NewUploadRepository(db)
	scanJobRepository := scanjob.NewScanJobRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	invoiceService := invoice.NewInvoiceService(invoiceRepository, hub)
	uploadService := upload.NewUploadService(uploadRepository, invoiceRepository, ocrClient, s3, hub)
	scanJobService := scanjob.NewScanJobService(
		scanJobRepository,
		invoiceRepository,
		ocrClient,
		mailbox,
		hub,
		utils.GetConfig("SMTP_HOST") != "",
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, validator)
	uploadHandler := handlers.NewUploadHandler(uploadService, validator)
	scanJobHandler := handlers.NewScanJobHandler(scanJobService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		InvoiceHandler: invoiceHandler,
		UploadHandler:  uploadHandler,
		ScanJobHandler: scanJobHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
