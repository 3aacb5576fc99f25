package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"invoice-manager/pkg/ocr"
)

var (
	MessageSuccessUploadFile    = "file uploaded successfully"
	MessageSuccessGetUpload     = "upload retrieved successfully"
	MessageSuccessGetUploads    = "uploads retrieved successfully"
	MessageSuccessRetryUpload   = "recognition retried successfully"
	MessageSuccessConfirmUpload = "invoice saved successfully"
	MessageSuccessDeleteUpload  = "upload deleted successfully"

	MessageFailedUploadFile    = "failed to upload file"
	MessageFailedGetUpload     = "failed to retrieve upload"
	MessageFailedGetUploads    = "failed to retrieve uploads"
	MessageFailedRetryUpload   = "failed to retry recognition"
	MessageFailedConfirmUpload = "failed to save invoice"
	MessageFailedDeleteUpload  = "failed to delete upload"

	ErrUploadNotFound        = errors.New("upload not found")
	ErrUploadNotConfirmable  = errors.New("upload is not in a confirmable state")
	ErrUploadNotRetryable    = errors.New("upload is not in a retryable state")
	ErrInvalidFileFormat     = errors.New("invalid file format")
	ErrRecognitionFailed     = errors.New("recognition failed")
	ErrInvalidStatusChange   = errors.New("invalid upload status transition")
	ErrDuplicateUploadedFile = errors.New("a file with the same content already exists")
)

type (
	UploadFileRequest struct {
		File *multipart.FileHeader `json:"file" form:"file" validate:"required"`
	}

	UploadResponse struct {
		ID            string     `json:"id"`
		FileName      string     `json:"file_name"`
		FileSize      int64      `json:"file_size"`
		FileURL       string     `json:"file_url,omitempty"`
		Status        string     `json:"status"`
		StatusMessage string     `json:"status_message,omitempty"`
		Progress      int        `json:"progress"`
		Draft         *ocr.Draft `json:"draft,omitempty"`
		DuplicateOf   string     `json:"duplicate_of,omitempty"`
		InvoiceID     string     `json:"invoice_id,omitempty"`
		CreatedAt     time.Time  `json:"created_at"`
	}

	// ConfirmUploadRequest persists the (possibly user-edited) draft as an
	// invoice. Force overwrites the existing invoice on duplicate content.
	ConfirmUploadRequest struct {
		Draft ocr.Draft `json:"draft" validate:"required"`
		Force bool      `json:"force"`
	}
)
