package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"invoice-manager/domain"
	"invoice-manager/entities"
	"invoice-manager/internal/utils/storage"
	"invoice-manager/pkg/invoice"
	"invoice-manager/pkg/ocr"
	"invoice-manager/pkg/realtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UploadService interface {
		UploadFile(ctx context.Context, req domain.UploadFileRequest, userID string) (domain.UploadResponse, error)
		GetUploadByID(ctx context.Context, id string, userID string) (domain.UploadResponse, error)
		GetUploads(ctx context.Context, userID string, page, limit int) ([]domain.UploadResponse, int64, error)
		RetryRecognition(ctx context.Context, id string, userID string) (domain.UploadResponse, error)
		ConfirmUpload(ctx context.Context, id string, req domain.ConfirmUploadRequest, userID string) (domain.UploadResponse, error)
		DeleteUpload(ctx context.Context, id string, userID string) error
	}

	uploadService struct {
		uploadRepository  UploadRepository
		invoiceRepository invoice.InvoiceRepository
		ocrClient         ocr.Client
		s3                storage.AwsS3
		hub               *realtime.Hub
	}
)

func NewUploadService(
	uploadRepository UploadRepository,
	invoiceRepository invoice.InvoiceRepository,
	ocrClient ocr.Client,
	s3 storage.AwsS3,
	hub *realtime.Hub,
) UploadService {
	return &uploadService{
		uploadRepository:  uploadRepository,
		invoiceRepository: invoiceRepository,
		ocrClient:         ocrClient,
		s3:                s3,
		hub:               hub,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, req domain.UploadFileRequest, userID string) (domain.UploadResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadResponse{}, domain.ErrParseUUID
	}

	ext := strings.ToLower(filepath.Ext(req.File.Filename))
	if !allowedExtension(ext) {
		return domain.UploadResponse{}, domain.ErrInvalidFileFormat
	}

	data, err := readFile(req.File)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	checksum := sha256.Sum256(data)

	file := &entities.UploadedFile{
		ID:       uuid.New(),
		UserID:   userUUID,
		FileName: req.File.Filename,
		FileSize: req.File.Size,
		MimeType: detectMimeType(req.File),
		Checksum: hex.EncodeToString(checksum[:]),
		Status:   StatusPending,
	}

	objectKey, err := s.s3.UploadBytes(
		fmt.Sprintf("invoice-%s%s", file.ID.String(), ext),
		data,
		file.MimeType,
		"invoices",
	)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	file.FileURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.uploadRepository.CreateUpload(ctx, file); err != nil {
		return domain.UploadResponse{}, err
	}

	s.recognize(ctx, file, data)

	if err := s.uploadRepository.UpdateUpload(ctx, file); err != nil {
		return domain.UploadResponse{}, err
	}

	return toUploadResponse(file), nil
}

// recognize runs duplicate detection and OCR for one file and folds the
// outcome into the entity. Recognition failures never propagate as errors;
// they end up as the file's error state so the user can retry.
func (s *uploadService) recognize(ctx context.Context, file *entities.UploadedFile, data []byte) {
	if err := transition(file, StatusRecognizing); err != nil {
		return
	}
	file.Progress = 10
	file.StatusMessage = "recognizing"

	existing, err := s.invoiceRepository.GetInvoiceByChecksum(ctx, file.UserID.String(), file.Checksum)
	if err == nil && existing != nil {
		_ = transition(file, StatusDuplicate)
		file.Progress = 100
		file.StatusMessage = "a matching invoice already exists"
		existingID := existing.ID
		file.DuplicateOf = &existingID
		return
	}

	raw, err := s.ocrClient.Recognize(ctx, file.FileName, data, file.MimeType)
	if err != nil {
		_ = transition(file, StatusFailed)
		file.Progress = 0
		file.StatusMessage = err.Error()
		return
	}

	if rawJSON, err := json.Marshal(raw); err == nil {
		file.RawOcrResult = string(rawJSON)
	}

	draft := ocr.Extract(raw)
	assessment := ocr.Assess(raw)

	file.Progress = assessment.Progress
	file.StatusMessage = assessment.Message

	if assessment.Status == ocr.StatusError {
		_ = transition(file, StatusFailed)
		return
	}

	if draftJSON, err := json.Marshal(draft); err == nil {
		file.Draft = string(draftJSON)
	}
	_ = transition(file, StatusRecognized)
}

func (s *uploadService) GetUploadByID(ctx context.Context, id string, userID string) (domain.UploadResponse, error) {
	file, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	return toUploadResponse(file), nil
}

func (s *uploadService) GetUploads(ctx context.Context, userID string, page, limit int) ([]domain.UploadResponse, int64, error) {
	files, count, err := s.uploadRepository.GetUploads(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.UploadResponse
	for _, file := range files {
		response = append(response, toUploadResponse(file))
	}
	return response, count, nil
}

func (s *uploadService) RetryRecognition(ctx context.Context, id string, userID string) (domain.UploadResponse, error) {
	file, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	if !CanTransition(file.Status, StatusRecognizing) {
		return domain.UploadResponse{}, domain.ErrUploadNotRetryable
	}

	objectKey := s.s3.GetObjectKeyFromLink(file.FileURL)
	data, err := s.s3.DownloadFile(objectKey)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	file.DuplicateOf = nil
	s.recognize(ctx, file, data)

	if err := s.uploadRepository.UpdateUpload(ctx, file); err != nil {
		return domain.UploadResponse{}, err
	}
	return toUploadResponse(file), nil
}

func (s *uploadService) ConfirmUpload(ctx context.Context, id string, req domain.ConfirmUploadRequest, userID string) (domain.UploadResponse, error) {
	file, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	if file.Status == StatusDuplicate && !req.Force {
		return domain.UploadResponse{}, domain.ErrDuplicateUploadedFile
	}
	if err := transition(file, StatusSaving); err != nil {
		return domain.UploadResponse{}, domain.ErrUploadNotConfirmable
	}

	var saved *entities.Invoice
	if file.DuplicateOf != nil && req.Force {
		saved, err = s.overwriteInvoice(ctx, file.DuplicateOf.String(), req.Draft, file)
	} else {
		saved, err = s.createInvoice(ctx, file.UserID, req.Draft, file)
	}
	if err != nil {
		_ = transition(file, StatusFailed)
		file.StatusMessage = err.Error()
		_ = s.uploadRepository.UpdateUpload(ctx, file)
		return domain.UploadResponse{}, err
	}

	savedID := saved.ID
	file.InvoiceID = &savedID
	file.StatusMessage = "invoice saved"
	file.Progress = 100
	_ = transition(file, StatusSaved)

	if err := s.uploadRepository.UpdateUpload(ctx, file); err != nil {
		return domain.UploadResponse{}, err
	}
	return toUploadResponse(file), nil
}

func (s *uploadService) DeleteUpload(ctx context.Context, id string, userID string) error {
	file, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if file.FileURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(file.FileURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.uploadRepository.DeleteUpload(ctx, id)
}

func (s *uploadService) createInvoice(ctx context.Context, userID uuid.UUID, draft ocr.Draft, file *entities.UploadedFile) (*entities.Invoice, error) {
	inv := draftToInvoice(draft)
	inv.ID = uuid.New()
	inv.UserID = userID
	inv.Status = invoice.StatusUnreimbursed
	inv.FileURL = file.FileURL
	inv.Checksum = file.Checksum
	inv.RawOcrResult = file.RawOcrResult

	if err := s.invoiceRepository.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventInsert,
		UserID:    userID.String(),
		InvoiceID: inv.ID.String(),
		Invoice:   inv,
	})
	return inv, nil
}

func (s *uploadService) overwriteInvoice(ctx context.Context, invoiceID string, draft ocr.Draft, file *entities.UploadedFile) (*entities.Invoice, error) {
	existing, err := s.invoiceRepository.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	updated := draftToInvoice(draft)
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.Status = existing.Status
	updated.FileURL = file.FileURL
	updated.Checksum = file.Checksum
	updated.RawOcrResult = file.RawOcrResult
	updated.Timestamp = existing.Timestamp

	if err := s.invoiceRepository.UpdateInvoice(ctx, updated); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventUpdate,
		UserID:    existing.UserID.String(),
		InvoiceID: existing.ID.String(),
		Invoice:   updated,
	})
	return updated, nil
}

func (s *uploadService) getOwned(ctx context.Context, id string, userID string) (*entities.UploadedFile, error) {
	file, err := s.uploadRepository.GetUploadByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, err
	}
	if file.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}
	return file, nil
}

func draftToInvoice(draft ocr.Draft) *entities.Invoice {
	invoiceDate, err := time.Parse("2006-01-02", draft.InvoiceDate)
	if err != nil {
		invoiceDate = time.Now()
	}

	return &entities.Invoice{
		InvoiceType:      draft.InvoiceType,
		InvoiceNumber:    draft.InvoiceNumber,
		InvoiceCode:      draft.InvoiceCode,
		InvoiceDate:      invoiceDate,
		SellerName:       draft.SellerName,
		SellerTaxNumber:  draft.SellerTaxNumber,
		BuyerName:        draft.BuyerName,
		BuyerTaxNumber:   draft.BuyerTaxNumber,
		TotalAmount:      draft.TotalAmount,
		TaxAmount:        draft.TaxAmount,
		AmountWithoutTax: draft.AmountWithoutTax,
		Remarks:          draft.Remarks,
		TrainNumber:      draft.TrainNumber,
		DepartureStation: draft.DepartureStation,
		ArrivalStation:   draft.ArrivalStation,
		SeatType:         draft.SeatType,
		SeatNumber:       draft.SeatNumber,
		PassengerName:    draft.PassengerName,
		PassengerID:      draft.PassengerID,
	}
}

func toUploadResponse(file *entities.UploadedFile) domain.UploadResponse {
	response := domain.UploadResponse{
		ID:            file.ID.String(),
		FileName:      file.FileName,
		FileSize:      file.FileSize,
		FileURL:       file.FileURL,
		Status:        file.Status,
		StatusMessage: file.StatusMessage,
		Progress:      file.Progress,
		CreatedAt:     file.CreatedAt,
	}

	if file.Draft != "" {
		var draft ocr.Draft
		if err := json.Unmarshal([]byte(file.Draft), &draft); err == nil {
			response.Draft = &draft
		}
	}
	if file.DuplicateOf != nil {
		response.DuplicateOf = file.DuplicateOf.String()
	}
	if file.InvoiceID != nil {
		response.InvoiceID = file.InvoiceID.String()
	}
	return response
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func detectMimeType(file *multipart.FileHeader) string {
	if mimeType := file.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}

func allowedExtension(ext string) bool {
	for _, allowed := range storage.AllowDocument {
		if ext == allowed {
			return true
		}
	}
	return false
}
