package scanjob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"invoice-manager/domain"
	"invoice-manager/entities"
	"invoice-manager/internal/utils/mailing"
	"invoice-manager/pkg/invoice"
	"invoice-manager/pkg/ocr"
	"invoice-manager/pkg/realtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

type (
	ScanJobService interface {
		CreateScanJob(ctx context.Context, req domain.CreateScanJobRequest, userID string) (domain.ScanJobResponse, error)
		GetScanJobs(ctx context.Context, userID string, page, limit int) ([]domain.ScanJobResponse, int64, error)
		GetScanJobByID(ctx context.Context, id string, userID string) (domain.ScanJobResponse, error)
		CancelScanJob(ctx context.Context, id string, userID string) error
	}

	scanJobService struct {
		scanJobRepository ScanJobRepository
		invoiceRepository invoice.InvoiceRepository
		ocrClient         ocr.Client
		mailbox           Mailbox
		hub               *realtime.Hub
		notifyEmail       bool
	}
)

func NewScanJobService(
	scanJobRepository ScanJobRepository,
	invoiceRepository invoice.InvoiceRepository,
	ocrClient ocr.Client,
	mailbox Mailbox,
	hub *realtime.Hub,
	notifyEmail bool,
) ScanJobService {
	return &scanJobService{
		scanJobRepository: scanJobRepository,
		invoiceRepository: invoiceRepository,
		ocrClient:         ocrClient,
		mailbox:           mailbox,
		hub:               hub,
		notifyEmail:       notifyEmail,
	}
}

func (s *scanJobService) CreateScanJob(ctx context.Context, req domain.CreateScanJobRequest, userID string) (domain.ScanJobResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ScanJobResponse{}, domain.ErrParseUUID
	}

	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return domain.ScanJobResponse{}, domain.ErrInvalidDateRange
	}
	dateTo, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return domain.ScanJobResponse{}, domain.ErrInvalidDateRange
	}
	if dateFrom.After(dateTo) {
		return domain.ScanJobResponse{}, domain.ErrInvalidDateRange
	}

	active, err := s.scanJobRepository.GetActiveScanJob(ctx, userID)
	if err != nil {
		return domain.ScanJobResponse{}, err
	}
	if active != nil {
		return domain.ScanJobResponse{}, domain.ErrScanJobAlreadyActive
	}

	job := &entities.EmailScanJob{
		ID:           uuid.New(),
		UserID:       userUUID,
		EmailAddress: req.EmailAddress,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		Status:       StatusPending,
	}

	if err := s.scanJobRepository.CreateScanJob(ctx, job); err != nil {
		return domain.ScanJobResponse{}, err
	}

	// Fire and forget: the dashboard polls / subscribes for progress.
	go s.process(job.ID.String())

	return toScanJobResponse(job), nil
}

func (s *scanJobService) GetScanJobs(ctx context.Context, userID string, page, limit int) ([]domain.ScanJobResponse, int64, error) {
	jobs, count, err := s.scanJobRepository.GetScanJobs(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ScanJobResponse
	for _, job := range jobs {
		response = append(response, toScanJobResponse(job))
	}
	return response, count, nil
}

func (s *scanJobService) GetScanJobByID(ctx context.Context, id string, userID string) (domain.ScanJobResponse, error) {
	job, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.ScanJobResponse{}, err
	}
	return toScanJobResponse(job), nil
}

func (s *scanJobService) CancelScanJob(ctx context.Context, id string, userID string) error {
	job, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if job.Status != StatusPending {
		return domain.ErrScanJobNotCancelable
	}
	job.Status = StatusCancelled
	return s.scanJobRepository.UpdateScanJob(ctx, job)
}

// process runs one scan job to completion. It re-reads the job first so a
// cancel that raced the goroutine start is respected.
func (s *scanJobService) process(jobID string) {
	ctx := context.Background()

	job, err := s.scanJobRepository.GetScanJobByID(ctx, jobID)
	if err != nil || job.Status != StatusPending {
		return
	}

	job.Status = StatusRunning
	if err := s.scanJobRepository.UpdateScanJob(ctx, job); err != nil {
		return
	}

	attachments, err := s.mailbox.FetchInvoiceAttachments(ctx, job.EmailAddress, job.DateFrom, job.DateTo)
	if err != nil {
		s.fail(ctx, job, err)
		return
	}

	job.EmailsScanned = len(attachments)

	for _, attachment := range attachments {
		if s.ingestAttachment(ctx, job, attachment) {
			job.InvoicesFound++
		}
		// Persist counters as we go so the dashboard shows progress.
		_ = s.scanJobRepository.UpdateScanJob(ctx, job)
	}

	now := time.Now()
	job.Status = StatusCompleted
	job.CompletedAt = &now
	if err := s.scanJobRepository.UpdateScanJob(ctx, job); err != nil {
		log.Printf("failed to finalize scan job %s: %v", jobID, err)
		return
	}

	if s.notifyEmail {
		subject := "Email scan completed"
		body := fmt.Sprintf(
			"<p>Your mailbox scan finished.</p><p>Emails scanned: %d<br>Invoices found: %d</p>",
			job.EmailsScanned, job.InvoicesFound,
		)
		if err := mailing.SendMail(job.EmailAddress, subject, body); err != nil {
			log.Printf("failed to send scan notification: %v", err)
		}
	}
}

// ingestAttachment OCRs one attachment and stores it as an invoice when the
// result passes the quality gate. Duplicates and low-quality results are
// skipped silently; the scan counters are the only trace.
func (s *scanJobService) ingestAttachment(ctx context.Context, job *entities.EmailScanJob, attachment Attachment) bool {
	checksumBytes := sha256.Sum256(attachment.Data)
	checksum := hex.EncodeToString(checksumBytes[:])

	existing, err := s.invoiceRepository.GetInvoiceByChecksum(ctx, job.UserID.String(), checksum)
	if err != nil || existing != nil {
		return false
	}

	raw, err := s.ocrClient.Recognize(ctx, attachment.FileName, attachment.Data, attachment.MimeType)
	if err != nil {
		return false
	}

	assessment := ocr.Assess(raw)
	if assessment.Status != ocr.StatusRecognized {
		return false
	}

	draft := ocr.Extract(raw)
	invoiceDate, err := time.Parse("2006-01-02", draft.InvoiceDate)
	if err != nil {
		invoiceDate = time.Now()
	}

	inv := &entities.Invoice{
		ID:               uuid.New(),
		UserID:           job.UserID,
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
		Status:           invoice.StatusUnreimbursed,
		Checksum:         checksum,
	}
	if rawJSON, err := json.Marshal(raw); err == nil {
		inv.RawOcrResult = string(rawJSON)
	}

	if err := s.invoiceRepository.CreateInvoice(ctx, inv); err != nil {
		return false
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventInsert,
		UserID:    job.UserID.String(),
		InvoiceID: inv.ID.String(),
		Invoice:   inv,
	})
	return true
}

func (s *scanJobService) fail(ctx context.Context, job *entities.EmailScanJob, cause error) {
	job.Status = StatusFailed
	job.ErrorMessage = cause.Error()
	if err := s.scanJobRepository.UpdateScanJob(ctx, job); err != nil {
		log.Printf("failed to mark scan job %s as failed: %v", job.ID.String(), err)
	}
}

func (s *scanJobService) getOwned(ctx context.Context, id string, userID string) (*entities.EmailScanJob, error) {
	job, err := s.scanJobRepository.GetScanJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScanJobNotFound
		}
		return nil, err
	}
	if job.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}
	return job, nil
}

func toScanJobResponse(job *entities.EmailScanJob) domain.ScanJobResponse {
	return domain.ScanJobResponse{
		ID:            job.ID.String(),
		EmailAddress:  job.EmailAddress,
		DateFrom:      job.DateFrom,
		DateTo:        job.DateTo,
		Status:        job.Status,
		EmailsScanned: job.EmailsScanned,
		InvoicesFound: job.InvoicesFound,
		ErrorMessage:  job.ErrorMessage,
		CompletedAt:   job.CompletedAt,
		CreatedAt:     job.CreatedAt,
	}
}
