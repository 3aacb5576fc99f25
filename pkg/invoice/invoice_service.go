package invoice

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"invoice-manager/domain"
	"invoice-manager/entities"
	"invoice-manager/pkg/realtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InvoiceService interface {
		CreateInvoice(ctx context.Context, req domain.CreateInvoiceRequest, userID string) (domain.InvoiceResponse, error)
		GetInvoices(ctx context.Context, userID string, status string, page, limit int) ([]domain.InvoiceResponse, int64, error)
		GetInvoiceByID(ctx context.Context, id string, userID string) (domain.InvoiceResponse, error)
		UpdateInvoice(ctx context.Context, id string, req domain.UpdateInvoiceRequest, userID string) error
		DeleteInvoice(ctx context.Context, id string, userID string) error
		UpdateInvoiceStatus(ctx context.Context, id string, req domain.UpdateInvoiceStatusRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (Summary, error)
		ExportCSV(ctx context.Context, userID string, status string) ([]byte, error)
		Watch(ctx context.Context, userID string) ([]domain.InvoiceResponse, <-chan realtime.Event, func(), error)
	}

	invoiceService struct {
		invoiceRepository InvoiceRepository
		hub               *realtime.Hub
	}
)

func NewInvoiceService(invoiceRepository InvoiceRepository, hub *realtime.Hub) InvoiceService {
	return &invoiceService{
		invoiceRepository: invoiceRepository,
		hub:               hub,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req domain.CreateInvoiceRequest, userID string) (domain.InvoiceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InvoiceResponse{}, domain.ErrParseUUID
	}

	inv := &entities.Invoice{
		ID:               uuid.New(),
		UserID:           userUUID,
		InvoiceType:      req.InvoiceType,
		InvoiceNumber:    req.InvoiceNumber,
		InvoiceCode:      req.InvoiceCode,
		InvoiceDate:      parseInvoiceDate(req.InvoiceDate),
		SellerName:       req.SellerName,
		SellerTaxNumber:  req.SellerTaxNumber,
		BuyerName:        req.BuyerName,
		BuyerTaxNumber:   req.BuyerTaxNumber,
		TotalAmount:      req.TotalAmount,
		TaxAmount:        req.TaxAmount,
		AmountWithoutTax: req.AmountWithoutTax,
		Remarks:          req.Remarks,
		TrainNumber:      req.TrainNumber,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
		SeatType:         req.SeatType,
		SeatNumber:       req.SeatNumber,
		PassengerName:    req.PassengerName,
		PassengerID:      req.PassengerID,
		Status:           StatusUnreimbursed,
		FileURL:          req.FileURL,
		Checksum:         req.Checksum,
	}

	if err := s.invoiceRepository.CreateInvoice(ctx, inv); err != nil {
		return domain.InvoiceResponse{}, err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventInsert,
		UserID:    userID,
		InvoiceID: inv.ID.String(),
		Invoice:   inv,
	})

	return toInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, userID string, status string, page, limit int) ([]domain.InvoiceResponse, int64, error) {
	invoices, count, err := s.invoiceRepository.GetInvoices(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.InvoiceResponse
	for _, inv := range invoices {
		response = append(response, toInvoiceResponse(inv))
	}
	return response, count, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, id string, userID string) (domain.InvoiceResponse, error) {
	inv, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return toInvoiceResponse(inv), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req domain.UpdateInvoiceRequest, userID string) error {
	inv, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.InvoiceNumber != "" {
		inv.InvoiceNumber = req.InvoiceNumber
	}
	if req.InvoiceCode != "" {
		inv.InvoiceCode = req.InvoiceCode
	}
	if req.InvoiceDate != "" {
		inv.InvoiceDate = parseInvoiceDate(req.InvoiceDate)
	}
	if req.SellerName != "" {
		inv.SellerName = req.SellerName
	}
	if req.SellerTaxNumber != "" {
		inv.SellerTaxNumber = req.SellerTaxNumber
	}
	if req.BuyerName != "" {
		inv.BuyerName = req.BuyerName
	}
	if req.BuyerTaxNumber != "" {
		inv.BuyerTaxNumber = req.BuyerTaxNumber
	}
	if req.TotalAmount != 0 {
		inv.TotalAmount = req.TotalAmount
	}
	if req.TaxAmount != 0 {
		inv.TaxAmount = req.TaxAmount
	}
	if req.AmountWithoutTax != 0 {
		inv.AmountWithoutTax = req.AmountWithoutTax
	}
	if req.Remarks != "" {
		inv.Remarks = req.Remarks
	}

	if err := s.invoiceRepository.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventUpdate,
		UserID:    userID,
		InvoiceID: inv.ID.String(),
		Invoice:   inv,
	})
	return nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string, userID string) error {
	inv, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepository.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventDelete,
		UserID:    userID,
		InvoiceID: inv.ID.String(),
	})
	return nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, req domain.UpdateInvoiceStatusRequest, userID string) error {
	if req.Status != StatusUnreimbursed && req.Status != StatusReimbursed {
		return domain.ErrInvalidInvoiceStatus
	}

	inv, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	inv.Status = req.Status
	if err := s.invoiceRepository.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventUpdate,
		UserID:    userID,
		InvoiceID: inv.ID.String(),
		Invoice:   inv,
	})
	return nil
}

func (s *invoiceService) GetDashboardStats(ctx context.Context, userID string) (Summary, error) {
	invoices, err := s.invoiceRepository.GetAllInvoices(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(invoices, time.Now()), nil
}

func (s *invoiceService) ExportCSV(ctx context.Context, userID string, status string) ([]byte, error) {
	invoices, err := s.invoiceRepository.GetAllInvoices(ctx, userID)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{"invoice_number", "invoice_date", "invoice_type", "seller_name", "buyer_name", "total_amount", "tax_amount", "status", "category"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if status != "all" && status != "" && inv.Status != status {
			continue
		}
		record := []string{
			inv.InvoiceNumber,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.InvoiceType,
			inv.SellerName,
			inv.BuyerName,
			fmt.Sprintf("%.2f", amountOf(inv)),
			fmt.Sprintf("%.2f", inv.TaxAmount),
			inv.Status,
			Classify(inv.SellerName, inv.InvoiceType),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Watch subscribes to the user's change feed. The hub collection is seeded
// from the database on the first subscription so the snapshot is complete.
func (s *invoiceService) Watch(ctx context.Context, userID string) ([]domain.InvoiceResponse, <-chan realtime.Event, func(), error) {
	snapshot, ch, unsubscribe := s.hub.Subscribe(userID)
	if len(snapshot) == 0 {
		invoices, err := s.invoiceRepository.GetAllInvoices(ctx, userID)
		if err != nil {
			unsubscribe()
			return nil, nil, nil, err
		}
		s.hub.Seed(userID, invoices)
		snapshot = invoices
	}

	var response []domain.InvoiceResponse
	for _, inv := range snapshot {
		response = append(response, toInvoiceResponse(inv))
	}
	return response, ch, unsubscribe, nil
}

func (s *invoiceService) getOwned(ctx context.Context, id string, userID string) (*entities.Invoice, error) {
	inv, err := s.invoiceRepository.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	if inv.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedInvoiceUser
	}
	return inv, nil
}

func toInvoiceResponse(inv *entities.Invoice) domain.InvoiceResponse {
	return domain.InvoiceResponse{
		ID:               inv.ID.String(),
		InvoiceType:      inv.InvoiceType,
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceCode:      inv.InvoiceCode,
		InvoiceDate:      inv.InvoiceDate,
		SellerName:       inv.SellerName,
		SellerTaxNumber:  inv.SellerTaxNumber,
		BuyerName:        inv.BuyerName,
		BuyerTaxNumber:   inv.BuyerTaxNumber,
		TotalAmount:      inv.TotalAmount,
		TaxAmount:        inv.TaxAmount,
		AmountWithoutTax: inv.AmountWithoutTax,
		Remarks:          inv.Remarks,
		TrainNumber:      inv.TrainNumber,
		DepartureStation: inv.DepartureStation,
		ArrivalStation:   inv.ArrivalStation,
		SeatType:         inv.SeatType,
		SeatNumber:       inv.SeatNumber,
		PassengerName:    inv.PassengerName,
		PassengerID:      inv.PassengerID,
		Status:           inv.Status,
		Category:         Classify(inv.SellerName, inv.InvoiceType),
		FileURL:          inv.FileURL,
		CreatedAt:        inv.CreatedAt,
	}
}

// parseInvoiceDate is deliberately lenient: an unparseable date falls back to
// today instead of rejecting the request, matching what the OCR normalizer
// does with partial results.
func parseInvoiceDate(raw string) time.Time {
	for _, layout := range []string{"2006-01-02", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
