package invoice

import (
	"context"
	"errors"

	"invoice-manager/entities"

	"gorm.io/gorm"
)

type (
	InvoiceRepository interface {
		CreateInvoice(ctx context.Context, invoice *entities.Invoice) error
		GetInvoiceByID(ctx context.Context, id string) (*entities.Invoice, error)
		GetInvoiceByChecksum(ctx context.Context, userID, checksum string) (*entities.Invoice, error)
		UpdateInvoice(ctx context.Context, invoice *entities.Invoice) error
		DeleteInvoice(ctx context.Context, id string) error
		GetInvoices(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Invoice, int64, error)
		GetAllInvoices(ctx context.Context, userID string) ([]*entities.Invoice, error)
	}

	invoiceRepository struct {
		db *gorm.DB
	}
)

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) CreateInvoice(ctx context.Context, invoice *entities.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*entities.Invoice, error) {
	var invoice entities.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetInvoiceByChecksum(ctx context.Context, userID, checksum string) (*entities.Invoice, error) {
	var invoice entities.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND checksum = ?", userID, checksum).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) UpdateInvoice(ctx context.Context, invoice *entities.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) DeleteInvoice(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Invoice{}).Error
}

func (r *invoiceRepository) GetInvoices(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Invoice, int64, error) {
	var invoices []*entities.Invoice
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.Invoice{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("invoice_date desc").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, count, nil
}

func (r *invoiceRepository) GetAllInvoices(ctx context.Context, userID string) ([]*entities.Invoice, error) {
	var invoices []*entities.Invoice
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
