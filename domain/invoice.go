package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateInvoice  = "invoice created successfully"
	MessageSuccessGetInvoices    = "invoices retrieved successfully"
	MessageSuccessGetInvoice     = "invoice retrieved successfully"
	MessageSuccessUpdateInvoice  = "invoice updated successfully"
	MessageSuccessDeleteInvoice  = "invoice deleted successfully"
	MessageSuccessUpdateStatus   = "invoice status updated successfully"
	MessageSuccessGetDashboard   = "dashboard statistics retrieved successfully"
	MessageSuccessExportInvoices = "invoices exported successfully"

	MessageFailedCreateInvoice  = "failed to create invoice"
	MessageFailedGetInvoices    = "failed to retrieve invoices"
	MessageFailedGetInvoice     = "failed to retrieve invoice"
	MessageFailedUpdateInvoice  = "failed to update invoice"
	MessageFailedDeleteInvoice  = "failed to delete invoice"
	MessageFailedUpdateStatus   = "failed to update invoice status"
	MessageFailedGetDashboard   = "failed to retrieve dashboard statistics"
	MessageFailedExportInvoices = "failed to export invoices"

	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvalidInvoiceStatus    = errors.New("invalid invoice status")
	ErrUnauthorizedInvoiceUser = errors.New("unauthorized access to invoice")
	ErrDuplicateInvoice        = errors.New("invoice with the same content already exists")
)

type (
	CreateInvoiceRequest struct {
		InvoiceType      string  `json:"invoice_type" validate:"required,oneof=vat_invoice train_ticket"`
		InvoiceNumber    string  `json:"invoice_number" validate:"required"`
		InvoiceCode      string  `json:"invoice_code"`
		InvoiceDate      string  `json:"invoice_date" validate:"required"`
		SellerName       string  `json:"seller_name"`
		SellerTaxNumber  string  `json:"seller_tax_number"`
		BuyerName        string  `json:"buyer_name"`
		BuyerTaxNumber   string  `json:"buyer_tax_number"`
		TotalAmount      float64 `json:"total_amount"`
		TaxAmount        float64 `json:"tax_amount"`
		AmountWithoutTax float64 `json:"amount_without_tax"`
		Remarks          string  `json:"remarks"`

		TrainNumber      string `json:"train_number"`
		DepartureStation string `json:"departure_station"`
		ArrivalStation   string `json:"arrival_station"`
		SeatType         string `json:"seat_type"`
		SeatNumber       string `json:"seat_number"`
		PassengerName    string `json:"passenger_name"`
		PassengerID      string `json:"passenger_id"`

		FileURL  string `json:"file_url"`
		Checksum string `json:"checksum"`
	}

	UpdateInvoiceRequest struct {
		InvoiceNumber    string  `json:"invoice_number" validate:"omitempty"`
		InvoiceCode      string  `json:"invoice_code" validate:"omitempty"`
		InvoiceDate      string  `json:"invoice_date" validate:"omitempty"`
		SellerName       string  `json:"seller_name" validate:"omitempty"`
		SellerTaxNumber  string  `json:"seller_tax_number" validate:"omitempty"`
		BuyerName        string  `json:"buyer_name" validate:"omitempty"`
		BuyerTaxNumber   string  `json:"buyer_tax_number" validate:"omitempty"`
		TotalAmount      float64 `json:"total_amount" validate:"omitempty"`
		TaxAmount        float64 `json:"tax_amount" validate:"omitempty"`
		AmountWithoutTax float64 `json:"amount_without_tax" validate:"omitempty"`
		Remarks          string  `json:"remarks" validate:"omitempty"`
	}

	UpdateInvoiceStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=unreimbursed reimbursed"`
	}

	InvoiceResponse struct {
		ID               string    `json:"id"`
		InvoiceType      string    `json:"invoice_type"`
		InvoiceNumber    string    `json:"invoice_number"`
		InvoiceCode      string    `json:"invoice_code"`
		InvoiceDate      time.Time `json:"invoice_date"`
		SellerName       string    `json:"seller_name"`
		SellerTaxNumber  string    `json:"seller_tax_number"`
		BuyerName        string    `json:"buyer_name"`
		BuyerTaxNumber   string    `json:"buyer_tax_number"`
		TotalAmount      float64   `json:"total_amount"`
		TaxAmount        float64   `json:"tax_amount"`
		AmountWithoutTax float64   `json:"amount_without_tax"`
		Remarks          string    `json:"remarks"`
		TrainNumber      string    `json:"train_number,omitempty"`
		DepartureStation string    `json:"departure_station,omitempty"`
		ArrivalStation   string    `json:"arrival_station,omitempty"`
		SeatType         string    `json:"seat_type,omitempty"`
		SeatNumber       string    `json:"seat_number,omitempty"`
		PassengerName    string    `json:"passenger_name,omitempty"`
		PassengerID      string    `json:"passenger_id,omitempty"`
		Status           string    `json:"status"`
		Category         string    `json:"category"`
		FileURL          string    `json:"file_url,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
	}
)
