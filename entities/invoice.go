package entities

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`

	InvoiceType      string    `json:"invoice_type"` // "vat_invoice", "train_ticket"
	InvoiceNumber    string    `gorm:"index" json:"invoice_number"`
	InvoiceCode      string    `json:"invoice_code"`
	InvoiceDate      time.Time `json:"invoice_date"`
	SellerName       string    `json:"seller_name"`
	SellerTaxNumber  string    `json:"seller_tax_number"`
	BuyerName        string    `json:"buyer_name"`
	BuyerTaxNumber   string    `json:"buyer_tax_number"`
	TotalAmount      float64   `json:"total_amount"`
	TaxAmount        float64   `json:"tax_amount"`
	AmountWithoutTax float64   `json:"amount_without_tax"`
	Remarks          string    `gorm:"type:text" json:"remarks"`

	// Train ticket specific fields
	TrainNumber      string `json:"train_number,omitempty"`
	DepartureStation string `json:"departure_station,omitempty"`
	ArrivalStation   string `json:"arrival_station,omitempty"`
	SeatType         string `json:"seat_type,omitempty"`
	SeatNumber       string `json:"seat_number,omitempty"`
	PassengerName    string `json:"passenger_name,omitempty"`
	PassengerID      string `json:"passenger_id,omitempty"`

	Status   string `gorm:"index" json:"status"` // "unreimbursed", "reimbursed"
	FileURL  string `json:"file_url,omitempty"`
	Checksum string `gorm:"index" json:"checksum,omitempty"`

	// Amount is the pre-migration column some older rows still carry; readers
	// fall back to it when TotalAmount is zero.
	Amount float64 `json:"amount,omitempty"`

	RawOcrResult string `gorm:"type:text" json:"raw_ocr_result,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
