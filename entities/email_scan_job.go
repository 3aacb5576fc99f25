package entities

import (
	"time"

	"github.com/google/uuid"
)

type EmailScanJob struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`

	EmailAddress string    `json:"email_address"`
	DateFrom     time.Time `json:"date_from"`
	DateTo       time.Time `json:"date_to"`

	Status        string `gorm:"index" json:"status"` // "pending", "running", "completed", "failed"
	EmailsScanned int    `json:"emails_scanned"`
	InvoicesFound int    `json:"invoices_found"`
	ErrorMessage  string `json:"error_message,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
