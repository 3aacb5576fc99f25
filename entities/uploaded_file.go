package entities

import (
	"github.com/google/uuid"
)

type UploadedFile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`

	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
	FileURL  string `json:"file_url"`
	Checksum string `gorm:"index" json:"checksum"`

	Status        string `gorm:"index" json:"status"` // see pkg/upload state machine
	StatusMessage string `json:"status_message,omitempty"`
	Progress      int    `json:"progress"`

	// Draft holds the normalized OCR result as JSON while the user reviews it.
	Draft        string `gorm:"type:text" json:"draft,omitempty"`
	RawOcrResult string `gorm:"type:text" json:"raw_ocr_result,omitempty"`

	// DuplicateOf points at the existing invoice when duplicate content was detected.
	DuplicateOf *uuid.UUID `json:"duplicate_of,omitempty"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
