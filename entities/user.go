package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	Role        string    `json:"role"` // "user", "admin"
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	TaxNumber   string    `json:"tax_number,omitempty"`

	Timestamp
}
