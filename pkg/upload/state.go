package upload

import (
	"invoice-manager/domain"
	"invoice-manager/entities"
)

// Upload file statuses. Each uploaded file moves through a small state
// machine: pending -> recognizing -> recognized|failed|duplicate ->
// saving -> saved|failed. Failed and recognized files can re-enter
// recognizing via manual retry.
const (
	StatusPending     = "pending"
	StatusRecognizing = "recognizing"
	StatusRecognized  = "recognized"
	StatusFailed      = "failed"
	StatusDuplicate   = "duplicate"
	StatusSaving      = "saving"
	StatusSaved       = "saved"
)

var allowedTransitions = map[string][]string{
	StatusPending:     {StatusRecognizing},
	StatusRecognizing: {StatusRecognized, StatusFailed, StatusDuplicate},
	StatusRecognized:  {StatusSaving, StatusRecognizing},
	StatusDuplicate:   {StatusSaving, StatusRecognizing},
	StatusFailed:      {StatusRecognizing},
	StatusSaving:      {StatusSaved, StatusFailed},
	StatusSaved:       {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition validates and applies a status change on the entity.
func transition(file *entities.UploadedFile, to string) error {
	if !CanTransition(file.Status, to) {
		return domain.ErrInvalidStatusChange
	}
	file.Status = to
	return nil
}
