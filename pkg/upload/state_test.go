package upload

import (
	"errors"
	"testing"

	"invoice-manager/domain"
	"invoice-manager/entities"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusRecognizing, true},
		{StatusRecognizing, StatusRecognized, true},
		{StatusRecognizing, StatusFailed, true},
		{StatusRecognizing, StatusDuplicate, true},
		{StatusRecognized, StatusSaving, true},
		{StatusRecognized, StatusRecognizing, true}, // manual retry
		{StatusDuplicate, StatusSaving, true},       // force save
		{StatusDuplicate, StatusRecognizing, true},
		{StatusFailed, StatusRecognizing, true},
		{StatusSaving, StatusSaved, true},
		{StatusSaving, StatusFailed, true},

		{StatusPending, StatusRecognized, false},
		{StatusPending, StatusSaved, false},
		{StatusRecognizing, StatusSaving, false},
		{StatusRecognized, StatusSaved, false},
		{StatusSaved, StatusRecognizing, false},
		{StatusSaved, StatusSaving, false},
		{StatusFailed, StatusSaving, false},
		{"bogus", StatusRecognizing, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransition(t *testing.T) {
	file := &entities.UploadedFile{Status: StatusPending}

	if err := transition(file, StatusRecognizing); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if file.Status != StatusRecognizing {
		t.Errorf("status = %q, want %q", file.Status, StatusRecognizing)
	}

	err := transition(file, StatusSaved)
	if !errors.Is(err, domain.ErrInvalidStatusChange) {
		t.Errorf("err = %v, want ErrInvalidStatusChange", err)
	}
	if file.Status != StatusRecognizing {
		t.Errorf("status must not change on rejected transition, got %q", file.Status)
	}
}
