package ocr

import "testing"

func TestAssess(t *testing.T) {
	tests := []struct {
		name         string
		resp         *RawResponse
		wantStatus   string
		wantProgress int
	}{
		{
			name:         "nil response",
			resp:         nil,
			wantStatus:   StatusError,
			wantProgress: 0,
		},
		{
			name:         "explicit error",
			resp:         &RawResponse{Error: "engine timeout", Fields: map[string]any{"invoice_number": "1"}},
			wantStatus:   StatusError,
			wantProgress: 0,
		},
		{
			name:         "no fields extracted",
			resp:         &RawResponse{Fields: map[string]any{}, Confidence: Confidence{Overall: 0.3}},
			wantStatus:   StatusError,
			wantProgress: 20,
		},
		{
			name: "legacy-only response has no fields",
			resp: &RawResponse{
				Legacy:     map[string]any{"invoiceNumber": "LEG-1"},
				Confidence: Confidence{Overall: 0.95},
			},
			wantStatus:   StatusError,
			wantProgress: 20,
		},
		{
			name: "overall confidence below half",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.49},
			},
			wantStatus:   StatusError,
			wantProgress: 20,
		},
		{
			name: "success flag wins regardless of completeness",
			resp: &RawResponse{
				Success:    true,
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.5},
				Validation: Validation{CompletenessScore: 10},
			},
			wantStatus:   StatusRecognized,
			wantProgress: 90,
		},
		{
			name: "high completeness and confidence",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.9},
				Validation: Validation{CompletenessScore: 70},
			},
			wantStatus:   StatusRecognized,
			wantProgress: 80,
		},
		{
			name: "medium completeness and confidence",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.8},
				Validation: Validation{CompletenessScore: 50},
			},
			wantStatus:   StatusRecognized,
			wantProgress: 70,
		},
		{
			name: "low completeness and confidence",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.6},
				Validation: Validation{CompletenessScore: 30},
			},
			wantStatus:   StatusRecognized,
			wantProgress: 60,
		},
		{
			name: "below every tier",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.55},
				Validation: Validation{CompletenessScore: 20},
			},
			wantStatus:   StatusError,
			wantProgress: 30,
		},
		{
			name: "good completeness but weak confidence",
			resp: &RawResponse{
				Fields:     map[string]any{"invoice_number": "1"},
				Confidence: Confidence{Overall: 0.59},
				Validation: Validation{CompletenessScore: 90},
			},
			wantStatus:   StatusError,
			wantProgress: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.resp)
			if got.Status != tt.wantStatus || got.Progress != tt.wantProgress {
				t.Errorf("Assess() = %s/%d, want %s/%d", got.Status, got.Progress, tt.wantStatus, tt.wantProgress)
			}
		})
	}
}
