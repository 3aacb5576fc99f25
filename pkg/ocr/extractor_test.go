package ocr

import (
	"encoding/json"
	"testing"
	"time"
)

func TestExtract_PrefersFieldsOverLegacy(t *testing.T) {
	resp := &RawResponse{
		Fields: map[string]any{"invoice_number": "INV-NEW"},
		Legacy: map[string]any{"invoiceNumber": "INV-OLD"},
	}

	draft := Extract(resp)
	if draft.InvoiceNumber != "INV-NEW" {
		t.Errorf("expected fields value to win, got %q", draft.InvoiceNumber)
	}
}

func TestExtract_LegacyFallback(t *testing.T) {
	resp := &RawResponse{
		Fields: map[string]any{},
		Legacy: map[string]any{
			"invoiceNumber":   "LEG-001",
			"sellerName":      "某某科技有限公司",
			"totalAmount":     "1,234.50",
			"sellerTaxNumber": "91110000000000000X",
		},
	}

	draft := Extract(resp)
	if draft.InvoiceNumber != "LEG-001" {
		t.Errorf("InvoiceNumber = %q, want LEG-001", draft.InvoiceNumber)
	}
	if draft.SellerName != "某某科技有限公司" {
		t.Errorf("SellerName = %q", draft.SellerName)
	}
	if draft.TotalAmount != 1234.50 {
		t.Errorf("TotalAmount = %v, want 1234.50", draft.TotalAmount)
	}
	if draft.SellerTaxNumber != "91110000000000000X" {
		t.Errorf("SellerTaxNumber = %q", draft.SellerTaxNumber)
	}
}

func TestExtract_DefaultsWhenAbsent(t *testing.T) {
	draft := Extract(&RawResponse{})

	if draft.InvoiceNumber != "" || draft.SellerName != "" || draft.BuyerName != "" {
		t.Errorf("expected empty string defaults, got %+v", draft)
	}
	if draft.TotalAmount != 0 || draft.TaxAmount != 0 {
		t.Errorf("expected zero amount defaults, got %+v", draft)
	}
	if draft.InvoiceType != InvoiceTypeVAT {
		t.Errorf("InvoiceType = %q, want %q", draft.InvoiceType, InvoiceTypeVAT)
	}
	if draft.InvoiceDate != time.Now().Format("2006-01-02") {
		t.Errorf("expected missing date to fall back to today, got %q", draft.InvoiceDate)
	}
}

func TestExtract_NilResponse(t *testing.T) {
	draft := Extract(nil)
	if draft.InvoiceType != InvoiceTypeVAT {
		t.Errorf("InvoiceType = %q, want %q", draft.InvoiceType, InvoiceTypeVAT)
	}
}

func TestDetectInvoiceType(t *testing.T) {
	tests := []struct {
		name string
		resp *RawResponse
		want string
	}{
		{
			name: "explicit train type",
			resp: &RawResponse{InvoiceType: "train_ticket"},
			want: InvoiceTypeTrainTicket,
		},
		{
			name: "explicit chinese railway type",
			resp: &RawResponse{InvoiceType: "铁路电子客票"},
			want: InvoiceTypeTrainTicket,
		},
		{
			name: "explicit vat type",
			resp: &RawResponse{InvoiceType: "vat_invoice"},
			want: InvoiceTypeVAT,
		},
		{
			name: "railway marker in title",
			resp: &RawResponse{Title: "电子发票(铁路电子客票)"},
			want: InvoiceTypeTrainTicket,
		},
		{
			name: "english railway marker in title",
			resp: &RawResponse{Title: "Railway Electronic Ticket"},
			want: InvoiceTypeTrainTicket,
		},
		{
			name: "explicit type beats title",
			resp: &RawResponse{InvoiceType: "vat_invoice", Title: "电子发票(铁路电子客票)"},
			want: InvoiceTypeVAT,
		},
		{
			name: "default",
			resp: &RawResponse{Title: "电子发票(普通发票)"},
			want: InvoiceTypeVAT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectInvoiceType(tt.resp); got != tt.want {
				t.Errorf("detectInvoiceType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_TrainTicketFields(t *testing.T) {
	resp := &RawResponse{
		InvoiceType: "train_ticket",
		Fields: map[string]any{
			"train_number":      "G1024",
			"departure_station": "北京南",
			"arrival_station":   "上海虹桥",
			"seat_type":         "二等座",
			"passenger_name":    "张三",
			"total_amount":      553.5,
		},
	}

	draft := Extract(resp)
	if draft.InvoiceType != InvoiceTypeTrainTicket {
		t.Fatalf("InvoiceType = %q", draft.InvoiceType)
	}
	if draft.TrainNumber != "G1024" || draft.DepartureStation != "北京南" || draft.ArrivalStation != "上海虹桥" {
		t.Errorf("train fields not extracted: %+v", draft)
	}
	if draft.TotalAmount != 553.5 {
		t.Errorf("TotalAmount = %v, want 553.5", draft.TotalAmount)
	}
}

// The lenient amount handling: numeric strings parse, garbage becomes zero,
// and total = net + tax is never enforced.
func TestExtract_AmountParsing(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"number", 100.5, 100.5},
		{"numeric string", "100", 100},
		{"string with yen sign", "¥88.00", 88},
		{"string with thousands separator", "1,000.25", 1000.25},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &RawResponse{Fields: map[string]any{"total_amount": tt.value}}
			if got := Extract(resp).TotalAmount; got != tt.want {
				t.Errorf("TotalAmount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"20240315", "2024-03-15"},
		{"2024年03月15日", "2024-03-15"},
	}

	for _, tt := range tests {
		if got := normalizeDate(tt.raw); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}

	if got := normalizeDate("not-a-date"); got != time.Now().Format("2006-01-02") {
		t.Errorf("expected unparseable date to fall back to today, got %q", got)
	}
}

func TestRawResponse_UnmarshalJSON(t *testing.T) {
	payload := `{
		"success": true,
		"fields": {"invoice_number": "INV1", "total_amount": "100"},
		"confidence": {"overall": 0.95},
		"invoiceNumber": "LEGACY",
		"validation": {"completeness_score": 85}
	}`

	var resp RawResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !resp.Success {
		t.Error("Success not decoded")
	}
	if resp.Confidence.Overall != 0.95 {
		t.Errorf("Confidence.Overall = %v", resp.Confidence.Overall)
	}
	if resp.Validation.CompletenessScore != 85 {
		t.Errorf("CompletenessScore = %v", resp.Validation.CompletenessScore)
	}
	if resp.Legacy["invoiceNumber"] != "LEGACY" {
		t.Errorf("legacy top-level field not captured: %v", resp.Legacy)
	}

	// End-to-end: the same payload normalizes into a recognized draft.
	draft := Extract(&resp)
	if draft.InvoiceNumber != "INV1" {
		t.Errorf("InvoiceNumber = %q, want INV1", draft.InvoiceNumber)
	}
	if draft.TotalAmount != 100 {
		t.Errorf("TotalAmount = %v, want 100", draft.TotalAmount)
	}
	assessment := Assess(&resp)
	if assessment.Status != StatusRecognized || assessment.Progress != 90 {
		t.Errorf("assessment = %+v, want recognized/90", assessment)
	}
}

func TestRawResponse_UnmarshalBareConfidenceNumber(t *testing.T) {
	var resp RawResponse
	if err := json.Unmarshal([]byte(`{"confidence": 0.7}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Confidence.Overall != 0.7 {
		t.Errorf("Confidence.Overall = %v, want 0.7", resp.Confidence.Overall)
	}
}
