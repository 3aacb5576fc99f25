package ocr

import (
	"strconv"
	"strings"
	"time"
)

// railwayTicketMarker appears in the title of electronic railway tickets
// issued after the 2024 fapiao reform.
const railwayTicketMarker = "铁路电子客票"

// fieldMapping pairs the canonical snake_case name under "fields" with the
// camelCase top-level name legacy responses used. One table instead of
// per-field fallback expressions so the dual-schema support stays testable.
type fieldMapping struct {
	canonical string
	legacy    string
}

var stringMappings = []fieldMapping{
	{"invoice_number", "invoiceNumber"},
	{"invoice_code", "invoiceCode"},
	{"invoice_date", "invoiceDate"},
	{"seller_name", "sellerName"},
	{"seller_tax_number", "sellerTaxNumber"},
	{"buyer_name", "buyerName"},
	{"buyer_tax_number", "buyerTaxNumber"},
	{"remarks", "remarks"},
	{"train_number", "trainNumber"},
	{"departure_station", "departureStation"},
	{"arrival_station", "arrivalStation"},
	{"seat_type", "seatType"},
	{"seat_number", "seatNumber"},
	{"passenger_name", "passengerName"},
	{"passenger_id", "passengerId"},
}

var amountMappings = []fieldMapping{
	{"total_amount", "totalAmount"},
	{"tax_amount", "taxAmount"},
	{"amount_without_tax", "amountWithoutTax"},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"2006年01月02日",
}

// Extract normalizes a raw OCR response into a Draft. It never fails hard:
// a nil or unusable response still yields a draft with default values, and
// the caller is expected to gate on Assess. total = net + tax is deliberately
// not enforced here; partial OCR output is accepted as-is.
func Extract(resp *RawResponse) Draft {
	draft := Draft{InvoiceType: InvoiceTypeVAT}
	if resp == nil {
		draft.InvoiceDate = time.Now().Format("2006-01-02")
		return draft
	}

	draft.InvoiceType = detectInvoiceType(resp)

	values := map[string]string{}
	for _, m := range stringMappings {
		values[m.canonical] = stringField(resp, m)
	}
	amounts := map[string]float64{}
	for _, m := range amountMappings {
		amounts[m.canonical] = amountField(resp, m)
	}

	draft.InvoiceNumber = values["invoice_number"]
	draft.InvoiceCode = values["invoice_code"]
	draft.InvoiceDate = normalizeDate(values["invoice_date"])
	draft.SellerName = values["seller_name"]
	draft.SellerTaxNumber = values["seller_tax_number"]
	draft.BuyerName = values["buyer_name"]
	draft.BuyerTaxNumber = values["buyer_tax_number"]
	draft.Remarks = values["remarks"]
	draft.TrainNumber = values["train_number"]
	draft.DepartureStation = values["departure_station"]
	draft.ArrivalStation = values["arrival_station"]
	draft.SeatType = values["seat_type"]
	draft.SeatNumber = values["seat_number"]
	draft.PassengerName = values["passenger_name"]
	draft.PassengerID = values["passenger_id"]
	draft.TotalAmount = amounts["total_amount"]
	draft.TaxAmount = amounts["tax_amount"]
	draft.AmountWithoutTax = amounts["amount_without_tax"]

	return draft
}

// detectInvoiceType checks marker fields in priority order: the explicit
// invoice_type value, then the document title, then the VAT default.
func detectInvoiceType(resp *RawResponse) string {
	explicit := resp.InvoiceType
	if explicit == "" {
		explicit = asString(resp.Fields["invoice_type"])
	}
	if explicit != "" {
		lowered := strings.ToLower(explicit)
		if strings.Contains(lowered, "train") || strings.Contains(explicit, "铁路") {
			return InvoiceTypeTrainTicket
		}
		if lowered == InvoiceTypeVAT || strings.Contains(lowered, "vat") {
			return InvoiceTypeVAT
		}
	}

	title := resp.Title
	if title == "" {
		title = asString(resp.Fields["title"])
	}
	if strings.Contains(title, railwayTicketMarker) ||
		strings.Contains(strings.ToLower(title), "railway electronic ticket") {
		return InvoiceTypeTrainTicket
	}

	return InvoiceTypeVAT
}

// stringField reads the canonical fields entry first and only then the legacy
// top-level value.
func stringField(resp *RawResponse, m fieldMapping) string {
	if v, ok := resp.Fields[m.canonical]; ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	if v, ok := resp.Legacy[m.legacy]; ok {
		return asString(v)
	}
	return ""
}

func amountField(resp *RawResponse, m fieldMapping) float64 {
	if v, ok := resp.Fields[m.canonical]; ok {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	if v, ok := resp.Legacy[m.legacy]; ok {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return 0
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(n, "¥"), ",", ""))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// normalizeDate parses the OCR date into ISO 8601. Unparseable or missing
// dates fall back to today; OCR output is often partial and rejecting the
// whole draft over a date would lose user data.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return time.Now().Format("2006-01-02")
}
