package ocr

import (
	"encoding/json"
)

const (
	InvoiceTypeVAT         = "vat_invoice"
	InvoiceTypeTrainTicket = "train_ticket"
)

type (
	// RawResponse is the payload returned by the OCR service. Current
	// responses carry extracted values under the snake_case "fields" object;
	// older responses put camelCase fields at the top level. Unknown top-level
	// keys are kept in Legacy so the extractor can fall back to them.
	RawResponse struct {
		Success     bool
		Error       string
		InvoiceType string
		Title       string
		Fields      map[string]any
		Confidence  Confidence
		Validation  Validation
		Legacy      map[string]any
	}

	Confidence struct {
		Overall float64            `json:"overall"`
		Fields  map[string]float64 `json:"fields,omitempty"`
	}

	Validation struct {
		CompletenessScore float64  `json:"completeness_score"`
		Errors            []string `json:"errors,omitempty"`
		Warnings          []string `json:"warnings,omitempty"`
	}

	// Draft is the normalized invoice shape the rest of the application
	// consumes. Every field is always set; missing OCR data becomes an empty
	// string or zero rather than an absent key.
	Draft struct {
		InvoiceType      string  `json:"invoice_type"`
		InvoiceNumber    string  `json:"invoice_number"`
		InvoiceCode      string  `json:"invoice_code"`
		InvoiceDate      string  `json:"invoice_date"`
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
	}

	// Assessment is the quality verdict for one OCR response.
	Assessment struct {
		Status   string `json:"status"` // "recognized" or "error"
		Progress int    `json:"progress"`
		Message  string `json:"message"`
	}
)

const (
	StatusRecognized = "recognized"
	StatusError      = "error"
)

func (r *RawResponse) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	r.Legacy = make(map[string]any)
	for key, raw := range top {
		switch key {
		case "success":
			if err := json.Unmarshal(raw, &r.Success); err != nil {
				return err
			}
		case "error":
			_ = json.Unmarshal(raw, &r.Error)
		case "invoice_type":
			_ = json.Unmarshal(raw, &r.InvoiceType)
		case "title":
			_ = json.Unmarshal(raw, &r.Title)
		case "fields":
			if err := json.Unmarshal(raw, &r.Fields); err != nil {
				return err
			}
		case "confidence":
			if err := json.Unmarshal(raw, &r.Confidence); err != nil {
				// Some responses send a bare number instead of an object.
				var overall float64
				if err2 := json.Unmarshal(raw, &overall); err2 != nil {
					return err
				}
				r.Confidence = Confidence{Overall: overall}
			}
		case "validation":
			if err := json.Unmarshal(raw, &r.Validation); err != nil {
				return err
			}
		default:
			var value any
			if err := json.Unmarshal(raw, &value); err == nil {
				r.Legacy[key] = value
			}
		}
	}
	return nil
}
