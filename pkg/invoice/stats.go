package invoice

import (
	"sort"
	"time"

	"invoice-manager/entities"
)

const (
	StatusUnreimbursed = "unreimbursed"
	StatusReimbursed   = "reimbursed"
)

type (
	CategoryStat struct {
		Category string  `json:"category"`
		Count    int     `json:"count"`
		Amount   float64 `json:"amount"`
	}

	Summary struct {
		TotalInvoices      int            `json:"total_invoices"`
		TotalAmount        float64        `json:"total_amount"`
		ThisMonthCount     int            `json:"this_month_count"`
		ThisMonthAmount    float64        `json:"this_month_amount"`
		UnreimbursedCount  int            `json:"unreimbursed_count"`
		UnreimbursedAmount float64        `json:"unreimbursed_amount"`
		ReimbursedCount    int            `json:"reimbursed_count"`
		ReimbursedAmount   float64        `json:"reimbursed_amount"`
		CategoryBreakdown  []CategoryStat `json:"category_breakdown"`
	}
)

// amountOf prefers the current total_amount column and falls back to the
// legacy amount column older rows still carry.
func amountOf(inv *entities.Invoice) float64 {
	if inv.TotalAmount != 0 {
		return inv.TotalAmount
	}
	return inv.Amount
}

// Summarize folds an invoice collection into dashboard statistics. The whole
// summary is recomputed from scratch on every call; "this month" is evaluated
// against the supplied now, so results are not stable across a month
// boundary. Statuses other than the two reimbursement buckets count toward
// the totals but toward neither bucket.
func Summarize(invoices []*entities.Invoice, now time.Time) Summary {
	summary := Summary{
		TotalInvoices:     len(invoices),
		CategoryBreakdown: []CategoryStat{},
	}

	perCategory := map[string]*CategoryStat{}
	var categoryOrder []string

	for _, inv := range invoices {
		amount := amountOf(inv)
		summary.TotalAmount += amount

		if inv.InvoiceDate.Year() == now.Year() && inv.InvoiceDate.Month() == now.Month() {
			summary.ThisMonthCount++
			summary.ThisMonthAmount += amount
		}

		switch inv.Status {
		case StatusUnreimbursed:
			summary.UnreimbursedCount++
			summary.UnreimbursedAmount += amount
		case StatusReimbursed:
			summary.ReimbursedCount++
			summary.ReimbursedAmount += amount
		}

		category := Classify(inv.SellerName, inv.InvoiceType)
		stat, ok := perCategory[category]
		if !ok {
			stat = &CategoryStat{Category: category}
			perCategory[category] = stat
			categoryOrder = append(categoryOrder, category)
		}
		stat.Count++
		stat.Amount += amount
	}

	for _, category := range categoryOrder {
		summary.CategoryBreakdown = append(summary.CategoryBreakdown, *perCategory[category])
	}
	// Stable sort keeps first-seen order for equal amounts.
	sort.SliceStable(summary.CategoryBreakdown, func(i, j int) bool {
		return summary.CategoryBreakdown[i].Amount > summary.CategoryBreakdown[j].Amount
	})
	if len(summary.CategoryBreakdown) > 3 {
		summary.CategoryBreakdown = summary.CategoryBreakdown[:3]
	}

	return summary
}
