package invoice

import (
	"testing"
	"time"

	"invoice-manager/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_MonthWindow(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{TotalAmount: 100, InvoiceDate: date(2026, time.March, 1), Status: StatusUnreimbursed},
		{TotalAmount: 200, InvoiceDate: date(2026, time.March, 15), Status: StatusUnreimbursed},
		{TotalAmount: 300, InvoiceDate: date(2026, time.March, 31), Status: StatusUnreimbursed},
		{TotalAmount: 50, InvoiceDate: date(2026, time.February, 28), Status: StatusUnreimbursed},
	}

	got := Summarize(invoices, now)

	if got.TotalInvoices != 4 || got.TotalAmount != 650 {
		t.Errorf("totals = %d/%v, want 4/650", got.TotalInvoices, got.TotalAmount)
	}
	if got.ThisMonthCount != 3 || got.ThisMonthAmount != 600 {
		t.Errorf("this month = %d/%v, want 3/600", got.ThisMonthCount, got.ThisMonthAmount)
	}
}

// March invoices from a different year must not count toward this month.
func TestSummarize_MonthWindowChecksYear(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{TotalAmount: 100, InvoiceDate: date(2025, time.March, 10), Status: StatusUnreimbursed},
	}

	got := Summarize(invoices, now)
	if got.ThisMonthCount != 0 {
		t.Errorf("ThisMonthCount = %d, want 0", got.ThisMonthCount)
	}
}

func TestSummarize_StatusBuckets(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{TotalAmount: 100, InvoiceDate: now, Status: StatusUnreimbursed},
		{TotalAmount: 200, InvoiceDate: now, Status: StatusReimbursed},
		{TotalAmount: 300, InvoiceDate: now, Status: "pending_review"},
	}

	got := Summarize(invoices, now)

	if got.UnreimbursedCount != 1 || got.UnreimbursedAmount != 100 {
		t.Errorf("unreimbursed = %d/%v, want 1/100", got.UnreimbursedCount, got.UnreimbursedAmount)
	}
	if got.ReimbursedCount != 1 || got.ReimbursedAmount != 200 {
		t.Errorf("reimbursed = %d/%v, want 1/200", got.ReimbursedCount, got.ReimbursedAmount)
	}
	// The unknown status still counts toward totals but toward neither bucket.
	if got.TotalInvoices != 3 || got.TotalAmount != 600 {
		t.Errorf("totals = %d/%v, want 3/600", got.TotalInvoices, got.TotalAmount)
	}
	if got.UnreimbursedCount+got.ReimbursedCount >= got.TotalInvoices {
		t.Errorf("buckets should not cover all invoices here")
	}
}

func TestSummarize_LegacyAmountFallback(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{Amount: 75, InvoiceDate: now, Status: StatusUnreimbursed},
		{TotalAmount: 25, Amount: 999, InvoiceDate: now, Status: StatusUnreimbursed},
	}

	got := Summarize(invoices, now)
	if got.TotalAmount != 100 {
		t.Errorf("TotalAmount = %v, want 100 (legacy fallback only when total is zero)", got.TotalAmount)
	}
}

func TestSummarize_CategoryBreakdown(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{TotalAmount: 500, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "如家酒店"},
		{TotalAmount: 300, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "海底捞餐饮"},
		{TotalAmount: 200, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "永辉超市"},
		{TotalAmount: 100, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "晨光文具"},
		{TotalAmount: 150, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "海底捞餐饮"},
	}

	got := Summarize(invoices, now)

	want := []CategoryStat{
		{Category: CategoryLodging, Count: 1, Amount: 500},
		{Category: CategoryDining, Count: 2, Amount: 450},
		{Category: CategoryRetail, Count: 1, Amount: 200},
	}
	if len(got.CategoryBreakdown) != 3 {
		t.Fatalf("breakdown length = %d, want 3", len(got.CategoryBreakdown))
	}
	for i, w := range want {
		g := got.CategoryBreakdown[i]
		if g != w {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, g, w)
		}
	}
}

// Categories with equal amounts keep first-seen order.
func TestSummarize_CategoryTieKeepsFirstSeenOrder(t *testing.T) {
	now := date(2026, time.March, 20)
	invoices := []*entities.Invoice{
		{TotalAmount: 100, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "永辉超市"},
		{TotalAmount: 100, InvoiceDate: now, Status: StatusUnreimbursed, SellerName: "如家酒店"},
	}

	got := Summarize(invoices, now)
	if len(got.CategoryBreakdown) != 2 {
		t.Fatalf("breakdown length = %d, want 2", len(got.CategoryBreakdown))
	}
	if got.CategoryBreakdown[0].Category != CategoryRetail || got.CategoryBreakdown[1].Category != CategoryLodging {
		t.Errorf("tie order = %q, %q; want retail first", got.CategoryBreakdown[0].Category, got.CategoryBreakdown[1].Category)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, date(2026, time.March, 20))
	if got.TotalInvoices != 0 || got.TotalAmount != 0 {
		t.Errorf("empty summary = %+v", got)
	}
	if got.CategoryBreakdown == nil || len(got.CategoryBreakdown) != 0 {
		t.Errorf("CategoryBreakdown should be an empty slice, got %#v", got.CategoryBreakdown)
	}
}
