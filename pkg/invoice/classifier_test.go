package invoice

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		sellerName  string
		invoiceType string
		want        string
	}{
		{"railway seller", "中国铁路12306", "train_ticket", CategoryRail},
		{"train invoice type alone", "", "train_ticket", CategoryRail},
		{"airline", "中国南方航空股份有限公司", "vat_invoice", CategoryFlight},
		{"taxi", "滴滴出行科技有限公司", "vat_invoice", CategoryTransport},
		{"restaurant", "海底捞餐饮有限公司", "vat_invoice", CategoryDining},
		{"hotel", "如家酒店管理有限公司", "vat_invoice", CategoryLodging},
		{"stationery", "晨光文具股份有限公司", "vat_invoice", CategoryOfficeSupplies},
		{"telecom", "中国移动通信集团", "vat_invoice", CategoryCommunications},
		{"pharmacy", "老百姓大药房", "vat_invoice", CategoryMedical},
		{"supermarket", "永辉超市股份有限公司", "vat_invoice", CategoryRetail},
		{"gas station", "中国石化销售有限公司", "vat_invoice", CategoryAutomotive},
		{"consulting", "德勤咨询有限公司", "vat_invoice", CategoryOtherServices},
		{"english keyword case-insensitive", "Hilton HOTEL Group", "vat_invoice", CategoryLodging},
		{"no match", "张三个体工商户", "vat_invoice", CategoryOther},
		{"empty inputs", "", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.sellerName, tt.invoiceType); got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.sellerName, tt.invoiceType, got, tt.want)
			}
		})
	}
}

// A seller hitting both rail and flight keywords must land on rail because
// rule order decides ties.
func TestClassify_RuleOrderPrecedence(t *testing.T) {
	if got := Classify("铁路航空联运服务公司", "vat_invoice"); got != CategoryRail {
		t.Errorf("Classify = %q, want %q", got, CategoryRail)
	}
	// 出租 (transport) outranks both 汽车 (automotive) and 服务 (other services).
	if got := Classify("出租汽车服务公司", "vat_invoice"); got != CategoryTransport {
		t.Errorf("Classify = %q, want %q", got, CategoryTransport)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("某某科技服务有限公司", "vat_invoice")
	for i := 0; i < 100; i++ {
		if got := Classify("某某科技服务有限公司", "vat_invoice"); got != first {
			t.Fatalf("classification not deterministic: %q then %q", first, got)
		}
	}
}
