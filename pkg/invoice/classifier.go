package invoice

import (
	"strings"
)

// Expense category labels. Categories are display-only: they are recomputed
// from seller name + invoice type on every aggregation pass and never
// persisted, so rule changes retroactively apply to historical views.
const (
	CategoryRail           = "High-speed rail"
	CategoryFlight         = "Flight"
	CategoryTransport      = "Taxi & transport"
	CategoryDining         = "Dining"
	CategoryLodging        = "Lodging"
	CategoryOfficeSupplies = "Office supplies"
	CategoryCommunications = "Communications"
	CategoryMedical        = "Medical"
	CategoryRetail         = "Retail"
	CategoryAutomotive     = "Automotive"
	CategoryOtherServices  = "Other services"
	CategoryOther          = "Other"
)

type categoryRule struct {
	category string
	keywords []string
}

// Rule order is significant: the first rule with any keyword hit wins, so a
// seller matching both rail and flight keywords always lands on rail.
var categoryRules = []categoryRule{
	{CategoryRail, []string{"高铁", "铁路", "火车", "railway", "train", "12306"}},
	{CategoryFlight, []string{"机票", "航空", "航班", "飞机", "flight", "airline"}},
	{CategoryTransport, []string{"出租", "打车", "滴滴", "客运", "公交", "地铁", "taxi", "transport"}},
	{CategoryDining, []string{"餐饮", "餐厅", "饭店", "酒楼", "咖啡", "restaurant", "dining", "catering"}},
	{CategoryLodging, []string{"酒店", "宾馆", "住宿", "hotel", "lodging"}},
	{CategoryOfficeSupplies, []string{"办公", "文具", "文化用品", "office", "stationery"}},
	{CategoryCommunications, []string{"通信", "电信", "移动", "联通", "telecom", "communication"}},
	{CategoryMedical, []string{"医院", "医疗", "诊所", "药", "hospital", "medical", "pharmacy", "clinic"}},
	{CategoryRetail, []string{"超市", "商场", "便利", "百货", "商贸", "supermarket", "retail", "mart"}},
	{CategoryAutomotive, []string{"加油", "石油", "石化", "汽车", "停车", "petro", "parking", "automotive"}},
	{CategoryOtherServices, []string{"服务", "咨询", "科技", "service", "consulting", "technology"}},
}

// Classify assigns one expense category from the seller name and invoice
// type. Matching is plain substring search over the lower-cased concatenation
// of both inputs; unmatched sellers fall through to CategoryOther.
func Classify(sellerName, invoiceType string) string {
	haystack := strings.ToLower(sellerName + " " + invoiceType)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
