package models

// Pricing modes select which customer-facing price tier a bill's line items
// were sold at.
const (
	PricingModeCustomer  = "customer"
	PricingModeCarpenter = "carpenter"
)

// Bill types.
const (
	BillTypePaid   = "paid"
	BillTypeCredit = "credit"
)

// BillLineItem is a line within a bill, embedded rather than standalone.
// Subtotal and Profit are recomputed server-side from price and quantity.
type BillLineItem struct {
	ItemID    string  `bson:"item_id" json:"item_id"`
	ItemName  string  `bson:"item_name" json:"item_name"` // Denormalized for display
	CostPrice float64 `bson:"cost_price" json:"cost_price"`
	SalePrice float64 `bson:"sale_price" json:"sale_price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Subtotal  float64 `bson:"subtotal" json:"subtotal"` // sale_price * quantity
	Profit    float64 `bson:"profit" json:"profit"`     // (sale_price - cost_price) * quantity
}

// Bill is a sale record. RemainingBalance is set only for credit bills and
// always equals TotalAmount - AmountPaid; paid bills carry nil.
type Bill struct {
	Base             `bson:",inline"`
	BillNumber       string         `bson:"bill_number" json:"bill_number"` // BILL-YYYYMMDD-NNN, immutable
	Items            []BillLineItem `bson:"items" json:"items"`
	PricingMode      string         `bson:"pricing_mode" json:"pricing_mode"`
	TotalAmount      float64        `bson:"total_amount" json:"total_amount"`
	AmountPaid       float64        `bson:"amount_paid" json:"amount_paid"`
	Profit           float64        `bson:"profit" json:"profit"`
	BillType         string         `bson:"bill_type" json:"bill_type"`
	CustomerName     string         `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	CustomerPhone    string         `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
	RemainingBalance *float64       `bson:"remaining_balance,omitempty" json:"remaining_balance,omitempty"`
}

// IsCredit reports whether the bill tracks an outstanding balance.
func (b *Bill) IsCredit() bool {
	return b.BillType == BillTypeCredit
}
