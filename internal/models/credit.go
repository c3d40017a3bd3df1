package models

import "time"

// CreditCustomer is the aggregate of all open credit bills sharing a phone
// number. It is derived on every query and never persisted. The bson tags
// match the $group stage that produces it; LastPaymentDate is the max bill
// updated_at, an approximation rather than an audited payment timestamp.
type CreditCustomer struct {
	CustomerPhone    string    `bson:"_id" json:"customer_phone"`
	CustomerName     string    `bson:"customer_name" json:"customer_name"`
	TotalAmount      float64   `bson:"total_amount" json:"total_amount"`
	PaidAmount       float64   `bson:"paid_amount" json:"paid_amount"`
	RemainingBalance float64   `bson:"remaining_balance" json:"remaining_balance"`
	LastPaymentDate  time.Time `bson:"last_payment_date" json:"last_payment_date"`
	BillCount        int       `bson:"bill_count" json:"bill_count"`
	BillIDs          []string  `bson:"bills" json:"bills"`
}
