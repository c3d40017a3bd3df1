package models

import "time"

// Payment is an append-only ledger entry recording one payment against a
// credit bill. Customer fields are a snapshot of the bill at payment time.
type Payment struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	BillID        string    `bson:"bill_id" json:"bill_id"`
	CustomerPhone string    `bson:"customer_phone" json:"customer_phone"`
	CustomerName  string    `bson:"customer_name" json:"customer_name"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentDate   time.Time `bson:"payment_date" json:"payment_date"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
}
