package models

// Item is a catalog entry with the three price tiers. Bills store a
// denormalized snapshot of these fields at sale time, not a live reference.
type Item struct {
	Base           `bson:",inline"`
	Name           string  `bson:"name" json:"name"`
	CostPrice      float64 `bson:"cost_price" json:"cost_price"`
	CustomerPrice  float64 `bson:"customer_price" json:"customer_price"`
	CarpenterPrice float64 `bson:"carpenter_price" json:"carpenter_price"`
}
