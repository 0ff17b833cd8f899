package models

import "time"

type StockAction string

const (
	ActionIssue  StockAction = "ISSUE"
	ActionReturn StockAction = "RETURN"
)

type InventoryItem struct {
	ID        string    `json:"_id"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockLevel buckets the quantity the way the inventory grid colours it.
func (i InventoryItem) StockLevel() string {
	switch {
	case i.Quantity > 10:
		return "ok"
	case i.Quantity > 5:
		return "low"
	default:
		return "critical"
	}
}

type InventoryItemInput struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// StockMovement is the payload for POST /inventory/issue and /inventory/return.
type StockMovement struct {
	ItemID   string `json:"itemId"`
	UserID   string `json:"userId"`
	Quantity int    `json:"quantity"`
}

type InventoryLog struct {
	ID        string      `json:"_id"`
	Item      Ref         `json:"itemId"`
	User      Ref         `json:"userId"`
	Action    StockAction `json:"action"`
	Quantity  int         `json:"quantity"`
	CreatedAt time.Time   `json:"createdAt"`
}
