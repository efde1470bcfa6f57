package model

type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventUpdated OrderEventType = "order.updated"
	OrderEventDeleted OrderEventType = "order.deleted"
)

// 管理画面へ流す注文イベント
type OrderEvent struct {
	Type    OrderEventType `json:"type"`
	OrderID int64          `json:"order_id"`
	Order   *Order         `json:"order,omitempty"`
}
