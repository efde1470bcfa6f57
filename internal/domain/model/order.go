package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// 注文時点の商品スナップショット。後から商品が変わっても影響しない
type OrderProduct struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func (p OrderProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	FullName        string          `gorm:"column:full_name;type:text" json:"full_name"`
	Phone           string          `gorm:"type:text" json:"phone"`
	DeliveryAddress string          `gorm:"type:text" json:"delivery_address"`
	Products        []OrderProduct  `gorm:"type:jsonb;serializer:json" json:"products"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric;not null" json:"total_price"`
	Status          OrderStatus     `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// スナップショットから合計を計算
func SumOrderProducts(products []OrderProduct) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Subtotal())
	}
	return total
}
