package model

// カートの明細。(user_id, product_id) の組はユニーク
type CartLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_carts_user_product,priority:1" json:"user_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_carts_user_product,priority:2" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
}

func (CartLine) TableName() string {
	return "carts"
}
