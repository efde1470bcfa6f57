package model

import "github.com/shopspring/decimal"

// 商品画像の最大枚数（image1〜image3）
const MaxProductImages = 3

// 商品。在庫は持たない（予約販売のため）
type Product struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:text;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Category string          `gorm:"type:text" json:"category"`
	Image1   string          `gorm:"column:image1;type:text" json:"image1"`
	Image2   string          `gorm:"column:image2;type:text" json:"image2"`
	Image3   string          `gorm:"column:image3;type:text" json:"image3"`
}

// slotは1始まり。範囲外は無視
func (p *Product) SetImage(slot int, url string) {
	switch slot {
	case 1:
		p.Image1 = url
	case 2:
		p.Image2 = url
	case 3:
		p.Image3 = url
	}
}

func (p Product) Images() []string {
	return []string{p.Image1, p.Image2, p.Image3}
}
