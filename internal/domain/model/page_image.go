package model

// トップページ/Aboutページに出す画像。テーブルはリポジトリ側で切り替える
type PageImage struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Image string `gorm:"type:text;not null" json:"image"`
}

const (
	LandingImagesTable = "landing_images"
	AboutImagesTable   = "about_images"
)
