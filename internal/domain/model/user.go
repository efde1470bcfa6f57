package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// 会員。passwordカラムにはbcryptハッシュだけを保存する
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"column:full_name;type:text" json:"full_name"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:text;not null" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
