package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNameRequired     = errors.New("Full name required")
	ErrInvalidEmail     = errors.New("Invalid email")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
	ErrWeakPassword     = errors.New("Password is too common")
	ErrMissingFields    = errors.New("Email and password required")
)

// パスワード最低文字数
const MinPasswordLength = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 前後の空白を落として小文字にする
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// サインアップの入力を検証（emailは正規化済みを渡す）
func ValidateRegister(fullName string, email string, password string) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrNameRequired
	}
	if !IsEmailLike(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if isWeakPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// ログインの入力を検証
func ValidateLogin(email string, password string) error {
	// 必須チェック
	if email == "" || password == "" {
		return ErrMissingFields
	}
	return nil
}

// 簡易メール形式をチェック
func IsEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

// よくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":    {},
		"password123": {},
		"1234567890":  {},
		"12345678":    {},
		"qwertyuiop":  {},
		"admin123":    {},
	}

	_, ok := weak[normalized]
	return ok
}
