package repository

import "errors"

var (
	// 該当行なし
	ErrNotFound = errors.New("not found")
	// ユニーク制約違反
	ErrDuplicate = errors.New("duplicate")
)
