package repository

import (
	"context"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	// 同一商品はプラス（1文で実行する）
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartLine, error)
	FindByID(ctx context.Context, lineID int64) (model.CartLine, error)
	DeleteByID(ctx context.Context, lineID int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	// 注文で使った明細だけ消す
	DeleteByUserAndProducts(ctx context.Context, userID int64, productIDs []int64) error
}
