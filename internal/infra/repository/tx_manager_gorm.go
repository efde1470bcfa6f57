package repository

import (
	"context"

	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"

	"gorm.io/gorm"
)

// 注文確定（在庫なしのpreorderなので order作成＋カート削除＋価格照合）を1txで回す
type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返すとrollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txScope{tx: tx})
	})
}

// txScopeはtxに束縛したrepoを都度返す
type txScope struct {
	tx *gorm.DB
}

func (s txScope) Orders() repo.OrderRepository     { return NewOrderGormRepository(s.tx) }
func (s txScope) Carts() repo.CartRepository       { return NewCartGormRepository(s.tx) }
func (s txScope) Products() repo.ProductRepository { return NewProductGormRepository(s.tx) }
