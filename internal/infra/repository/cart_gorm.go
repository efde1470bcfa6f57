package repository

import (
	"context"
	"errors"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカート明細を一覧取得
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 同一商品は数量加算。
// 読んでから書くと同時リクエストで行が重複するので、INSERT ... ON CONFLICTの1文で行う
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartLine, error) {
	if addQty <= 0 {
		return model.CartLine{}, errors.New("invalid quantity")
	}

	line := model.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("carts.quantity + EXCLUDED.quantity"),
			}),
		}).
		Create(&line).Error
	if err != nil {
		return model.CartLine{}, translateError(err)
	}

	// 加算後の数量を読み直す
	var saved model.CartLine
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&saved).Error; err != nil {
		return model.CartLine{}, translateError(err)
	}
	return saved, nil
}

// 明細を取得
func (r *CartGormRepository) FindByID(ctx context.Context, lineID int64) (model.CartLine, error) {
	var line model.CartLine

	err := r.db.WithContext(ctx).
		Where("id = ?", lineID).
		First(&line).Error
	if err != nil {
		return model.CartLine{}, translateError(err)
	}
	return line, nil
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, lineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartLine{}, lineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーの明細を全削除（0件でもエラーにしない）
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}

func (r *CartGormRepository) DeleteByUserAndProducts(ctx context.Context, userID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&model.CartLine{}).Error
}
