package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	log         logrus.FieldLogger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	log logrus.FieldLogger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		log:         log,
	}
}

type AddCartInput struct {
	UserID    int64
	ProductID int64
	Quantity  int64
}

// Get はユーザーのカート明細（id昇順）
func (u *CartUsecase) Get(ctx context.Context, caller Caller, userID int64) ([]model.CartLine, error) {
	if userID <= 0 {
		return []model.CartLine{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if !caller.CanAccess(userID) {
		return []model.CartLine{}, forbidden()
	}

	lines, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.CartLine{}, internalError(u.log, err, "cart.get")
	}
	return lines, nil
}

// AddOrIncrement はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddOrIncrement(ctx context.Context, caller Caller, in AddCartInput) (model.CartLine, error) {
	if in.UserID <= 0 {
		return model.CartLine{}, NewHTTPError(http.StatusBadRequest, "User ID required")
	}
	if in.ProductID <= 0 {
		return model.CartLine{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return model.CartLine{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if !caller.CanAccess(in.UserID) {
		return model.CartLine{}, forbidden()
	}

	//商品の存在確認
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartLine{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return model.CartLine{}, internalError(u.log, err, "cart.add")
	}

	line, err := u.cartRepo.Upsert(ctx, in.UserID, in.ProductID, in.Quantity)
	if err != nil {
		return model.CartLine{}, internalError(u.log, err, "cart.add")
	}
	return line, nil
}

// Remove は明細を1件削除。他人の明細は管理者以外403
func (u *CartUsecase) Remove(ctx context.Context, caller Caller, lineID int64) error {
	if lineID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	line, err := u.cartRepo.FindByID(ctx, lineID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return internalError(u.log, err, "cart.remove")
	}
	if !caller.CanAccess(line.UserID) {
		return forbidden()
	}

	err = u.cartRepo.DeleteByID(ctx, lineID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return internalError(u.log, err, "cart.remove")
	}
	return nil
}

// Clear はユーザーの明細を全削除
func (u *CartUsecase) Clear(ctx context.Context, caller Caller, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if !caller.CanAccess(userID) {
		return forbidden()
	}
	if err := u.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return internalError(u.log, err, "cart.clear")
	}
	return nil
}
