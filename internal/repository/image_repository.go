package repository

import (
	"context"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

// ページ画像（landing / about）の保存・取得
type ImageRepository interface {
	List(ctx context.Context) ([]model.PageImage, error)
	Create(ctx context.Context, imageURL string) (model.PageImage, error)
	Delete(ctx context.Context, id int64) error
}
