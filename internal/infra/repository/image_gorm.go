package repository

import (
	"context"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"

	"gorm.io/gorm"
)

// landing_images / about_images 共通。テーブル名だけ違う
type ImageGormRepository struct {
	db    *gorm.DB
	table string
}

func NewImageGormRepository(db *gorm.DB, table string) *ImageGormRepository {
	return &ImageGormRepository{db: db, table: table}
}

func (r *ImageGormRepository) List(ctx context.Context) ([]model.PageImage, error) {
	var images []model.PageImage
	if err := r.db.WithContext(ctx).Table(r.table).Order("id desc").Find(&images).Error; err != nil {
		return []model.PageImage{}, err
	}
	return images, nil
}

func (r *ImageGormRepository) Create(ctx context.Context, imageURL string) (model.PageImage, error) {
	img := model.PageImage{Image: imageURL}
	if err := r.db.WithContext(ctx).Table(r.table).Create(&img).Error; err != nil {
		return model.PageImage{}, err
	}
	return img, nil
}

func (r *ImageGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&model.PageImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
