package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// ImageUsecase はページ画像（landing / about）の一覧・追加・削除。
// テーブルとバケットはDIで切り替える
type ImageUsecase struct {
	images   repo.ImageRepository
	uploader ImageUploader
	cache    Cache
	cacheKey string
	log      logrus.FieldLogger
}

func NewImageUsecase(
	images repo.ImageRepository,
	uploader ImageUploader,
	cache Cache,
	cacheKey string,
	log logrus.FieldLogger,
) *ImageUsecase {
	return &ImageUsecase{
		images:   images,
		uploader: uploader,
		cache:    cache,
		cacheKey: cacheKey,
		log:      log.WithField("images", cacheKey),
	}
}

func (u *ImageUsecase) List(ctx context.Context) ([]model.PageImage, error) {
	var cached []model.PageImage
	hit, err := u.cache.Get(ctx, u.cacheKey, &cached)
	if err != nil {
		u.log.WithError(err).Warn("image cache read failed")
	}
	if hit && err == nil {
		return cached, nil
	}

	images, err := u.images.List(ctx)
	if err != nil {
		return []model.PageImage{}, internalError(u.log, err, "image.list")
	}
	if err := u.cache.Set(ctx, u.cacheKey, images); err != nil {
		u.log.WithError(err).Warn("image cache write failed")
	}
	return images, nil
}

// fileがnilなら400
func (u *ImageUsecase) Add(ctx context.Context, caller Caller, file *model.Upload) (model.PageImage, error) {
	if !caller.IsAdmin() {
		return model.PageImage{}, forbidden()
	}
	if file == nil {
		return model.PageImage{}, NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	url, err := u.uploader.Upload(ctx, *file)
	if err != nil {
		return model.PageImage{}, uploadError(u.log, err, "image.add")
	}

	img, err := u.images.Create(ctx, url)
	if err != nil {
		return model.PageImage{}, internalError(u.log, err, "image.add")
	}

	u.invalidate(ctx)
	u.log.WithFields(caller.logFields()).WithField("image_id", img.ID).Info("page image uploaded")
	return img, nil
}

func (u *ImageUsecase) Delete(ctx context.Context, caller Caller, id int64) error {
	if !caller.IsAdmin() {
		return forbidden()
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.images.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return internalError(u.log, err, "image.delete")
	}

	u.invalidate(ctx)
	u.log.WithFields(caller.logFields()).WithField("image_id", id).Info("page image deleted")
	return nil
}

func (u *ImageUsecase) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, u.cacheKey); err != nil {
		u.log.WithError(err).Warn("image cache invalidate failed")
	}
}
