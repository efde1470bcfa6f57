package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

const productsCacheKey = "products:all"

type ProductUsecase struct {
	productRepo repo.ProductRepository
	uploader    ImageUploader
	cache       Cache
	log         logrus.FieldLogger
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	uploader ImageUploader,
	cache Cache,
	log logrus.FieldLogger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		uploader:    uploader,
		cache:       cache,
		log:         log,
	}
}

// POST/PUT /api/products の入力（multipart）
type ProductInput struct {
	Name     string
	Price    string
	Category string
	// 先頭から image1, image2, image3 に入る
	Images []model.Upload
}

// 新しい順で全件。キャッシュがあればそれを返す
func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	var cached []model.Product
	hit, err := u.cache.Get(ctx, productsCacheKey, &cached)
	if err != nil {
		u.log.WithError(err).Warn("product cache read failed")
	}
	if hit && err == nil {
		return cached, nil
	}

	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, internalError(u.log, err, "product.list")
	}

	if err := u.cache.Set(ctx, productsCacheKey, products); err != nil {
		u.log.WithError(err).Warn("product cache write failed")
	}
	return products, nil
}

func (u *ProductUsecase) Create(ctx context.Context, caller Caller, in ProductInput) (model.Product, error) {
	if !caller.IsAdmin() {
		return model.Product{}, forbidden()
	}
	p, err := u.validate(in)
	if err != nil {
		return model.Product{}, err
	}

	// 画像は順番どおりslot1..3へ
	for i, img := range in.Images {
		url, err := u.uploader.Upload(ctx, img)
		if err != nil {
			return model.Product{}, uploadError(u.log, err, "product.create")
		}
		p.SetImage(i+1, url)
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, internalError(u.log, err, "product.create")
	}

	u.invalidate(ctx)
	u.log.WithFields(caller.logFields()).WithField("product_id", created.ID).Info("product created")
	return created, nil
}

// 画像はアップロードされたslotだけ差し替える
func (u *ProductUsecase) Update(ctx context.Context, caller Caller, id int64, in ProductInput) (model.Product, error) {
	if !caller.IsAdmin() {
		return model.Product{}, forbidden()
	}
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.validate(in)
	if err != nil {
		return model.Product{}, err
	}

	existing, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, internalError(u.log, err, "product.update")
	}

	p.ID = existing.ID
	p.Image1, p.Image2, p.Image3 = existing.Image1, existing.Image2, existing.Image3
	for i, img := range in.Images {
		url, err := u.uploader.Upload(ctx, img)
		if err != nil {
			return model.Product{}, uploadError(u.log, err, "product.update")
		}
		p.SetImage(i+1, url)
	}

	updated, err := u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, internalError(u.log, err, "product.update")
	}

	u.invalidate(ctx)
	u.log.WithFields(caller.logFields()).WithField("product_id", id).Info("product updated")
	return updated, nil
}

// 過去の注文はスナップショットなので、注文済み商品でも消せる
func (u *ProductUsecase) Delete(ctx context.Context, caller Caller, id int64) error {
	if !caller.IsAdmin() {
		return forbidden()
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return internalError(u.log, err, "product.delete")
	}

	u.invalidate(ctx)
	u.log.WithFields(caller.logFields()).WithField("product_id", id).Info("product deleted")
	return nil
}

func (u *ProductUsecase) validate(in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Name required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Invalid price")
	}
	if len(in.Images) > model.MaxProductImages {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Too many images")
	}
	return model.Product{
		Name:     name,
		Price:    price,
		Category: strings.TrimSpace(in.Category),
	}, nil
}

func (u *ProductUsecase) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, productsCacheKey); err != nil {
		u.log.WithError(err).Warn("product cache invalidate failed")
	}
}
