package usecase

import (
	"context"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

// 画像の保存先（Supabase Storage）。公開URLを返す
type ImageUploader interface {
	Upload(ctx context.Context, file model.Upload) (string, error)
}

// 一覧系の読み取りキャッシュ。ミスは(false, nil)
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// 注文イベントの配信先（管理画面のwebsocket）
type OrderEventPublisher interface {
	Publish(ev model.OrderEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.OrderEvent) {}
