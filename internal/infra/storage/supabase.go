package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

var (
	// アップロード失敗はすべてこれをwrapする
	ErrUploadFailed = errors.New("upload failed")
	// URL/KEY未設定
	ErrNotConfigured = errors.New("storage is not configured")
)

// Supabase Storageのバケット1つにアップロードする
type SupabaseUploader struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewSupabaseUploader(baseURL, apiKey, bucket string, client *http.Client) *SupabaseUploader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SupabaseUploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  client,
	}
}

// Uploadはファイルを保存して公開URLを返す。
func (u *SupabaseUploader) Upload(ctx context.Context, file model.Upload) (string, error) {
	if u.baseURL == "" || u.apiKey == "" {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, ErrNotConfigured)
	}
	if file.Body == nil {
		return "", fmt.Errorf("%w: empty body", ErrUploadFailed)
	}

	name := ObjectName(file.Filename)
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", u.baseURL, url.PathEscape(u.bucket), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, file.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", u.apiKey)
	req.Header.Set("Authorization", "Bearer "+u.apiKey)
	req.Header.Set("x-upsert", "false")
	if file.Size > 0 {
		req.ContentLength = file.Size
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return u.PublicURL(name), nil
}

func (u *SupabaseUploader) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, name)
}

// ObjectNameは衝突しないオブジェクト名を作る（空白は_に置換）
func ObjectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Join(strings.Fields(base), "_")
	if base == "" || base == "." || base == "/" {
		base = "file"
	}
	return uuid.NewString() + "-" + base
}
