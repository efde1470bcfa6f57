package usecase

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	updated, _ := args.Get(0).(model.Product)
	return updated, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartLine)
	return items, args.Error(1)
}

func (m *CartRepoMock) Upsert(ctx context.Context, userID, productID, addQty int64) (model.CartLine, error) {
	args := m.Called(ctx, userID, productID, addQty)
	line, _ := args.Get(0).(model.CartLine)
	return line, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, lineID int64) (model.CartLine, error) {
	args := m.Called(ctx, lineID)
	line, _ := args.Get(0).(model.CartLine)
	return line, args.Error(1)
}

func (m *CartRepoMock) DeleteByID(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByUserAndProducts(ctx context.Context, userID int64, productIDs []int64) error {
	args := m.Called(ctx, userID, productIDs)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type ImageRepoMock struct{ mock.Mock }

func (m *ImageRepoMock) List(ctx context.Context) ([]model.PageImage, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.PageImage)
	return items, args.Error(1)
}

func (m *ImageRepoMock) Create(ctx context.Context, imageURL string) (model.PageImage, error) {
	args := m.Called(ctx, imageURL)
	img, _ := args.Get(0).(model.PageImage)
	return img, args.Error(1)
}

func (m *ImageRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UploaderMock struct{ mock.Mock }

func (m *UploaderMock) Upload(ctx context.Context, file model.Upload) (string, error) {
	args := m.Called(ctx, file.Filename)
	return args.String(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ev model.OrderEvent) {
	m.Called(ev.Type, ev.OrderID)
}

var (
	_ repo.ProductRepository = (*ProductRepoMock)(nil)
	_ repo.CartRepository    = (*CartRepoMock)(nil)
	_ repo.OrderRepository   = (*OrderRepoMock)(nil)
	_ repo.ImageRepository   = (*ImageRepoMock)(nil)
)

// TxReposを固定で返すだけのTxManager
type fakeTx struct {
	orders   *OrderRepoMock
	carts    *CartRepoMock
	products *ProductRepoMock
}

func (f *fakeTx) Orders() repo.OrderRepository     { return f.orders }
func (f *fakeTx) Carts() repo.CartRepository       { return f.carts }
func (f *fakeTx) Products() repo.ProductRepository { return f.products }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f)
}

// JSONで往復するメモリキャッシュ
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// =====================
// helper
// =====================

var (
	adminCaller = Caller{UserID: 1, Role: model.RoleAdmin}
	userCaller  = Caller{UserID: 7, Role: model.RoleUser}
	otherCaller = Caller{UserID: 8, Role: model.RoleUser}
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func assertHTTPStatus(t *testing.T, err error, status int) *HTTPError {
	t.Helper()
	he, ok := AsHTTPError(err)
	if !assert.True(t, ok, "expected *HTTPError, got %v", err) {
		return nil
	}
	assert.Equal(t, status, he.Status)
	return he
}
