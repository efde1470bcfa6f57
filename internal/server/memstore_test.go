package server_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// =====================
// インメモリのリポジトリ（DB無しでサーバー全体を通す）
// =====================

type memStore struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]model.User
	products map[int64]model.Product
	carts    map[int64]model.CartLine
	orders   map[int64]model.Order
	images   map[string]map[int64]model.PageImage
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]model.User{},
		products: map[int64]model.Product{},
		carts:    map[int64]model.CartLine{},
		orders:   map[int64]model.Order{},
		images:   map[string]map[int64]model.PageImage{},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

// users

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = r.s.nextID()
	u.CreatedAt = time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) UpdateRole(_ context.Context, id int64, role model.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Role = role
	r.s.users[id] = u
	return nil
}

// products

type memProducts struct{ s *memStore }

func (r memProducts) List(_ context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memProducts) FindByID(_ context.Context, id int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memProducts) FindByIDs(_ context.Context, ids []int64) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProducts) Create(_ context.Context, p model.Product) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) Update(_ context.Context, p model.Product) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return model.Product{}, repo.ErrNotFound
	}
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// carts

type memCarts struct{ s *memStore }

func (r memCarts) ListByUserID(_ context.Context, userID int64) ([]model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.CartLine{}
	for _, l := range r.s.carts {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCarts) Upsert(_ context.Context, userID, productID, addQty int64) (model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.carts {
		if l.UserID == userID && l.ProductID == productID {
			l.Quantity += addQty
			r.s.carts[id] = l
			return l, nil
		}
	}
	l := model.CartLine{ID: r.s.nextID(), UserID: userID, ProductID: productID, Quantity: addQty}
	r.s.carts[l.ID] = l
	return l, nil
}

func (r memCarts) FindByID(_ context.Context, lineID int64) (model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.carts[lineID]
	if !ok {
		return model.CartLine{}, repo.ErrNotFound
	}
	return l, nil
}

func (r memCarts) DeleteByID(_ context.Context, lineID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[lineID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.carts, lineID)
	return nil
}

func (r memCarts) DeleteByUserID(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.carts {
		if l.UserID == userID {
			delete(r.s.carts, id)
		}
	}
	return nil
}

func (r memCarts) DeleteByUserAndProducts(_ context.Context, userID int64, productIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range productIDs {
		want[id] = true
	}
	for id, l := range r.s.carts {
		if l.UserID == userID && want[l.ProductID] {
			delete(r.s.carts, id)
		}
	}
	return nil
}

// orders

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.nextID()
	o.CreatedAt = time.Now()
	r.s.orders[o.ID] = *o
	return nil
}

func (r memOrders) FindByID(_ context.Context, id int64) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r memOrders) list(filter func(model.Order) bool) []model.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.s.orders {
		if filter(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memOrders) List(_ context.Context) ([]model.Order, error) {
	return r.list(func(model.Order) bool { return true }), nil
}

func (r memOrders) ListByUserID(_ context.Context, userID int64) ([]model.Order, error) {
	return r.list(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (r memOrders) UpdateStatus(_ context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return o, nil
}

func (r memOrders) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

// page images

type memImages struct {
	s     *memStore
	table string
}

func (r memImages) List(_ context.Context) ([]model.PageImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.PageImage{}
	for _, img := range r.s.images[r.table] {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memImages) Create(_ context.Context, url string) (model.PageImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.images[r.table] == nil {
		r.s.images[r.table] = map[int64]model.PageImage{}
	}
	img := model.PageImage{ID: r.s.nextID(), Image: url}
	r.s.images[r.table][img.ID] = img
	return img, nil
}

func (r memImages) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[r.table][id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.images[r.table], id)
	return nil
}

// tx（ロールバックはしない。テストでは書き込み前に失敗するケースだけ使う）

type memTx struct{ s *memStore }

func (t memTx) Orders() repo.OrderRepository     { return memOrders{t.s} }
func (t memTx) Carts() repo.CartRepository       { return memCarts{t.s} }
func (t memTx) Products() repo.ProductRepository { return memProducts{t.s} }

func (t memTx) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t)
}
