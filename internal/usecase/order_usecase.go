package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// 価格照合の桁
const priceScale = 2

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	publisher OrderEventPublisher
	log       logrus.FieldLogger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	publisher OrderEventPublisher,
	log logrus.FieldLogger,
) *OrderUsecase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &OrderUsecase{tx: tx, orders: orders, publisher: publisher, log: log}
}

// クライアントから送られた明細。price/nameは照合用で、保存するのはカタログの値
type OrderLineInput struct {
	ProductID int64
	Name      string
	Price     *decimal.Decimal
	Quantity  int64
}

type CreateOrderInput struct {
	UserID          int64
	FullName        string
	Phone           string
	DeliveryAddress string
	// 空ならサーバー側のカートを使う
	Products   []OrderLineInput
	TotalPrice *decimal.Decimal
}

// Createは1トランザクションで価格を確定して注文を作り、使ったカート明細を消す
func (u *OrderUsecase) Create(ctx context.Context, caller Caller, in CreateOrderInput) (model.Order, error) {
	if in.UserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "User ID required")
	}
	if !caller.CanAccess(in.UserID) {
		return model.Order{}, forbidden()
	}

	var created model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines := in.Products
		if len(lines) == 0 {
			cart, err := r.Carts().ListByUserID(ctx, in.UserID)
			if err != nil {
				return internalError(u.log, err, "order.create.cart")
			}
			for _, cl := range cart {
				lines = append(lines, OrderLineInput{ProductID: cl.ProductID, Quantity: cl.Quantity})
			}
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Products required")
		}

		ids := make([]int64, 0, len(lines))
		seen := make(map[int64]struct{}, len(lines))
		for _, l := range lines {
			if l.ProductID <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid product id")
			}
			if l.Quantity < 1 {
				return NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
			if _, ok := seen[l.ProductID]; !ok {
				seen[l.ProductID] = struct{}{}
				ids = append(ids, l.ProductID)
			}
		}

		catalog, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return internalError(u.log, err, "order.create.products")
		}
		byID := make(map[int64]model.Product, len(catalog))
		for _, p := range catalog {
			byID[p.ID] = p
		}

		//スナップショット（名前と価格はカタログの現在値）
		snapshot := make([]model.OrderProduct, 0, len(lines))
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Product %d not found", l.ProductID))
			}
			if l.Price != nil && !samePrice(*l.Price, p.Price) {
				return NewHTTPError(http.StatusConflict, MsgPriceMismatch)
			}
			snapshot = append(snapshot, model.OrderProduct{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price,
				Quantity: l.Quantity,
			})
		}

		total := model.SumOrderProducts(snapshot)
		if in.TotalPrice != nil && !samePrice(*in.TotalPrice, total) {
			return NewHTTPError(http.StatusConflict, MsgPriceMismatch)
		}

		order := model.Order{
			UserID:          in.UserID,
			FullName:        strings.TrimSpace(in.FullName),
			Phone:           strings.TrimSpace(in.Phone),
			DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
			Products:        snapshot,
			TotalPrice:      total,
			Status:          model.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return internalError(u.log, err, "order.create")
		}

		// 注文した商品の明細だけカートから消す（再注文防止）
		if err := r.Carts().DeleteByUserAndProducts(ctx, in.UserID, ids); err != nil {
			return internalError(u.log, err, "order.create.clear_cart")
		}

		created = order
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Order{}, err
		}
		return model.Order{}, internalError(u.log, err, "order.create.tx")
	}

	u.log.WithFields(caller.logFields()).WithFields(logrus.Fields{
		"order_id": created.ID,
		"total":    created.TotalPrice.String(),
	}).Info("order created")
	u.publisher.Publish(model.OrderEvent{Type: model.OrderEventCreated, OrderID: created.ID, Order: &created})
	return created, nil
}

// 本人（または管理者）の注文一覧。新しい順
func (u *OrderUsecase) ListForUser(ctx context.Context, caller Caller, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return []model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if !caller.CanAccess(userID) {
		return []model.Order{}, forbidden()
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Order{}, internalError(u.log, err, "order.list_user")
	}
	return orders, nil
}

// フロントはJSのfloatで合計するので 13.200000000000001 のような誤差が乗る。通貨の桁（2桁）で比べる
func samePrice(client, catalog decimal.Decimal) bool {
	return client.Round(priceScale).Equal(catalog.Round(priceScale))
}
