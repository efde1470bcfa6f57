package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

// 注文一覧をファイルに書き出す（xlsx）
type OrderWorkbookWriter func(w io.Writer, orders []model.Order) error

type AdminOrderUsecase struct {
	orders    repo.OrderRepository
	publisher OrderEventPublisher
	export    OrderWorkbookWriter
	log       logrus.FieldLogger
}

func NewAdminOrderUsecase(
	orders repo.OrderRepository,
	publisher OrderEventPublisher,
	export OrderWorkbookWriter,
	log logrus.FieldLogger,
) *AdminOrderUsecase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &AdminOrderUsecase{orders: orders, publisher: publisher, export: export, log: log}
}

// 全注文（新しい順）
func (u *AdminOrderUsecase) ListAll(ctx context.Context, caller Caller) ([]model.Order, error) {
	if !caller.IsAdmin() {
		return []model.Order{}, forbidden()
	}
	orders, err := u.orders.List(ctx)
	if err != nil {
		return []model.Order{}, internalError(u.log, err, "order.list_all")
	}
	return orders, nil
}

// ステータスは空でなければ無条件で上書き（completed→pendingも可）
func (u *AdminOrderUsecase) SetStatus(ctx context.Context, caller Caller, orderID int64, status string) (model.Order, error) {
	if !caller.IsAdmin() {
		return model.Order{}, forbidden()
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st := strings.TrimSpace(status)
	if st == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Status required")
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(st))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, internalError(u.log, err, "order.set_status")
	}

	u.log.WithFields(caller.logFields()).WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   st,
	}).Info("order status updated")
	u.publisher.Publish(model.OrderEvent{Type: model.OrderEventUpdated, OrderID: orderID, Order: &updated})
	return updated, nil
}

func (u *AdminOrderUsecase) Delete(ctx context.Context, caller Caller, orderID int64) error {
	if !caller.IsAdmin() {
		return forbidden()
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.orders.Delete(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return internalError(u.log, err, "order.delete")
	}

	u.log.WithFields(caller.logFields()).WithField("order_id", orderID).Info("order deleted")
	u.publisher.Publish(model.OrderEvent{Type: model.OrderEventDeleted, OrderID: orderID})
	return nil
}

// 全注文をwに書き出す
func (u *AdminOrderUsecase) Export(ctx context.Context, caller Caller, w io.Writer) error {
	orders, err := u.ListAll(ctx, caller)
	if err != nil {
		return err
	}
	if err := u.export(w, orders); err != nil {
		return internalError(u.log, err, "order.export")
	}
	return nil
}
