package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 明細。idでもproduct_idでも受け付ける
type OrderLineRequest struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"product_id"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  int64            `json:"quantity"`
}

type OrderCreateRequest struct {
	UserID          int64              `json:"user_id"`
	FullName        string             `json:"full_name"`
	Phone           string             `json:"phone"`
	DeliveryAddress string             `json:"delivery_address"`
	Products        []OrderLineRequest `json:"products"`
	TotalPrice      *decimal.Decimal   `json:"total_price"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	g := api.Group("/orders", authMW)

	g.POST("", h.create)
	g.GET("/user/:userId", h.listForUser)
}

func (h *OrderHandler) create(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		id := p.ProductID
		if id == 0 {
			id = p.ID
		}
		lines = append(lines, usecase.OrderLineInput{
			ProductID: id,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
		})
	}

	out, err := h.uc.Create(c.Request().Context(), caller, usecase.CreateOrderInput{
		UserID:          req.UserID,
		FullName:        req.FullName,
		Phone:           req.Phone,
		DeliveryAddress: req.DeliveryAddress,
		Products:        lines,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listForUser(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	out, err := h.uc.ListForUser(c.Request().Context(), caller, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
