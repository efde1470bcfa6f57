package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type AddCartResponse struct {
	Message string         `json:"message"`
	Item    model.CartLine `json:"item"`
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	g := api.Group("/cart", authMW)

	g.GET("/:userId", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("/user/:userId", h.clear)
	g.DELETE("/:lineId", h.deleteLine)
}

func (h *CartHandler) getCart(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	out, err := h.uc.Get(c.Request().Context(), caller, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	line, err := h.uc.AddOrIncrement(c.Request().Context(), caller, usecase.AddCartInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AddCartResponse{Message: "Added to cart", Item: line})
}

func (h *CartHandler) deleteLine(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	lineID, ok := pathID(c, "lineId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Remove(c.Request().Context(), caller, lineID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Removed from cart"})
}

func (h *CartHandler) clear(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	if err := h.uc.Clear(c.Request().Context(), caller, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Cart cleared"})
}
