package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/export"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

// 注文イベントのwebsocket配信
type OrderStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type AdminOrderHandler struct {
	uc     *usecase.AdminOrderUsecase
	stream OrderStream
	log    logrus.FieldLogger
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, stream OrderStream, log logrus.FieldLogger) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, stream: stream, log: log}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(api *echo.Group, authMW, adminMW echo.MiddlewareFunc) {
	admin := api.Group("/orders", authMW, adminMW)

	admin.GET("", h.list)
	admin.GET("/export", h.export)
	if h.stream != nil {
		admin.GET("/stream", h.streamEvents)
	}
	admin.PUT("/:id", h.updateStatus)
	admin.DELETE("/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListAll(c.Request().Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetStatus(c.Request().Context(), caller, orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), caller, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order deleted"})
}

// 途中で失敗してもJSONでエラーを返せるよう、一度バッファに書く
func (h *AdminOrderHandler) export(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var buf bytes.Buffer
	if err := h.uc.Export(c.Request().Context(), caller, &buf); err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

// アップグレード失敗時はupgraderがレスポンスを書いている
func (h *AdminOrderHandler) streamEvents(c echo.Context) error {
	if err := h.stream.ServeWS(c.Response(), c.Request()); err != nil {
		h.log.WithError(err).WithField("remote_ip", c.RealIP()).Warn("order stream upgrade failed")
	}
	return nil
}
