package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

// /api/landing-images と /api/about-images（パスだけ違う）
type ImageHandler struct {
	uc     *usecase.ImageUsecase
	prefix string
}

func NewImageHandler(uc *usecase.ImageUsecase, prefix string) *ImageHandler {
	return &ImageHandler{uc: uc, prefix: prefix}
}

func (h *ImageHandler) RegisterRoutes(api *echo.Group, authMW, adminMW echo.MiddlewareFunc) {
	api.GET(h.prefix, h.list)

	admin := api.Group(h.prefix, authMW, adminMW)
	admin.POST("", h.add)
	admin.DELETE("/:id", h.delete)
}

func (h *ImageHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ImageHandler) add(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	file, done, err := formUpload(c, "image")
	if err != nil {
		return badForm(c, err)
	}
	defer done()

	img, err := h.uc.Add(c.Request().Context(), caller, file)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *ImageHandler) delete(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), caller, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Deleted"})
}
