package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

// /api/products（一覧は公開、変更はadmin）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(api *echo.Group, authMW, adminMW echo.MiddlewareFunc) {
	api.GET("/products", h.list)

	admin := api.Group("/products", authMW, adminMW)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	in, done, err := productInputFromForm(c)
	if err != nil {
		return badForm(c, err)
	}
	defer done()

	p, err := h.uc.Create(c.Request().Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, done, err := productInputFromForm(c)
	if err != nil {
		return badForm(c, err)
	}
	defer done()

	p, err := h.uc.Update(c.Request().Context(), caller, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted"})
}

// name, price, category と images（最大3枚）
func productInputFromForm(c echo.Context) (usecase.ProductInput, func(), error) {
	images, done, err := formUploads(c, "images")
	if err != nil {
		return usecase.ProductInput{}, done, err
	}
	return usecase.ProductInput{
		Name:     c.FormValue("name"),
		Price:    c.FormValue("price"),
		Category: c.FormValue("category"),
		Images:   images,
	}, done, nil
}
