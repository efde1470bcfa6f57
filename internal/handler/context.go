package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/middleware"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
)

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

// AuthJWTが入れた値からCallerを作る
func callerFromContext(c echo.Context) (usecase.Caller, bool) {
	id, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.Caller{}, false
	}
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return usecase.Caller{UserID: id, Role: model.Role(role)}, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No token"})
}

// :idなどのパスパラメータ（正の整数のみ）
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
