package middleware

import (
	"net/http"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRoleはAuthJWTの後ろに置く。contextのroleが一致しなければ403
func RequireRole(want model.Role, deniedMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRoleKey).(string)
			switch {
			case role == "":
				// AuthJWTを通っていない
				return c.JSON(http.StatusUnauthorized, errorJSON("No token"))
			case model.Role(role) != want:
				return c.JSON(http.StatusForbidden, errorJSON(deniedMsg))
			}
			return next(c)
		}
	}
}

// 管理画面・商品更新・画像管理用
func AdminRoleGuard() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin, "Admin only")
}
