package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
)

// websocketのアップグレード時だけ使うクエリ
const accessTokenQuery = "access_token"

var errBadClaims = errors.New("invalid claims")

// accessClaimsはJWTIssuerが発行する形。subは数値で入ってくる
type accessClaims struct {
	Sub  json.Number `json:"sub"`
	Role string      `json:"role"`
	jwt.RegisteredClaims
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := extractToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("No token"))
			}

			userID, role, err := verifyAccessToken(parser, raw, keyFunc)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid token"))
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)
			return next(c)
		}
	}
}

// 署名・alg・expを見てから sub/role を取り出す。roleは小文字に揃える
func verifyAccessToken(p *jwt.Parser, raw string, keyFunc jwt.Keyfunc) (int64, string, error) {
	var claims accessClaims
	token, err := p.ParseWithClaims(raw, &claims, keyFunc)
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", errBadClaims
	}

	userID, err := claims.Sub.Int64()
	if err != nil || userID <= 0 {
		return 0, "", errBadClaims
	}
	role := strings.ToLower(strings.TrimSpace(claims.Role))
	if role == "" {
		return 0, "", errBadClaims
	}
	return userID, role, nil
}

// Authorizationヘッダ優先。無ければwebsocketアップグレード時のみ?access_token=
func extractToken(c echo.Context) (string, bool) {
	req := c.Request()

	if authz := req.Header.Get(echo.HeaderAuthorization); authz != "" {
		scheme, raw, found := strings.Cut(authz, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		raw = strings.TrimSpace(raw)
		return raw, raw != ""
	}

	if !isWebSocketUpgrade(req) {
		return "", false
	}
	raw := strings.TrimSpace(c.QueryParam(accessTokenQuery))
	return raw, raw != ""
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(echo.HeaderUpgrade), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get(echo.HeaderConnection)), "upgrade")
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
