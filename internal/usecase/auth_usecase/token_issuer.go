package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// HS256で署名する。有効期限はロールごと
type JWTIssuer struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
}

func NewJWTIssuer(secret string, userTTL, adminTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), userTTL: userTTL, adminTTL: adminTTL}
}

func (i *JWTIssuer) TTL(role model.Role) time.Duration {
	if role == model.RoleAdmin {
		return i.adminTTL
	}
	return i.userTTL
}

func (i *JWTIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	exp := now.Add(i.TTL(role))

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
