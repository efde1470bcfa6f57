package usecase

import (
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

// 認証済みの呼び出し元（JWTのsub/role）
type Caller struct {
	UserID int64
	Role   model.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// 本人か管理者ならOK
func (c Caller) CanAccess(userID int64) bool {
	return c.IsAdmin() || (c.UserID > 0 && c.UserID == userID)
}

func (c Caller) logFields() logrus.Fields {
	return logrus.Fields{"caller_id": c.UserID, "caller_role": c.Role}
}
