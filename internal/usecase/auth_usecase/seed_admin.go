package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/validator"
)

type SeedAdminInput struct {
	Email    string
	Password string
	FullName string
}

// 起動時に管理者アカウントを用意する。何度実行しても同じ結果
type SeedAdminUsecase struct {
	userRepo repository.UserRepository
	register *RegisterUserUsecase
	log      logrus.FieldLogger
}

func NewSeedAdminUsecase(userRepo repository.UserRepository, hasher PasswordHasher, log logrus.FieldLogger) *SeedAdminUsecase {
	return &SeedAdminUsecase{
		userRepo: userRepo,
		register: NewRegisterUserUsecase(userRepo, hasher),
		log:      log,
	}
}

// 無ければ通常の登録経路で作ってからadminへ、既存ならadminに昇格するだけ（パスワードは変えない）
func (u *SeedAdminUsecase) Execute(ctx context.Context, in SeedAdminInput) error {
	email := validator.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = "Administrator"
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		out, regErr := u.register.Execute(ctx, RegisterUserInput{FullName: name, Email: email, Password: in.Password})
		switch {
		case regErr == nil:
			user, err = &out.User, nil
			u.log.WithField("email", email).Info("admin account created")
		case errors.Is(regErr, ErrEmailAlreadyExists):
			// 別インスタンスが先に作った
			user, err = u.userRepo.FindByEmail(ctx, email)
		default:
			return regErr
		}
	}
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		return nil
	}
	if err := u.userRepo.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		return err
	}
	u.log.WithField("email", email).Info("account promoted to admin")
	return nil
}
