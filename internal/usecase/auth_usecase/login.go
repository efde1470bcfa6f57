package auth

import (
	"context"
	"errors"
	"time"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/validator"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// ログインレスポンスのuser
type PublicUser struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"-"`
	User      PublicUser `json:"user"`
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := validator.NormalizeEmail(in.Email)
	if err := invalidInput(validator.ValidateLogin(email, in.Password)); err != nil {
		return out, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合（管理者も同じ経路）
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	out.Token = token
	out.ExpiresAt = exp
	out.User = PublicUser{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
	}
	return out, nil
}
