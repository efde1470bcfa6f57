package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/validator"
)

type RegisterUserInput struct {
	FullName string
	Email    string
	Password string
}

// UserはPasswordHashを空にして返す
type RegisterUserOutput struct {
	User model.User
}

// 新規登録は常にroleがuser。adminはSeedAdminでしか作らない
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	name := strings.TrimSpace(in.FullName)
	email := validator.NormalizeEmail(in.Email)
	if err := invalidInput(validator.ValidateRegister(name, email, in.Password)); err != nil {
		return RegisterUserOutput{}, err
	}

	if err := u.ensureEmailFree(ctx, email); err != nil {
		return RegisterUserOutput{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisterUserOutput{}, err
	}

	user := model.User{
		FullName:     name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}
	// 事前チェック後に先を越されてもユニーク制約で弾かれる
	err = u.userRepo.Create(ctx, &user)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return RegisterUserOutput{}, ErrEmailAlreadyExists
	case err != nil:
		return RegisterUserOutput{}, err
	}

	user.PasswordHash = ""
	return RegisterUserOutput{User: user}, nil
}

func (u *RegisterUserUsecase) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := u.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing != nil:
		return ErrEmailAlreadyExists
	}
	return nil
}
