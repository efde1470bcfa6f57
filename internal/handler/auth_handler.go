package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	auth "github.com/sandraboakye128-png/desco-preorder-store/internal/usecase/auth_usecase"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
	}
}

// /api/register のリクエストボディ。
type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /api/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registeredUser struct {
	ID       int64      `json:"id"`
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    registeredUser `json:"user"`
}

// limiterはregister/loginだけに掛ける（nilなら無し）
func (h *AuthHandler) RegisterRoutes(api *echo.Group, limiter echo.MiddlewareFunc) {
	var mws []echo.MiddlewareFunc
	if limiter != nil {
		mws = append(mws, limiter)
	}
	api.POST("/register", h.register, mws...)
	api.POST("/login", h.login, mws...)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message: "Registration successful",
		User: registeredUser{
			ID:       out.User.ID,
			FullName: out.User.FullName,
			Email:    out.User.Email,
			Role:     out.User.Role,
		},
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	//JSONレスポンス（token + user）
	return c.JSON(http.StatusOK, out)
}
