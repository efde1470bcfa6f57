package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
	auth "github.com/sandraboakye128-png/desco-preorder-store/internal/usecase/auth_usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//認証系は全部400（既存フロントの挙動に合わせる）
	var inputErr *auth.InputError
	switch {
	case errors.As(err, &inputErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: inputErr.Error()})
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	//それ以外はHTTPErrorHandlerに任せる（logrusで記録して500）
	return err
}

// echoが返すエラー（404ルート、413、BodyLimitなど）も {"error": "..."} に揃える
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := usecase.MsgServerError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("uri", c.Request().RequestURI).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: msg})
		}
		if err != nil {
			log.WithError(err).Warn("write error response failed")
		}
	}
}
