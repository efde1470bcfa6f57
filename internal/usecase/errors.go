package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ハンドラはこれを見てステータスとメッセージを返す
type HTTPError struct {
	Status  int
	Message string
	// ログ用の元エラー（レスポンスには出さない）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

const (
	MsgServerError   = "Server error"
	MsgForbidden     = "Forbidden"
	MsgUploadFailed  = "Upload failed"
	MsgPriceMismatch = "Price mismatch"
)

// DBなどの失敗はログに詳細を残し、利用者には500だけ返す
func internalError(log logrus.FieldLogger, err error, op string) error {
	log.WithError(err).WithField("op", op).Error("store failure")
	return &HTTPError{Status: http.StatusInternalServerError, Message: MsgServerError, Err: err}
}

func uploadError(log logrus.FieldLogger, err error, op string) error {
	log.WithError(err).WithField("op", op).Error("upload failure")
	return &HTTPError{Status: http.StatusBadGateway, Message: MsgUploadFailed, Err: err}
}

func forbidden() error {
	return NewHTTPError(http.StatusForbidden, MsgForbidden)
}
