package auth

import "errors"

var (
	// 登録済みemail（同時登録でユニーク制約に当たった場合も）
	ErrEmailAlreadyExists = errors.New("Email already registered")
	// email不一致とパスワード不一致は区別しない
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// 入力不正。Reasonのメッセージをそのまま400で返す
type InputError struct {
	Reason error
}

func (e *InputError) Error() string { return e.Reason.Error() }
func (e *InputError) Unwrap() error { return e.Reason }

func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	return &InputError{Reason: err}
}
