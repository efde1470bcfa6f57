package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

// multipartのfieldに入ったファイルを順番に開く。closeは呼び出し側の責任
func formUploads(c echo.Context, field string) ([]model.Upload, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	headers := form.File[field]
	uploads := make([]model.Upload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		files = append(files, f)
		uploads = append(uploads, toUpload(fh, f))
	}
	return uploads, closeAll, nil
}

// 単一ファイル。無ければnil
func formUpload(c echo.Context, field string) (*model.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	up := toUpload(fh, f)
	return &up, func() { _ = f.Close() }, nil
}

func toUpload(fh *multipart.FileHeader, f multipart.File) model.Upload {
	return model.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}

// multipartの読み取り失敗。BodyLimit超過は413のまま返す
func badForm(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
}
