package model

import "io"

// アップロードされたファイル1件
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
