package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Newはアプリ共通のlogrusロガーを作る。
// prodはJSON、それ以外はタイムスタンプ付きテキスト。
func New(level string, prod bool) *logrus.Logger {
	return NewWithWriter(os.Stdout, level, prod)
}

func NewWithWriter(w io.Writer, level string, prod bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	if prod {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)
	return l
}
