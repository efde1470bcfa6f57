package db

import (
	"time"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, log *logrus.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// 23505などをgorm.ErrDuplicatedKeyに変換させる
		TranslateError: true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

// Migrate はテーブルを作成/更新する。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartLine{},
		&model.Order{},
	); err != nil {
		return err
	}

	// landing/aboutは同じ形で別テーブル
	for _, table := range []string{model.LandingImagesTable, model.AboutImagesTable} {
		if err := gdb.Table(table).AutoMigrate(&model.PageImage{}); err != nil {
			return err
		}
	}
	return nil
}
