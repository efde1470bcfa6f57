package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/handler"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/cache"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/db"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/export"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/realtime"
	infraRepo "github.com/sandraboakye128-png/desco-preorder-store/internal/infra/repository"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/infra/storage"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/logger"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/middleware"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/server"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/usecase"
	auth "github.com/sandraboakye128-png/desco-preorder-store/internal/usecase/auth_usecase"
)

func main() {
	//.envは無くても良い（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("connect db")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.WithError(err).Fatal("db handle")
	}
	defer sqlDB.Close()

	//読み取りキャッシュ（REDIS_ADDRが無ければ無効）
	var readCache usecase.Cache = cache.NopCache{}
	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, cache disabled")
		} else {
			defer rc.Close()
			readCache = rc
		}
	}
	if !cfg.StorageEnabled() {
		log.Warn("SUPABASE_URL/SUPABASE_KEY not set, image uploads will fail")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	landingRepo := infraRepo.NewImageGormRepository(gormDB, model.LandingImagesTable)
	aboutRepo := infraRepo.NewImageGormRepository(gormDB, model.AboutImagesTable)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//バケットごとのアップローダー
	productUploader := storage.NewSupabaseUploader(cfg.SupabaseURL, cfg.SupabaseKey, cfg.ProductBucket, nil)
	landingUploader := storage.NewSupabaseUploader(cfg.SupabaseURL, cfg.SupabaseKey, cfg.LandingBucket, nil)
	aboutUploader := storage.NewSupabaseUploader(cfg.SupabaseURL, cfg.SupabaseKey, cfg.AboutBucket, nil)

	hub := realtime.NewHub(cfg.AllowedOrigins(), log)
	defer hub.Close()

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.UserTokenTTL, cfg.AdminTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, auth.SystemClock{})
	seedUC := auth.NewSeedAdminUsecase(userRepo, hasher, log)

	productUC := usecase.NewProductUsecase(productRepo, productUploader, readCache, log)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, log)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, hub, log)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, hub, export.WriteOrdersXLSX, log)
	landingUC := usecase.NewImageUsecase(landingRepo, landingUploader, readCache, "landing_images:all", log)
	aboutUC := usecase.NewImageUsecase(aboutRepo, aboutUploader, readCache, "about_images:all", log)

	if cfg.AdminEmail != "" {
		if err := seedUC.Execute(ctx, auth.SeedAdminInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			FullName: cfg.AdminName,
		}); err != nil {
			log.WithError(err).Fatal("seed admin")
		}
	}

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(registerUC, loginUC),
		Product:       handler.NewProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		AdminOrder:    handler.NewAdminOrderHandler(adminOrderUC, hub, log),
		LandingImages: handler.NewImageHandler(landingUC, "/landing-images"),
		AboutImages:   handler.NewImageHandler(aboutUC, "/about-images"),
	}

	e := server.New(server.Options{
		Config:      cfg,
		Log:         log,
		Metrics:     middleware.NewMetrics(),
		HealthCheck: sqlDB.PingContext,
	}, handlers)

	//Server起動
	if err := server.Start(ctx, e, ":"+cfg.Port, log); err != nil {
		log.WithError(err).Error("server stopped")
		stop()
		os.Exit(1)
	}
}
