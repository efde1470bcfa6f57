package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/handler"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Config  config.Config
	Log     *logrus.Logger
	Metrics *middleware.Metrics
	// /healthzで呼ぶ。nilならプロセスが生きていればOK
	HealthCheck func(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

// Newはミドルウェアとルートを組み立てたechoを返す
func New(opts Options, h Handlers) *echo.Echo {
	cfg := opts.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(opts.Log)

	origins := cfg.AllowedOrigins()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB)))

	e.GET("/healthz", func(c echo.Context) error {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(c.Request().Context()); err != nil {
				opts.Log.WithError(err).Warn("health check failed")
				return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	RegisterRoutes(e, cfg, h)
	return e
}

// ctxがキャンセルされたらgracefulに止める
func Start(ctx context.Context, e *echo.Echo, addr string, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
