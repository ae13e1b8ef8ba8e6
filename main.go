package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"my-finance-dashboard/authentication"
	"my-finance-dashboard/cache"
	"my-finance-dashboard/category"
	"my-finance-dashboard/config"
	"my-finance-dashboard/dashboard"
	"my-finance-dashboard/logger"
	"my-finance-dashboard/users"
	"my-finance-dashboard/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err = cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal("mongodb unavailable", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect mongodb", zap.Error(err))
		}
	}()
	logger.Info("connected to mongodb", zap.String("database", cfg.GetDatabaseName()))

	usersColl, dashboardsColl := collections(client, cfg)
	directory := users.NewDirectory(usersColl)
	store := dashboard.NewMongoStore(dashboardsColl)
	if err = directory.EnsureIndexes(ctx); err != nil {
		logger.Fatal("users indexes", zap.Error(err))
	}
	if err = store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("dashboard indexes", zap.Error(err))
	}

	var opts []dashboard.Option
	if cfg.CacheEnabled() {
		reportCache, err := cache.NewMemcache(cfg)
		if err != nil {
			logger.Warn("report cache disabled", zap.Error(err))
		} else {
			opts = append(opts, dashboard.WithReportCache(reportCache))
		}
	}
	service := dashboard.NewService(store, directory, opts...)

	authHandler := authentication.NewHandler(directory, store, []byte(cfg.JWTSecret), cfg.TokenTTL, cfg.RequestTimeout)
	dashboardHandler := dashboard.NewHandler(service, cfg.RequestTimeout)
	usersHandler := users.NewHandler(directory, cfg.RequestTimeout)
	categoryHandler := category.NewHandler()

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/version", version.Handler(cfg.AppEnv, cfg))
	api.POST("/login", authHandler.HandleLogin)
	api.POST("/signup", authHandler.HandleSignup)

	protected := api.Group("/")
	protected.Use(authHandler.AuthMiddleware())
	{
		protected.GET("/me", usersHandler.HandleGetMe)
		protected.GET("/categories", categoryHandler.HandleGetCategories)

		dash := protected.Group("/dashboard")
		dash.GET("/overview", dashboardHandler.HandleGetOverview)
		dash.GET("/charts", dashboardHandler.HandleGetCharts)
		dash.POST("/revenues", dashboardHandler.HandleCreateRevenue)
		dash.POST("/receivables", dashboardHandler.HandleCreateReceivable)
		dash.POST("/expenses", dashboardHandler.HandleCreateExpense)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
