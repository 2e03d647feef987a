package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/varun134127/serene-sale-spot/internal/config"
	"github.com/varun134127/serene-sale-spot/internal/domain/model"
	"github.com/varun134127/serene-sale-spot/internal/handler"
	"github.com/varun134127/serene-sale-spot/internal/infra/db"
	infraRepo "github.com/varun134127/serene-sale-spot/internal/infra/repository"
	"github.com/varun134127/serene-sale-spot/internal/logging"
	"github.com/varun134127/serene-sale-spot/internal/middleware"
	"github.com/varun134127/serene-sale-spot/internal/payment"
	repo "github.com/varun134127/serene-sale-spot/internal/repository"
	"github.com/varun134127/serene-sale-spot/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	//.envは無くても動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.MustNewLogger("serene-sale-spot", cfg.GoEnv)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//カタログが空なら初期データを入れる
	if err := seedProducts(productRepo, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	//決済ゲートウェイ
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, gateway)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg)
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
	}))

	authH.RegisterRoutes(e, cfg)
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//起動＋graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// カタログ初期データ。商品管理画面は無いので起動時に一度だけ入れる。
func seedProducts(productRepo repo.ProductRepository, log *zap.Logger) error {
	ctx := context.Background()

	count, err := productRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []model.Product{
		{
			Name:        "Laptop",
			Price:       50000,
			Description: "Powerful laptop with 16GB RAM, 512GB SSD, and a fast processor.",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?q=80&w=1470&auto=format&fit=crop",
		},
		{
			Name:        "Smartphone",
			Price:       20000,
			Description: "Latest smartphone with high-resolution camera and all-day battery life.",
			Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?q=80&w=1467&auto=format&fit=crop",
		},
		{
			Name:        "Wireless Headphones",
			Price:       3000,
			Description: "Premium wireless headphones with active noise cancellation.",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=1470&auto=format&fit=crop",
		},
		{
			Name:        "Smart Watch",
			Price:       5000,
			Description: "Fitness tracker with heart rate monitor and sleep tracking.",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?q=80&w=1399&auto=format&fit=crop",
		},
		{
			Name:        "Gaming Console",
			Price:       35000,
			Description: "Next-generation gaming console with 4K graphics and 1TB storage.",
			Image:       "https://images.unsplash.com/photo-1605901309584-818e25960a8f?q=80&w=1619&auto=format&fit=crop",
		},
		{
			Name:        "Digital Camera",
			Price:       25000,
			Description: "Professional-grade digital camera with interchangeable lenses.",
			Image:       "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?q=80&w=1538&auto=format&fit=crop",
		},
	}

	if err := productRepo.CreateBulk(ctx, products); err != nil {
		return err
	}

	log.Info("seeded catalog", zap.Int("products", len(products)))
	return nil
}
